package v1

// Period identifies a bar aggregation period.
type Period uint16

const (
	// PeriodMinute1 is the 1 minute bar period.
	PeriodMinute1 Period = iota
	// PeriodMinute5 is the 5 minute bar period.
	PeriodMinute5
	// PeriodDay is the daily bar period.
	PeriodDay
)

// Dir returns the directory name used for this period under his/ and rt/.
func (p Period) Dir() string {
	switch p {
	case PeriodMinute1:
		return "min1"
	case PeriodMinute5:
		return "min5"
	case PeriodDay:
		return "day"
	default:
		return "unknown"
	}
}

// BaseBarTime is subtracted from the date part of minute bar times so the
// encoded value fits comfortably in a uint64. Part of the stored format.
const BaseBarTime = 19900000

// MakeBarTime encodes a minute bar time from an action date (yyyymmdd) and
// an intraday minute (hhmm).
func MakeBarTime(actionDate, hhmm uint32) uint64 {
	return uint64(actionDate-BaseBarTime)*10000 + uint64(hhmm)
}

// BarTimeDate recovers the action date (yyyymmdd) from a minute bar time.
func BarTimeDate(barTime uint64) uint32 {
	return uint32(barTime/10000) + BaseBarTime
}

// MakeTickTime encodes a tick time from an action date (yyyymmdd) and an
// action time (hhmmssmmm).
func MakeTickTime(actionDate, actionTime uint32) uint64 {
	return uint64(actionDate)*1000000000 + uint64(actionTime)
}

// TickTimeDate recovers the action date from an encoded tick time.
func TickTimeDate(tickTime uint64) uint32 {
	return uint32(tickTime / 1000000000)
}

// Key returns the ordering key of a bar for the given period: the encoded
// minute time for intraday periods, the date for day bars.
func (b *Bar) Key(p Period) uint64 {
	if p == PeriodDay {
		return uint64(b.Date)
	}
	return b.Time
}

// Key returns the ordering key of a tick.
func (t *Tick) Key() uint64 {
	return MakeTickTime(t.ActionDate, t.ActionTime)
}

// Key returns the ordering key of an order queue snapshot.
func (q *OrderQueue) Key() uint64 {
	return MakeTickTime(q.ActionDate, q.ActionTime)
}

// Key returns the ordering key of an order detail event.
func (d *OrderDetail) Key() uint64 {
	return MakeTickTime(d.ActionDate, d.ActionTime)
}

// Key returns the ordering key of a transaction.
func (x *Transaction) Key() uint64 {
	return MakeTickTime(x.ActionDate, x.ActionTime)
}
