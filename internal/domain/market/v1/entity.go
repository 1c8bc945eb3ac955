// Package v1 defines the fixed-layout market data records shared by the
// historical file store and the real-time ring readers.
//
// Every struct in this file is persisted verbatim, so field order matters:
// fields are grouped so that no implicit padding is introduced and every
// float64 lands on an 8 byte boundary. Layouts are frozen; new fields mean a
// new block version, never a change to an existing struct.
package v1

import (
	"fmt"
	"unsafe"
)

// ExchgLen is the fixed width of the exchange field in stored records.
const ExchgLen = 16

// CodeLen is the fixed width of the instrument code field in stored records.
const CodeLen = 32

// Tick represents a single market snapshot.
type Tick struct {
	Exchg [ExchgLen]byte
	Code  [CodeLen]byte

	Price       float64
	Open        float64
	High        float64
	Low         float64
	SettlePrice float64

	UpperLimit float64
	LowerLimit float64

	TotalVolume   float64
	Volume        float64
	TotalTurnover float64
	Turnover      float64

	OpenInterest float64
	DiffInterest float64

	TradingDate uint32 // yyyymmdd
	ActionDate  uint32 // yyyymmdd
	ActionTime  uint32 // hhmmssmmm
	Reserve     uint32

	PreClose    float64
	PreSettle   float64
	PreInterest float64

	BidPrices [10]float64
	AskPrices [10]float64
	BidQty    [10]float64
	AskQty    [10]float64
}

// LegacyTick is the retired tick layout: float32 fields and a five level
// quote ladder. It only ever appears inside version 1/2 blocks and is widened
// to Tick during normalization.
type LegacyTick struct {
	Exchg [ExchgLen]byte
	Code  [CodeLen]byte

	Price       float32
	Open        float32
	High        float32
	Low         float32
	SettlePrice float32

	UpperLimit float32
	LowerLimit float32

	TotalVolume   float32
	Volume        float32
	TotalTurnover float32
	Turnover      float32

	OpenInterest float32
	DiffInterest float32

	TradingDate uint32
	ActionDate  uint32
	ActionTime  uint32

	PreClose    float32
	PreSettle   float32
	PreInterest float32

	BidPrices [5]float32
	AskPrices [5]float32
	BidQty    [5]float32
	AskQty    [5]float32
}

// Bar represents one OHLCV record for a period.
type Bar struct {
	Date    uint32 // trading date yyyymmdd
	Reserve uint32
	Time    uint64 // minute encoding, 0 for day bars

	Open   float64
	High   float64
	Low    float64
	Close  float64
	Settle float64

	Turnover     float64
	Volume       float64
	OpenInterest float64
	DiffInterest float64
}

// LegacyBar is the retired bar layout, widened to Bar during normalization.
type LegacyBar struct {
	Date uint32
	Time uint32

	Open   float32
	High   float32
	Low    float32
	Close  float32
	Settle float32

	Turnover     float32
	Volume       uint32
	OpenInterest uint32
	DiffInterest int32
}

// OrderQueue represents one committed order queue snapshot (level 2).
type OrderQueue struct {
	Exchg [ExchgLen]byte
	Code  [CodeLen]byte

	TradingDate uint32
	ActionDate  uint32
	ActionTime  uint32
	Side        uint32

	Price float64

	OrderItems uint32
	QSize      uint32
	Volumes    [50]uint32
}

// OrderDetail represents one individual order lifecycle event (level 2).
type OrderDetail struct {
	Exchg [ExchgLen]byte
	Code  [CodeLen]byte

	TradingDate uint32
	ActionDate  uint32
	ActionTime  uint32
	Side        uint32

	Index uint64
	Price float64

	Volume    uint32
	OrderType uint32
}

// Transaction represents one executed trade (level 2).
type Transaction struct {
	Exchg [ExchgLen]byte
	Code  [CodeLen]byte

	TradingDate uint32
	ActionDate  uint32
	ActionTime  uint32
	Side        uint32

	Index  uint64
	TType  uint32
	Volume uint32
	Price  float64

	AskOrder int64
	BidOrder int64
}

// Record sizes in bytes. These are part of the on-disk format.
const (
	TickSize        = int(unsafe.Sizeof(Tick{}))
	LegacyTickSize  = int(unsafe.Sizeof(LegacyTick{}))
	BarSize         = int(unsafe.Sizeof(Bar{}))
	LegacyBarSize   = int(unsafe.Sizeof(LegacyBar{}))
	OrderQueueSize  = int(unsafe.Sizeof(OrderQueue{}))
	OrderDetailSize = int(unsafe.Sizeof(OrderDetail{}))
	TransactionSize = int(unsafe.Sizeof(Transaction{}))
)

func init() {
	// The expected sizes double as a layout freeze: if a struct edit changes
	// any of these, stored data written by older builds becomes unreadable.
	assertSize("Tick", TickSize, 512)
	assertSize("LegacyTick", LegacyTickSize, 204)
	assertSize("Bar", BarSize, 88)
	assertSize("LegacyBar", LegacyBarSize, 44)
	assertSize("OrderQueue", OrderQueueSize, 280)
	assertSize("OrderDetail", OrderDetailSize, 88)
	assertSize("Transaction", TransactionSize, 104)
}

func assertSize(name string, got, want int) {
	if got != want {
		panic(fmt.Sprintf("%s size is %d, expected %d", name, got, want))
	}
}

// Widen converts a legacy tick into the current layout. New fields stay zero.
func (t *LegacyTick) Widen() Tick {
	out := Tick{
		Exchg:         t.Exchg,
		Code:          t.Code,
		Price:         float64(t.Price),
		Open:          float64(t.Open),
		High:          float64(t.High),
		Low:           float64(t.Low),
		SettlePrice:   float64(t.SettlePrice),
		UpperLimit:    float64(t.UpperLimit),
		LowerLimit:    float64(t.LowerLimit),
		TotalVolume:   float64(t.TotalVolume),
		Volume:        float64(t.Volume),
		TotalTurnover: float64(t.TotalTurnover),
		Turnover:      float64(t.Turnover),
		OpenInterest:  float64(t.OpenInterest),
		DiffInterest:  float64(t.DiffInterest),
		TradingDate:   t.TradingDate,
		ActionDate:    t.ActionDate,
		ActionTime:    t.ActionTime,
		PreClose:      float64(t.PreClose),
		PreSettle:     float64(t.PreSettle),
		PreInterest:   float64(t.PreInterest),
	}
	for i := 0; i < 5; i++ {
		out.BidPrices[i] = float64(t.BidPrices[i])
		out.AskPrices[i] = float64(t.AskPrices[i])
		out.BidQty[i] = float64(t.BidQty[i])
		out.AskQty[i] = float64(t.AskQty[i])
	}
	return out
}

// Widen converts a legacy bar into the current layout.
func (b *LegacyBar) Widen() Bar {
	return Bar{
		Date:         b.Date,
		Time:         uint64(b.Time),
		Open:         float64(b.Open),
		High:         float64(b.High),
		Low:          float64(b.Low),
		Close:        float64(b.Close),
		Settle:       float64(b.Settle),
		Turnover:     float64(b.Turnover),
		Volume:       float64(b.Volume),
		OpenInterest: float64(b.OpenInterest),
		DiffInterest: float64(b.DiffInterest),
	}
}

// Exchange returns the exchange field as a string.
func (t *Tick) Exchange() string { return cstr(t.Exchg[:]) }

// Instrument returns the code field as a string.
func (t *Tick) Instrument() string { return cstr(t.Code[:]) }

// SetExchange stores the exchange into the fixed-width field.
func (t *Tick) SetExchange(exchg string) { setCstr(t.Exchg[:], exchg) }

// SetInstrument stores the code into the fixed-width field.
func (t *Tick) SetInstrument(code string) { setCstr(t.Code[:], code) }

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func setCstr(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}
