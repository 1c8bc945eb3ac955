package query

import (
	"math"

	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
)

// dayReadFn reads one per-day historical file of a concrete contract. The
// returned records belong to the store cache and must not be mutated.
type dayReadFn[T any] func(rawCode string, tradingDate uint32) []T

// liveReadFn views the live records of a mapped block. Called under the
// block lock.
type liveReadFn[T any] func(blk *rt.Block) []T

// adjustFn rescales a day's worth of records for adjusted equity codes. It
// must return a copy; nil means no adjustment.
type adjustFn[T any] func(recs []T, tradingDate uint32) []T

// sliceByCount collects the last count records at or before etime, walking
// backward from the live ring through per-day files. The walk stops at the
// date floor or after maxDayMisses consecutive dates without data.
func sliceByCount[T any](
	e *Engine,
	info market.CodeInfo,
	kind rt.Kind,
	count int,
	etime uint64,
	key func(*T) uint64,
	readLive liveReadFn[T],
	readDay dayReadFn[T],
	adjust adjustFn[T],
) *market.Slice[T] {
	res := market.NewSlice[T]()
	if count <= 0 {
		return res
	}

	commodity := info.CommodityID()
	boundary := etime
	var endTDate uint32
	if etime == 0 {
		boundary = math.MaxUint64
		endTDate = e.calendar.CurrentTradingDate(commodity)
	} else {
		actionDate, hhmm := splitTickTime(etime)
		endTDate = e.calendar.TradingDateFor(commodity, actionDate, hhmm)
	}
	isToday := endTDate == e.calendar.CurrentTradingDate(commodity)

	remaining := count
	if isToday {
		remaining -= takeLive(e, info, kind, endTDate, 0, boundary, remaining, key, readLive, adjust, res)
	}

	day := endTDate
	if isToday {
		day = prevCalendarDate(day)
	}
	misses := 0
	for remaining > 0 && day >= floorDate && misses < maxDayMisses {
		recs := readDayFor(e, info, day, readDay)
		if len(recs) == 0 {
			misses++
			day = prevCalendarDate(day)
			continue
		}
		misses = 0

		end := lastAtOrBefore(recs, key, boundary)
		n := end + 1
		if n > remaining {
			n = remaining
		}
		if n > 0 {
			seg := recs[end+1-n : end+1]
			if adjust != nil {
				seg = adjust(seg, day)
			}
			res.Prepend(seg)
			remaining -= n
		}
		day = prevCalendarDate(day)
	}
	return res
}

// sliceByRange collects the records with keys in [stime, etime], walking
// backward from the live ring to the trading date owning stime.
func sliceByRange[T any](
	e *Engine,
	info market.CodeInfo,
	kind rt.Kind,
	stime, etime uint64,
	key func(*T) uint64,
	readLive liveReadFn[T],
	readDay dayReadFn[T],
	adjust adjustFn[T],
) *market.Slice[T] {
	res := market.NewSlice[T]()

	commodity := info.CommodityID()
	boundary := etime
	var endTDate uint32
	if etime == 0 {
		boundary = math.MaxUint64
		endTDate = e.calendar.CurrentTradingDate(commodity)
	} else {
		actionDate, hhmm := splitTickTime(etime)
		endTDate = e.calendar.TradingDateFor(commodity, actionDate, hhmm)
	}

	startTDate := floorDate
	if stime > 0 {
		actionDate, hhmm := splitTickTime(stime)
		startTDate = e.calendar.TradingDateFor(commodity, actionDate, hhmm)
	}
	if startTDate > endTDate {
		return res
	}

	isToday := endTDate == e.calendar.CurrentTradingDate(commodity)
	if isToday {
		takeLive(e, info, kind, endTDate, stime, boundary, math.MaxInt, key, readLive, adjust, res)
	}

	day := endTDate
	if isToday {
		day = prevCalendarDate(day)
	}
	// Open-start walks are unbounded below, so the miss counter ends them
	// for codes with shallow history. An explicit stime already bounds the
	// walk at startTDate; gaps inside the range (suspensions, holidays) must
	// not cut it short.
	misses := 0
	for day >= startTDate && day >= floorDate && misses < maxDayMisses {
		recs := readDayFor(e, info, day, readDay)
		if len(recs) == 0 {
			if stime == 0 {
				misses++
			}
			day = prevCalendarDate(day)
			continue
		}
		misses = 0

		lo := lowerBound(recs, key, stime)
		hi := lastAtOrBefore(recs, key, boundary)
		if hi >= lo {
			seg := recs[lo : hi+1]
			if adjust != nil {
				seg = adjust(seg, day)
			}
			res.Prepend(seg)
		}
		day = prevCalendarDate(day)
	}
	return res
}

// takeLive copies up to limit live records with keys in [stime, boundary]
// out of the mapped block and prepends them to res. The copy happens under
// the block lock so a concurrent writer cannot tear records. Returns the
// number of records taken.
func takeLive[T any](
	e *Engine,
	info market.CodeInfo,
	kind rt.Kind,
	tradingDate uint32,
	stime, boundary uint64,
	limit int,
	key func(*T) uint64,
	readLive liveReadFn[T],
	adjust adjustFn[T],
	res *market.Slice[T],
) int {
	rawCode := e.resolveRawCode(info, tradingDate)
	if rawCode == "" {
		return 0
	}
	blk := e.rt.GetBlock(info.Exchg, rawCode, kind)
	if blk == nil {
		return 0
	}

	blk.Lock()
	recs := readLive(blk)
	lo := lowerBound(recs, key, stime)
	hi := lastAtOrBefore(recs, key, boundary)
	n := hi - lo + 1
	if n > limit {
		n = limit
		lo = hi + 1 - n
	}
	if n <= 0 {
		blk.Unlock()
		return 0
	}
	seg := make([]T, n)
	copy(seg, recs[lo:hi+1])
	blk.Unlock()

	if adjust != nil {
		seg = adjust(seg, tradingDate)
	}
	res.Prepend(seg)
	return n
}

// readDayFor resolves the concrete contract backing info on a date and reads
// its per-day file.
func readDayFor[T any](e *Engine, info market.CodeInfo, tradingDate uint32, readDay dayReadFn[T]) []T {
	rawCode := e.resolveRawCode(info, tradingDate)
	if rawCode == "" {
		return nil
	}
	return readDay(rawCode, tradingDate)
}
