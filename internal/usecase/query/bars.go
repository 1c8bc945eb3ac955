package query

import (
	"math"
	"sync"

	"github.com/muhammadchandra19/tickstore/internal/config"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/hot"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
)

// barsList is one assembled bar series: spliced, adjusted history plus the
// bookkeeping needed to fold the live ring tail in. It is built once per
// (standard code, period) and kept until ClearCache.
type barsList struct {
	mu sync.Mutex

	info   market.CodeInfo
	period market.Period

	loaded bool
	his    []market.Bar

	// rawCode is the contract backing the live tail, empty when the series
	// has no live component.
	rawCode string
	// liveScale is the price scale the live tail needs to line up with the
	// adjusted history.
	liveScale float64

	// rtCursor is the first ring index past the historical series, -1 until
	// the first live fold.
	rtCursor int
	// adjLive holds the rescaled live tail when liveScale is not 1. It is
	// rebuilt in full whenever the ring grows; in-place amendments of
	// already-copied records are picked up on the next growth.
	adjLive []market.Bar
	adjSize int
}

// lockedBars returns the series for (info, period) with its mutex held,
// assembling it on first use. The caller must unlock it. The engine lock
// only guards the map; assembly and live folding run under the list lock so
// concurrent queries on the same series serialize without blocking others.
func (e *Engine) lockedBars(info market.CodeInfo, period market.Period) *barsList {
	key := barsKeyOf(info, period)

	e.mu.Lock()
	list, ok := e.bars[key]
	if !ok {
		list = &barsList{info: info, period: period, liveScale: 1, rtCursor: -1}
		e.bars[key] = list
	}
	e.mu.Unlock()

	list.mu.Lock()
	if !list.loaded {
		e.assembleBars(list)
		list.loaded = true
	}
	return list
}

// BarSliceByCount returns the last count bars of stdCode at or before etime.
// etime is an encoded minute time for intraday periods and a yyyymmdd date
// for day bars; zero means "latest". The slice may end with a live segment
// whose last record is still being amended in place.
func (e *Engine) BarSliceByCount(stdCode string, period market.Period, count int, etime uint64) (*market.Slice[market.Bar], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	res := market.NewSlice[market.Bar]()
	if count <= 0 {
		return res, nil
	}
	if etime == 0 {
		etime = math.MaxUint64
	}

	list := e.lockedBars(info, period)
	defer list.mu.Unlock()

	key := func(b *market.Bar) uint64 { return b.Key(period) }
	live := e.liveBars(list, 0, etime)

	hisEnd := lastAtOrBefore(list.his, key, etime)

	nLive := len(live)
	if nLive > count {
		nLive = count
	}
	nHis := count - nLive
	if nHis > hisEnd+1 {
		nHis = hisEnd + 1
	}
	if nHis > 0 {
		res.Append(list.his[hisEnd+1-nHis : hisEnd+1])
	}
	if nLive > 0 {
		res.Append(live[len(live)-nLive:])
	}
	return res, nil
}

// BarSliceByRange returns the bars of stdCode with keys in [stime, etime].
// A zero etime means "up to the latest bar".
func (e *Engine) BarSliceByRange(stdCode string, period market.Period, stime, etime uint64) (*market.Slice[market.Bar], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	if etime == 0 {
		etime = math.MaxUint64
	}
	res := market.NewSlice[market.Bar]()

	list := e.lockedBars(info, period)
	defer list.mu.Unlock()

	key := func(b *market.Bar) uint64 { return b.Key(period) }

	if lo, hi := lowerBound(list.his, key, stime), lastAtOrBefore(list.his, key, etime); hi >= lo {
		res.Append(list.his[lo : hi+1])
	}
	res.Append(e.liveBars(list, stime, etime))
	return res, nil
}

func barsKeyOf(info market.CodeInfo, period market.Period) string {
	key := info.StdCode() + "#" + period.Dir()
	if info.Adjust == market.AdjustForward {
		key += "+"
	} else if info.Adjust == market.AdjustBackward {
		key += "-"
	}
	return key
}

// assembleBars builds the historical leg of a series and records how the
// live tail must be folded in.
func (e *Engine) assembleBars(list *barsList) {
	info := list.info
	switch {
	case info.IsRolling():
		e.assembleRolling(list)
	case info.Adjust != market.AdjustNone && e.isEquity(info):
		e.assembleEquity(list)
	default:
		list.his = e.readRawBars(info.Exchg, info.RawCode(), list.period)
		list.rawCode = info.RawCode()
	}
}

// assembleRolling splices the rollover legs of a continuous code into one
// series, scaling each leg by its cumulative factor over the baseline.
func (e *Engine) assembleRolling(list *barsList) {
	info := list.info
	commodity := info.CommodityID()
	sections := e.splicer.Split(info.Rule, commodity, 0, 0)
	if len(sections) == 0 {
		return
	}

	doAdjust := info.Adjust != market.AdjustNone
	baseline := hot.Baseline(sections, info.Adjust == market.AdjustBackward)

	dateKey := func(b *market.Bar) uint64 { return uint64(b.Date) }
	var out []market.Bar
	for _, sec := range sections {
		if sec.Code == "" {
			continue
		}
		bars := e.readRawBars(info.Exchg, sec.Code, list.period)
		lo := lowerBound(bars, dateKey, uint64(sec.StartDate))
		hi := lastAtOrBefore(bars, dateKey, uint64(sec.EndDate))
		if hi < lo {
			continue
		}
		start := len(out)
		out = append(out, bars[lo:hi+1]...)
		if scale := sectionScale(sec, baseline, doAdjust); scale != 1 {
			for i := start; i < len(out); i++ {
				scaleBar(&out[i], scale, e.cfg.AdjustFlag)
			}
		}
	}
	list.his = out

	last := sections[len(sections)-1]
	list.rawCode = last.Code
	list.liveScale = sectionScale(last, baseline, doAdjust)
}

// assembleEquity serves adjusted equity series: a pre-adjusted Q/H file wins
// when present, otherwise the raw file is rescaled bar by bar through the
// factor table.
func (e *Engine) assembleEquity(list *barsList) {
	info := list.info
	forward := info.Adjust == market.AdjustForward
	suffix := "H"
	if forward {
		suffix = "Q"
	}
	stem := info.Code + suffix
	std := info.StdCode()

	if e.his.HasBarFile(info.Exchg, stem, list.period) {
		list.his = e.his.ReadBars(info.Exchg, stem, list.period)
	} else {
		raw := e.readRawBars(info.Exchg, info.Code, list.period)
		list.his = e.adjustEquityBars(std, raw, forward)
	}

	list.rawCode = info.Code
	if !forward {
		// Backward series carry today's prices at factor(today); forward
		// series are already on today's scale.
		if f := e.adjust.LatestFactor(std); f != 0 {
			list.liveScale = f
		}
	}
}

// adjustEquityBars rescales a raw equity history through the factor table.
// Forward adjustment rebases every factor on the latest one so current
// prices stay untouched.
func (e *Engine) adjustEquityBars(stdCode string, raw []market.Bar, forward bool) []market.Bar {
	if len(raw) == 0 || !e.adjust.Has(stdCode) {
		return raw
	}
	baseline := 1.0
	if forward {
		if f := e.adjust.LatestFactor(stdCode); f != 0 {
			baseline = f
		}
	}
	out := make([]market.Bar, len(raw))
	copy(out, raw)
	for i := range out {
		scale := e.adjust.FactorAsOf(stdCode, out[i].Date) / baseline
		scaleBar(&out[i], scale, e.cfg.AdjustFlag)
	}
	return out
}

// liveBars returns the live tail of a series bounded to keys in
// [stime, etime]: the ring records past the end of the assembled history,
// rescaled when the series is adjusted. The boundary searches run under the
// block lock so a concurrent writer cannot move the tail mid-search.
// Unadjusted tails alias the mapping; adjusted tails are list-owned copies.
func (e *Engine) liveBars(list *barsList, stime, etime uint64) []market.Bar {
	if list.rawCode == "" || list.period == market.PeriodDay {
		return nil
	}
	kind := rt.KindMinute1
	if list.period == market.PeriodMinute5 {
		kind = rt.KindMinute5
	}
	blk := e.rt.GetBlock(list.info.Exchg, list.rawCode, kind)
	if blk == nil {
		return nil
	}

	blk.Lock()
	defer blk.Unlock()
	bars := blk.Bars()
	if len(bars) == 0 {
		return nil
	}

	if list.rtCursor < 0 {
		cur := 0
		if n := len(list.his); n > 0 {
			lastKey := list.his[n-1].Key(list.period)
			cur = lowerBound(bars, func(b *market.Bar) uint64 { return b.Key(list.period) }, lastKey+1)
		}
		list.rtCursor = cur
	}
	if list.rtCursor >= len(bars) {
		return nil
	}
	live := bars[list.rtCursor:]

	// Scaling leaves Date/Time untouched, so bounds found on the raw tail
	// hold for the adjusted copy too.
	key := func(b *market.Bar) uint64 { return b.Key(list.period) }
	lo := lowerBound(live, key, stime)
	hi := lastAtOrBefore(live, key, etime)
	if hi < lo {
		return nil
	}

	if list.liveScale == 1 {
		return live[lo : hi+1]
	}
	if len(bars) != list.adjSize {
		list.adjLive = make([]market.Bar, len(live))
		copy(list.adjLive, live)
		for i := range list.adjLive {
			scaleBar(&list.adjLive[i], list.liveScale, e.cfg.AdjustFlag)
		}
		list.adjSize = len(bars)
	}
	return list.adjLive[lo : hi+1]
}

// readRawBars reads the raw history of one concrete contract, preferring the
// injected loader over the file store.
func (e *Engine) readRawBars(exchg, rawCode string, period market.Period) []market.Bar {
	if e.loader != nil {
		if bars, ok := e.loader.LoadRawBars(exchg+"."+rawCode, period); ok {
			return bars
		}
	}
	return e.his.ReadBars(exchg, rawCode, period)
}

func sectionScale(sec hot.Section, baseline float64, doAdjust bool) float64 {
	if !doAdjust || baseline == 0 {
		return 1
	}
	return sec.Factor / baseline
}

// scaleBar applies a price scale to one bar. The flag selects which volume
// class fields move by the inverse factor.
func scaleBar(b *market.Bar, scale float64, flag uint32) {
	if scale == 1 || scale == 0 {
		return
	}
	b.Open *= scale
	b.High *= scale
	b.Low *= scale
	b.Close *= scale
	b.Settle *= scale

	inv := 1 / scale
	if flag&config.AdjustVolume != 0 {
		b.Volume *= inv
	}
	if flag&config.AdjustTurnover != 0 {
		b.Turnover *= inv
	}
	if flag&config.AdjustOpenInterest != 0 {
		b.OpenInterest *= inv
		b.DiffInterest *= inv
	}
}
