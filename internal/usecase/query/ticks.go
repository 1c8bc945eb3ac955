package query

import (
	"github.com/muhammadchandra19/tickstore/internal/config"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
)

// TickSliceByCount returns the last count ticks of stdCode at or before
// etime (encoded tick time, zero for "now"). Rolling codes resolve each
// walked date to its backing contract; adjusted equity codes rescale prices
// through the factor table.
func (e *Engine) TickSliceByCount(stdCode string, count int, etime uint64) (*market.Slice[market.Tick], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByCount(e, info, rt.KindTicks, count, etime,
		(*market.Tick).Key,
		(*rt.Block).Ticks,
		func(rawCode string, date uint32) []market.Tick {
			return e.his.ReadTicks(info.Exchg, rawCode, date)
		},
		e.tickAdjuster(info),
	), nil
}

// TickSliceByRange returns the ticks of stdCode with encoded times in
// [stime, etime]. A zero etime means "up to now".
func (e *Engine) TickSliceByRange(stdCode string, stime, etime uint64) (*market.Slice[market.Tick], error) {
	info, err := market.ParseCode(stdCode)
	if err != nil {
		return nil, err
	}
	return sliceByRange(e, info, rt.KindTicks, stime, etime,
		(*market.Tick).Key,
		(*rt.Block).Ticks,
		func(rawCode string, date uint32) []market.Tick {
			return e.his.ReadTicks(info.Exchg, rawCode, date)
		},
		e.tickAdjuster(info),
	), nil
}

// tickAdjuster returns the per-day rescaling step for adjusted equity codes,
// nil when the code takes raw prices. The returned closure copies before
// scaling; the inputs belong to the store cache or the live ring.
func (e *Engine) tickAdjuster(info market.CodeInfo) adjustFn[market.Tick] {
	if info.Adjust == market.AdjustNone || !e.isEquity(info) {
		return nil
	}
	std := info.StdCode()
	if !e.adjust.Has(std) {
		return nil
	}
	baseline := 1.0
	if info.Adjust == market.AdjustForward {
		if f := e.adjust.LatestFactor(std); f != 0 {
			baseline = f
		}
	}
	flag := e.cfg.AdjustFlag
	return func(recs []market.Tick, tradingDate uint32) []market.Tick {
		scale := e.adjust.FactorAsOf(std, tradingDate) / baseline
		if scale == 1 || scale == 0 {
			return recs
		}
		out := make([]market.Tick, len(recs))
		copy(out, recs)
		for i := range out {
			scaleTick(&out[i], scale, flag)
		}
		return out
	}
}

// scaleTick applies a price scale to one tick, quote ladder included. The
// flag selects which volume class fields move by the inverse factor.
func scaleTick(t *market.Tick, scale float64, flag uint32) {
	if scale == 1 || scale == 0 {
		return
	}
	t.Price *= scale
	t.Open *= scale
	t.High *= scale
	t.Low *= scale
	t.SettlePrice *= scale
	t.UpperLimit *= scale
	t.LowerLimit *= scale
	t.PreClose *= scale
	t.PreSettle *= scale
	for i := range t.BidPrices {
		t.BidPrices[i] *= scale
		t.AskPrices[i] *= scale
	}

	inv := 1 / scale
	if flag&config.AdjustVolume != 0 {
		t.TotalVolume *= inv
		t.Volume *= inv
	}
	if flag&config.AdjustTurnover != 0 {
		t.TotalTurnover *= inv
		t.Turnover *= inv
	}
	if flag&config.AdjustOpenInterest != 0 {
		t.OpenInterest *= inv
		t.DiffInterest *= inv
		t.PreInterest *= inv
	}
}
