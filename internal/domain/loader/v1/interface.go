// Package v1 defines the optional external history loader callbacks. When
// present they are consulted before the filesystem, so deployments can back
// the engine with a remote history service without touching the stores.
package v1

import (
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// HistoryLoader loads raw (unadjusted) historical records for one concrete
// contract, keyed by its exchange-qualified raw code, e.g. "SHFE.rb2205" or
// "SSE.600000". The boolean return is false when the loader has no data for
// the key, in which case the caller falls back to the filesystem.
type HistoryLoader interface {
	LoadRawBars(rawCode string, period market.Period) ([]market.Bar, bool)
	LoadRawTicks(rawCode string, tradingDate uint32) ([]market.Tick, bool)
}

// AdjFactorLoader loads adjustment factors for all instruments. The sink is
// invoked once per instrument with parallel date/factor slices.
type AdjFactorLoader interface {
	LoadAdjFactors(sink func(stdCode string, dates []uint32, factors []float64)) bool
}
