// Package query is the top-level entry point of the storage engine: it
// resolves which historical files, hot sections and live rings back a
// standard code, runs the boundary searches and assembles multi-segment
// result slices.
package query

import (
	"sort"
	"sync"

	"github.com/muhammadchandra19/tickstore/internal/adjust"
	"github.com/muhammadchandra19/tickstore/internal/config"
	calendarv1 "github.com/muhammadchandra19/tickstore/internal/domain/calendar/v1"
	contractv1 "github.com/muhammadchandra19/tickstore/internal/domain/contract/v1"
	hotrulev1 "github.com/muhammadchandra19/tickstore/internal/domain/hotrule/v1"
	loaderv1 "github.com/muhammadchandra19/tickstore/internal/domain/loader/v1"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/hot"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/his"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// maxDayMisses bounds the backward day walk of count queries: after this
// many consecutive dates without a file the instrument is assumed to have no
// older data.
const maxDayMisses = 30

// floorDate is the hard floor of any backward day walk.
const floorDate uint32 = 19900101

// Deps bundles the external collaborators of the engine.
type Deps struct {
	// Calendar resolves trading dates.
	Calendar calendarv1.Service
	// Contracts looks up commodity metadata.
	Contracts contractv1.Service
	// HotRules serves rollover rule data for continuous codes.
	HotRules hotrulev1.Provider
	// Loader optionally serves raw history before the filesystem; may be nil.
	Loader loaderv1.HistoryLoader
	// AdjLoader optionally serves adjustment factors; may be nil.
	AdjLoader loaderv1.AdjFactorLoader
}

// Engine serves count-based and range-based queries over the historical file
// store and the real-time ring reader. Queries run synchronously on the
// calling goroutine; the mapping janitor is the only background activity.
type Engine struct {
	cfg    config.StoreConfig
	logger logger.Interface

	calendar  calendarv1.Service
	contracts contractv1.Service
	loader    loaderv1.HistoryLoader
	splicer   *hot.Splicer
	adjust    *adjust.Table
	his       *his.Store
	rt        *rt.Reader
	janitor   *rt.Janitor

	mu   sync.Mutex
	bars map[string]*barsList
}

// NewEngine wires an engine over the storage root in cfg. The janitor is
// created but not started; call Start to launch it.
func NewEngine(cfg config.StoreConfig, deps Deps, log logger.Interface) *Engine {
	e := &Engine{
		cfg:       cfg,
		logger:    log,
		calendar:  deps.Calendar,
		contracts: deps.Contracts,
		loader:    deps.Loader,
		splicer:   hot.NewSplicer(deps.HotRules, log),
		adjust:    adjust.NewTable(log),
		his:       his.NewStore(cfg.RootDir, deps.Loader, log),
		rt:        rt.NewReader(cfg.RootDir, log),
		bars:      make(map[string]*barsList),
	}
	e.janitor = rt.NewJanitor(e.rt, cfg.JanitorInterval, cfg.IdleTimeout, log)

	// Loader beats file; a malformed file only disables adjustment.
	if !e.adjust.LoadFromLoader(deps.AdjLoader) && cfg.AdjustFile != "" {
		_ = e.adjust.LoadFile(cfg.AdjustFile)
	}
	return e
}

// Start launches the mapping janitor.
func (e *Engine) Start() {
	e.janitor.Start()
}

// Close stops the janitor and releases every mapping.
func (e *Engine) Close() {
	e.janitor.Stop()
	e.rt.Close()
}

// ClearCache drops every assembled bar series. Subsequent queries reassemble
// from the stores.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	e.bars = make(map[string]*barsList)
	e.mu.Unlock()
}

// resolveRawCode returns the concrete contract backing info on a date:
// rolling codes go through the rule provider, everything else is its own
// backing.
func (e *Engine) resolveRawCode(info market.CodeInfo, date uint32) string {
	if info.IsRolling() {
		return e.splicer.RawCodeAsOf(info.Rule, info.CommodityID(), date)
	}
	return info.RawCode()
}

// isEquity reports whether info is an equity, preferring the metadata
// service over the product id convention.
func (e *Engine) isEquity(info market.CodeInfo) bool {
	if meta, ok := e.contracts.Info(info.Exchg, info.Product); ok {
		return meta.Category == contractv1.CategoryStock
	}
	return info.IsEquity()
}

// lowerBound returns the first index whose key is >= target, len(recs) when
// every key is smaller.
func lowerBound[T any](recs []T, key func(*T) uint64, target uint64) int {
	return sort.Search(len(recs), func(i int) bool {
		return key(&recs[i]) >= target
	})
}

// lastAtOrBefore returns the index of the record with the greatest key
// <= target, -1 when every key exceeds target.
func lastAtOrBefore[T any](recs []T, key func(*T) uint64, target uint64) int {
	idx := sort.Search(len(recs), func(i int) bool {
		return key(&recs[i]) > target
	})
	return idx - 1
}

// prevCalendarDate steps one calendar day back from a yyyymmdd date. The
// backward day walk tolerates non-session dates: their files simply do not
// exist.
func prevCalendarDate(date uint32) uint32 {
	day := date % 100
	if day > 1 {
		return date - 1
	}
	month := (date / 100) % 100
	year := date / 10000
	if month > 1 {
		return year*10000 + (month-1)*100 + 31
	}
	return (year-1)*10000 + 1231
}

// splitTickTime decomposes an encoded tick time into action date and the
// hhmm minute the calendar service expects. A zero tick time means "now".
func splitTickTime(tickTime uint64) (actionDate uint32, hhmm uint32) {
	actionDate = market.TickTimeDate(tickTime)
	actionTime := uint32(tickTime % 1000000000) // hhmmssmmm
	return actionDate, actionTime / 100000
}
