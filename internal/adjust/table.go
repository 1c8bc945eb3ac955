// Package adjust stores per-instrument ex-rights adjustment factors and
// answers "factor as of date" lookups. Only equities carry factor tables;
// futures rollover factors come from the hot section splicer instead.
package adjust

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	loaderv1 "github.com/muhammadchandra19/tickstore/internal/domain/loader/v1"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// SentinelDate floors every factor list so lookups never fall off the front.
const SentinelDate uint32 = 19900101

// Factor is one ex-rights event: prices before Date are scaled by Factor.
type Factor struct {
	Date   uint32  `json:"date"`
	Factor float64 `json:"factor"`
}

// Table holds per-instrument chronological factor lists keyed by standard
// code. Lists are always ascending by date and always start with a sentinel
// entry of factor 1.0.
type Table struct {
	mu      sync.RWMutex
	factors map[string][]Factor
	logger  logger.Interface
}

// NewTable creates an empty factor table.
func NewTable(log logger.Interface) *Table {
	return &Table{
		factors: make(map[string][]Factor),
		logger:  log,
	}
}

// LoadFromLoader populates the table through the injected loader callback.
// Returns false when the loader has no factor data.
func (t *Table) LoadFromLoader(loader loaderv1.AdjFactorLoader) bool {
	if loader == nil {
		return false
	}
	return loader.LoadAdjFactors(func(stdCode string, dates []uint32, factors []float64) {
		n := len(dates)
		if len(factors) < n {
			n = len(factors)
		}
		list := make([]Factor, 0, n)
		for i := 0; i < n; i++ {
			list = append(list, Factor{Date: dates[i], Factor: factors[i]})
		}
		t.put(stdCode, list)
	})
}

// LoadFile populates the table from a JSON factor file shaped as
// {exchange: {code or pid.code: [{date, factor}]}}. Code keys without an
// explicit product id are assumed to be equities. A malformed file is logged
// at error level and leaves the table untouched, so the adjustment feature
// degrades to factor 1.0 instead of blocking startup.
func (t *Table) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		tracer := errors.NewTracer(errors.AdjustConfigError).Wrap(err)
		t.logger.Error(tracer, logger.Field{Key: "path", Value: path})
		return tracer
	}

	var root map[string]map[string][]Factor
	if err := json.Unmarshal(data, &root); err != nil {
		tracer := errors.NewTracer(errors.AdjustConfigError).Wrap(err)
		t.logger.Error(tracer, logger.Field{Key: "path", Value: path})
		return tracer
	}

	count := 0
	for exchg, byCode := range root {
		for key, list := range byCode {
			if !strings.Contains(key, ".") {
				// No product id: assume equity.
				key = market.StockProduct + "." + key
			}
			t.put(exchg+"."+key, list)
			count++
		}
	}
	t.logger.Info("adjust factors loaded",
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "instruments", Value: count},
	)
	return nil
}

// FactorAsOf returns the adjustment factor effective for stdCode on the
// given date, 1.0 when the instrument has no table.
func (t *Table) FactorAsOf(stdCode string, date uint32) float64 {
	t.mu.RLock()
	list, ok := t.factors[stdCode]
	t.mu.RUnlock()
	if !ok || len(list) == 0 {
		return 1.0
	}

	// First entry dated after the target, stepped back one: the sentinel
	// guarantees idx >= 1.
	idx := sort.Search(len(list), func(i int) bool {
		return list[i].Date > date
	})
	if idx == len(list) {
		return list[len(list)-1].Factor
	}
	if idx == 0 {
		return list[0].Factor
	}
	return list[idx-1].Factor
}

// LatestFactor returns the most recent factor for stdCode, 1.0 when absent.
// Forward-adjusted series use it as their baseline.
func (t *Table) LatestFactor(stdCode string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list, ok := t.factors[stdCode]
	if !ok || len(list) == 0 {
		return 1.0
	}
	return list[len(list)-1].Factor
}

// Factors returns the full factor list for stdCode, nil when absent. The
// returned slice is shared and must be treated as read-only.
func (t *Table) Factors(stdCode string) []Factor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.factors[stdCode]
}

// Has reports whether stdCode carries a factor table.
func (t *Table) Has(stdCode string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.factors[stdCode]
	return ok
}

func (t *Table) put(stdCode string, list []Factor) {
	sorted := make([]Factor, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	if len(sorted) == 0 || sorted[0].Date > SentinelDate {
		sorted = append([]Factor{{Date: SentinelDate, Factor: 1.0}}, sorted...)
	}
	t.mu.Lock()
	t.factors[stdCode] = sorted
	t.mu.Unlock()
}
