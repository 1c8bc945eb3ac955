// Package hot turns rollover rule data into contiguous date sections, each
// pinned to one concrete contract and carrying the cumulative adjustment
// factor accumulated across the rollovers before it.
package hot

import (
	hotrulev1 "github.com/muhammadchandra19/tickstore/internal/domain/hotrule/v1"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Section describes one leg of a continuous instrument: Code backs the
// continuous series from StartDate through EndDate inclusive. Factor is the
// cumulative product of oldClose/newClose over all rollovers up to and
// including the one that activated this leg; the oldest leg carries 1.0.
type Section struct {
	Code      string
	StartDate uint32
	EndDate   uint32
	Factor    float64
}

// EndlessDate caps the open-ended last section.
const EndlessDate uint32 = 99990101

// FloorDate floors the open-ended first section.
const FloorDate uint32 = 19900101

// Splicer answers section and active-leg queries on top of a rollover rule
// provider.
type Splicer struct {
	provider hotrulev1.Provider
	logger   logger.Interface
}

// NewSplicer creates a splicer over the given rule provider.
func NewSplicer(provider hotrulev1.Provider, log logger.Interface) *Splicer {
	return &Splicer{provider: provider, logger: log}
}

// Split returns the sections of (ruleTag, commodity) overlapping
// [startDate, endDate], ascending and clamped to the range. Sections are
// pairwise non-overlapping and jointly cover the range except where the rule
// has no data. The earliest event's From leg is dropped when unknown.
func (s *Splicer) Split(ruleTag, commodity string, startDate, endDate uint32) []Section {
	switches := s.provider.Switches(ruleTag, commodity)
	if len(switches) == 0 {
		return nil
	}
	if startDate == 0 {
		startDate = FloorDate
	}
	if endDate == 0 {
		endDate = EndlessDate
	}

	all := make([]Section, 0, len(switches)+1)

	// Leg active before the first recorded switch. An empty From means the
	// rule has no predecessor on record, not an error.
	if first := switches[0]; first.From != "" {
		all = append(all, Section{
			Code:      first.From,
			StartDate: FloorDate,
			EndDate:   prevDate(first.Date),
			Factor:    1.0,
		})
	}

	factor := 1.0
	for i, sw := range switches {
		if sw.NewClose != 0 {
			// A missing close on either side makes this rollover a no-op
			// for adjustment purposes.
			if sw.OldClose != 0 {
				factor *= sw.OldClose / sw.NewClose
			}
		}
		end := EndlessDate
		if i+1 < len(switches) {
			// The next switch date is the true cutover; recorded end dates
			// can be off by a session around holidays.
			end = prevDate(switches[i+1].Date)
		}
		all = append(all, Section{
			Code:      sw.To,
			StartDate: sw.Date,
			EndDate:   end,
			Factor:    factor,
		})
	}

	out := make([]Section, 0, len(all))
	for _, sec := range all {
		if sec.EndDate < startDate || sec.StartDate > endDate {
			continue
		}
		if sec.StartDate < startDate {
			sec.StartDate = startDate
		}
		if sec.EndDate > endDate {
			sec.EndDate = endDate
		}
		out = append(out, sec)
	}
	return out
}

// Baseline returns the factor every section of a split is normalized
// against: the last section's factor for backward adjustment, 1.0 for
// forward adjustment.
func Baseline(sections []Section, backward bool) float64 {
	if !backward || len(sections) == 0 {
		return 1.0
	}
	last := sections[len(sections)-1].Factor
	if last == 0 {
		return 1.0
	}
	return last
}

// RawCodeAsOf returns the concrete contract backing (ruleTag, commodity) on
// the given date, empty when the rule has no data yet.
func (s *Splicer) RawCodeAsOf(ruleTag, commodity string, date uint32) string {
	switches := s.provider.Switches(ruleTag, commodity)
	code := ""
	for _, sw := range switches {
		if sw.Date > date {
			if code == "" {
				// Before the first switch the outgoing leg is active.
				code = sw.From
			}
			break
		}
		code = sw.To
	}
	return code
}

// PrevRawCodeAsOf returns the leg that was active immediately before the one
// active on the given date, empty when there is no predecessor on record.
func (s *Splicer) PrevRawCodeAsOf(ruleTag, commodity string, date uint32) string {
	switches := s.provider.Switches(ruleTag, commodity)
	prev := ""
	for _, sw := range switches {
		if sw.Date > date {
			break
		}
		prev = sw.From
	}
	return prev
}

// IsActive reports whether fullCode (raw contract code) is the leg backing
// (ruleTag, commodity) on the given date.
func (s *Splicer) IsActive(ruleTag, commodity, rawCode string, date uint32) bool {
	active := s.RawCodeAsOf(ruleTag, commodity, date)
	return active != "" && active == rawCode
}

// prevDate steps one calendar day back from a yyyymmdd date. Sections only
// need a date strictly before the next switch; session gaps are fine.
func prevDate(date uint32) uint32 {
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
