package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractv1 "github.com/muhammadchandra19/tickstore/internal/domain/contract/v1"
	hotrulev1 "github.com/muhammadchandra19/tickstore/internal/domain/hotrule/v1"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
)

func TestBarSliceByCount_PlainFutures(t *testing.T) {
	f := newFixture(t, "")
	bars := []market.Bar{
		minBar(20220103, 931, 4100),
		minBar(20220103, 932, 4102),
		minBar(20220104, 931, 4105),
		minBar(20220104, 932, 4108),
	}
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodMinute1, bars)

	got, err := f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodMinute1, 3, 0)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, bars[1:], collect(got))

	// Boundary cuts inside the series.
	got, err = f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodMinute1, 10, market.MakeBarTime(20220103, 932))
	require.NoError(t, err)
	assert.Equal(t, bars[:2], collect(got))

	// Zero count is an empty result, not an error.
	got, err = f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodMinute1, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestBarSliceByRange_PlainFutures(t *testing.T) {
	f := newFixture(t, "")
	bars := []market.Bar{
		minBar(20220103, 931, 4100),
		minBar(20220103, 932, 4102),
		minBar(20220104, 931, 4105),
		minBar(20220104, 932, 4108),
	}
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodMinute1, bars)

	got, err := f.engine.BarSliceByRange("SHFE.rb.2205", market.PeriodMinute1,
		market.MakeBarTime(20220103, 932), market.MakeBarTime(20220104, 931))
	require.NoError(t, err)
	assert.Equal(t, bars[1:3], collect(got))

	// Open end takes everything from stime on.
	got, err = f.engine.BarSliceByRange("SHFE.rb.2205", market.PeriodMinute1,
		market.MakeBarTime(20220104, 931), 0)
	require.NoError(t, err)
	assert.Equal(t, bars[2:], collect(got))
}

func TestBarSliceByCount_InvalidCode(t *testing.T) {
	f := newFixture(t, "")
	_, err := f.engine.BarSliceByCount("garbage", market.PeriodDay, 10, 0)
	assert.Error(t, err)
}

func TestBarSliceByCount_HotSplice(t *testing.T) {
	f := newFixture(t, "")
	f.hotRules.EXPECT().Switches(hotrulev1.RuleStd, "SHFE.rb").Return([]hotrulev1.Switch{
		{Date: 20220102, From: "rb2201", To: "rb2205", OldClose: 4100, NewClose: 4000},
	}).AnyTimes()

	f.writeBarFile(t, "SHFE", "rb2201", market.PeriodDay, []market.Bar{
		dayBar(20211230, 4080),
		dayBar(20211231, 4090),
		dayBar(20220101, 4100),
		// Past the section end; must not leak into the spliced series.
		dayBar(20220102, 4120),
	})
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodDay, []market.Bar{
		dayBar(20220102, 4010),
		dayBar(20220103, 4020),
	})

	got, err := f.engine.BarSliceByCount("SHFE.rb.HOT", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 5)

	// Unadjusted splice keeps raw prices on both legs.
	wantDates := []uint32{20211230, 20211231, 20220101, 20220102, 20220103}
	wantCloses := []float64{4080, 4090, 4100, 4010, 4020}
	for i := range bars {
		assert.Equal(t, wantDates[i], bars[i].Date)
		assert.InDelta(t, wantCloses[i], bars[i].Close, 1e-9)
	}
}

func TestBarSliceByCount_HotSpliceBackwardAdjusted(t *testing.T) {
	f := newFixture(t, "")
	f.hotRules.EXPECT().Switches(hotrulev1.RuleStd, "SHFE.rb").Return([]hotrulev1.Switch{
		{Date: 20220102, From: "rb2201", To: "rb2205", OldClose: 4100, NewClose: 4000},
	}).AnyTimes()

	f.writeBarFile(t, "SHFE", "rb2201", market.PeriodDay, []market.Bar{
		dayBar(20220101, 4100),
	})
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodDay, []market.Bar{
		dayBar(20220102, 4010),
	})

	got, err := f.engine.BarSliceByCount("SHFE.rb.HOT-", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 2)

	// Backward adjustment rebases old legs onto the latest leg's scale:
	// the 4100 close rolls into exactly the 4000 the new leg opened at.
	assert.InDelta(t, 4000, bars[0].Close, 1e-9)
	// The latest leg stays raw.
	assert.InDelta(t, 4010, bars[1].Close, 1e-9)
}

func TestBarSliceByCount_HotSpliceForwardAdjusted(t *testing.T) {
	f := newFixture(t, "")
	f.hotRules.EXPECT().Switches(hotrulev1.RuleStd, "SHFE.rb").Return([]hotrulev1.Switch{
		{Date: 20220102, From: "rb2201", To: "rb2205", OldClose: 4100, NewClose: 4000},
	}).AnyTimes()

	f.writeBarFile(t, "SHFE", "rb2201", market.PeriodDay, []market.Bar{
		dayBar(20220101, 4100),
	})
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodDay, []market.Bar{
		dayBar(20220102, 4000),
	})

	got, err := f.engine.BarSliceByCount("SHFE.rb.HOT+", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 2)

	// Forward adjustment keeps old legs raw and lifts newer legs by the
	// cumulative factor (4100/4000 = 1.025).
	assert.InDelta(t, 4100, bars[0].Close, 1e-9)
	assert.InDelta(t, 4000*1.025, bars[1].Close, 1e-9)
}

func TestBarSliceByCount_EquityForwardAdjusted(t *testing.T) {
	adjFile := filepath.Join(t.TempDir(), "adjfactors.json")
	require.NoError(t, os.WriteFile(adjFile, []byte(`{
		"SSE": {"600000": [{"date": 20220101, "factor": 2.0}]}
	}`), 0o644))

	f := newFixture(t, adjFile)
	f.contracts.EXPECT().Info("SSE", "STK").
		Return(contractv1.Info{Category: contractv1.CategoryStock}, true).AnyTimes()

	f.writeBarFile(t, "SSE", "600000", market.PeriodDay, []market.Bar{
		dayBar(20211230, 20),
		dayBar(20220104, 10),
	})

	got, err := f.engine.BarSliceByCount("SSE.600000Q", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 2)

	// Pre-event prices halve onto today's scale; post-event prices stand.
	assert.InDelta(t, 10, bars[0].Close, 1e-9)
	assert.InDelta(t, 10, bars[1].Close, 1e-9)
}

func TestBarSliceByCount_EquityBackwardAdjusted(t *testing.T) {
	adjFile := filepath.Join(t.TempDir(), "adjfactors.json")
	require.NoError(t, os.WriteFile(adjFile, []byte(`{
		"SSE": {"600000": [{"date": 20220101, "factor": 2.0}]}
	}`), 0o644))

	f := newFixture(t, adjFile)
	f.contracts.EXPECT().Info("SSE", "STK").
		Return(contractv1.Info{Category: contractv1.CategoryStock}, true).AnyTimes()

	f.writeBarFile(t, "SSE", "600000", market.PeriodDay, []market.Bar{
		dayBar(20211230, 20),
		dayBar(20220104, 10),
	})

	got, err := f.engine.BarSliceByCount("SSE.600000H", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 2)

	// Pre-event prices stand; post-event prices double back onto the old
	// scale.
	assert.InDelta(t, 20, bars[0].Close, 1e-9)
	assert.InDelta(t, 20, bars[1].Close, 1e-9)
}

func TestBarSliceByCount_EquityPreAdjustedFile(t *testing.T) {
	f := newFixture(t, "")
	f.contracts.EXPECT().Info("SSE", "STK").
		Return(contractv1.Info{Category: contractv1.CategoryStock}, true).AnyTimes()

	// The pre-adjusted file wins over on-the-fly factor application.
	f.writeBarFile(t, "SSE", "600000Q", market.PeriodDay, []market.Bar{
		dayBar(20211230, 7.77),
	})
	f.writeBarFile(t, "SSE", "600000", market.PeriodDay, []market.Bar{
		dayBar(20211230, 20),
	})

	got, err := f.engine.BarSliceByCount("SSE.600000Q", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 1)
	assert.InDelta(t, 7.77, bars[0].Close, 1e-9)
}

func TestBarSliceByCount_MergesLiveTail(t *testing.T) {
	f := newFixture(t, "")
	his := []market.Bar{
		minBar(20220103, 1459, 4100),
		minBar(20220103, 1500, 4102),
	}
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodMinute1, his)

	live := []market.Bar{
		minBar(20220104, 931, 4105),
		minBar(20220104, 932, 4106),
		minBar(20220104, 933, 4107),
	}
	f.writeRing(t, "SHFE", "rb2205", rt.KindMinute1, market.BytesOfBars(live), 3)

	got, err := f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodMinute1, 4, 0)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 4)
	assert.Equal(t, his[1], bars[0])
	assert.Equal(t, live, bars[1:])

	// The result spans two backing segments: history and the ring tail.
	assert.Len(t, got.Segments(), 2)
}

func TestBarSlice_LiveTailBoundedInsideRing(t *testing.T) {
	f := newFixture(t, "")
	his := []market.Bar{minBar(20220103, 1500, 4102)}
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodMinute1, his)

	live := []market.Bar{
		minBar(20220104, 931, 4105),
		minBar(20220104, 932, 4106),
		minBar(20220104, 933, 4107),
	}
	f.writeRing(t, "SHFE", "rb2205", rt.KindMinute1, market.BytesOfBars(live), 3)

	// The end time falls inside the ring tail; the returned live segment is
	// cut at that bar, not at the ring's current end.
	etime := market.MakeBarTime(20220104, 932)
	got, err := f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodMinute1, 3, etime)
	require.NoError(t, err)
	bars := collect(got)
	require.Len(t, bars, 3)
	assert.Equal(t, his[0], bars[0])
	assert.Equal(t, live[:2], bars[1:])

	ranged, err := f.engine.BarSliceByRange("SHFE.rb.2205", market.PeriodMinute1,
		market.MakeBarTime(20220104, 932), market.MakeBarTime(20220104, 933))
	require.NoError(t, err)
	require.Equal(t, 2, ranged.Len())
	assert.Equal(t, live[1], *ranged.First())
	assert.Equal(t, live[2], *ranged.Last())
}

func TestBarSliceByRange_CountRangeConsistency(t *testing.T) {
	f := newFixture(t, "")
	bars := []market.Bar{
		minBar(20220103, 931, 4100),
		minBar(20220103, 932, 4102),
		minBar(20220104, 931, 4105),
	}
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodMinute1, bars)

	byCount, err := f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodMinute1, 3, market.MakeBarTime(20220104, 931))
	require.NoError(t, err)
	byRange, err := f.engine.BarSliceByRange("SHFE.rb.2205", market.PeriodMinute1,
		market.MakeBarTime(20220103, 931), market.MakeBarTime(20220104, 931))
	require.NoError(t, err)

	assert.Equal(t, collect(byCount), collect(byRange))
}

func TestClearCache_ReloadsFromDisk(t *testing.T) {
	f := newFixture(t, "")
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodDay, []market.Bar{dayBar(20220103, 4100)})

	got, err := f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	// A new session lands on disk; the cached series does not see it until
	// the cache is dropped.
	f.writeBarFile(t, "SHFE", "rb2205", market.PeriodDay, []market.Bar{
		dayBar(20220103, 4100),
		dayBar(20220104, 4105),
	})

	got, err = f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())

	f.engine.ClearCache()
	got, err = f.engine.BarSliceByCount("SHFE.rb.2205", market.PeriodDay, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}
