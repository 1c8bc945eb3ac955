package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesOverlay_RoundTrip(t *testing.T) {
	bars := []Bar{
		{Date: 20220104, Time: MakeBarTime(20220104, 931), Open: 4100, Close: 4105, Volume: 120},
		{Date: 20220104, Time: MakeBarTime(20220104, 932), Open: 4105, Close: 4102, Volume: 95},
	}

	buf := BytesOfBars(bars)
	require.Len(t, buf, 2*BarSize)

	got := BarsOf(buf)
	require.Len(t, got, 2)
	assert.Equal(t, bars, got)

	// A trailing partial record is dropped, not misread.
	assert.Len(t, BarsOf(buf[:len(buf)-1]), 1)
	assert.Nil(t, BarsOf(nil))
}

func TestLegacyTick_Widen(t *testing.T) {
	var legacy LegacyTick
	setCstr(legacy.Exchg[:], "SHFE")
	setCstr(legacy.Code[:], "rb2205")
	legacy.Price = 4102.5
	legacy.High = 4110
	legacy.Low = 4090
	legacy.Volume = 12
	legacy.TradingDate = 20220104
	legacy.ActionDate = 20220104
	legacy.ActionTime = 93059500
	legacy.BidPrices[0] = 4102
	legacy.AskPrices[4] = 4103.5

	wide := legacy.Widen()
	assert.Equal(t, "SHFE", wide.Exchange())
	assert.Equal(t, "rb2205", wide.Instrument())
	assert.InDelta(t, 4102.5, wide.Price, 1e-6)
	assert.InDelta(t, 4110, wide.High, 1e-6)
	assert.Equal(t, uint32(20220104), wide.TradingDate)
	assert.Equal(t, uint32(93059500), wide.ActionTime)
	assert.InDelta(t, 4102, wide.BidPrices[0], 1e-6)
	assert.InDelta(t, 4103.5, wide.AskPrices[4], 1e-6)
	// Levels 5-9 have no legacy source.
	assert.Zero(t, wide.BidPrices[5])
	assert.Zero(t, wide.AskPrices[9])
}

func TestLegacyBar_Widen(t *testing.T) {
	legacy := LegacyBar{
		Date:   20220104,
		Time:   uint32(MakeBarTime(20220104, 931)),
		Open:   4100,
		High:   4111,
		Low:    4095,
		Close:  4105,
		Volume: 120,
	}

	wide := legacy.Widen()
	assert.Equal(t, uint32(20220104), wide.Date)
	assert.Equal(t, MakeBarTime(20220104, 931), wide.Time)
	assert.InDelta(t, 4111, wide.High, 1e-6)
	assert.InDelta(t, 120, wide.Volume, 1e-6)
}
