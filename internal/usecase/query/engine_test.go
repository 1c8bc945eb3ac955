package query

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/muhammadchandra19/tickstore/internal/codec"
	"github.com/muhammadchandra19/tickstore/internal/config"
	calendarMock "github.com/muhammadchandra19/tickstore/internal/domain/calendar/v1/mock"
	contractMock "github.com/muhammadchandra19/tickstore/internal/domain/contract/v1/mock"
	hotruleMock "github.com/muhammadchandra19/tickstore/internal/domain/hotrule/v1/mock"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/rt"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// engineFixture wires an engine over a temp storage root with mocked
// collaborators. Tests declare expectations on the mocks before querying.
type engineFixture struct {
	engine    *Engine
	root      string
	calendar  *calendarMock.MockService
	contracts *contractMock.MockService
	hotRules  *hotruleMock.MockProvider
}

func newFixture(t *testing.T, adjustFile string) *engineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &engineFixture{
		root:      t.TempDir(),
		calendar:  calendarMock.NewMockService(ctrl),
		contracts: contractMock.NewMockService(ctrl),
		hotRules:  hotruleMock.NewMockProvider(ctrl),
	}
	cfg := config.StoreConfig{
		RootDir:         f.root,
		AdjustFile:      adjustFile,
		JanitorInterval: time.Hour,
		IdleTimeout:     time.Hour,
	}
	f.engine = NewEngine(cfg, Deps{
		Calendar:  f.calendar,
		Contracts: f.contracts,
		HotRules:  f.hotRules,
	}, logger.NewNop())
	t.Cleanup(f.engine.Close)
	return f
}

func (f *engineFixture) writeBarFile(t *testing.T, exchg, fileStem string, period market.Period, bars []market.Bar) {
	t.Helper()
	btype := codec.BlockTypeHisDay
	switch period {
	case market.PeriodMinute1:
		btype = codec.BlockTypeHisMinute1
	case market.PeriodMinute5:
		btype = codec.BlockTypeHisMinute5
	}
	path := filepath.Join(f.root, "his", period.Dir(), exchg, fileStem+".dsb")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, codec.WrapCompressed(market.BytesOfBars(bars), btype), 0o644))
}

func (f *engineFixture) writeTickFile(t *testing.T, exchg, code string, date uint32, ticks []market.Tick) {
	t.Helper()
	path := filepath.Join(f.root, "his", "ticks", exchg, strconv.Itoa(int(date)), code+".dsb")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, codec.WrapCompressed(market.BytesOfTicks(ticks), codec.BlockTypeHisTicks), 0o644))
}

func (f *engineFixture) writeQueueFile(t *testing.T, exchg, code string, date uint32, queues []market.OrderQueue) {
	t.Helper()
	path := filepath.Join(f.root, "his", "queue", exchg, strconv.Itoa(int(date)), code+".dsb")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, codec.Wrap(market.BytesOfOrderQueues(queues), codec.BlockTypeHisOrderQueue), 0o644))
}

// writeRing lays out a .dmb ring file the way the external writer does:
// preamble, size, capacity, then the record array.
func (f *engineFixture) writeRing(t *testing.T, exchg, code string, kind rt.Kind, payload []byte, size uint32) {
	t.Helper()
	btype := codec.BlockTypeRTTicks
	switch kind {
	case rt.KindMinute1:
		btype = codec.BlockTypeRTMinute1
	case rt.KindMinute5:
		btype = codec.BlockTypeRTMinute5
	case rt.KindOrderQueue:
		btype = codec.BlockTypeRTOrderQueue
	case rt.KindOrderDetail:
		btype = codec.BlockTypeRTOrderDetail
	case rt.KindTransaction:
		btype = codec.BlockTypeRTTransaction
	}
	buf := codec.AppendHeader(nil, btype, codec.VersionRawV2)
	buf = binary.LittleEndian.AppendUint32(buf, size)
	buf = binary.LittleEndian.AppendUint32(buf, size)
	buf = append(buf, payload...)

	path := filepath.Join(f.root, "rt", kind.Dir(), exchg, code+".dmb")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func dayBar(date uint32, close float64) market.Bar {
	return market.Bar{Date: date, Open: close - 10, High: close + 5, Low: close - 15, Close: close, Volume: 100}
}

func minBar(date, hhmm uint32, close float64) market.Bar {
	return market.Bar{Date: date, Time: market.MakeBarTime(date, hhmm), Open: close - 1, High: close + 1, Low: close - 2, Close: close, Volume: 10}
}

func tickAt(date, actionTime uint32, price float64) market.Tick {
	var tk market.Tick
	tk.SetExchange("SHFE")
	tk.SetInstrument("rb2205")
	tk.TradingDate = date
	tk.ActionDate = date
	tk.ActionTime = actionTime
	tk.Price = price
	tk.BidPrices[0] = price - 0.5
	tk.AskPrices[0] = price + 0.5
	return tk
}

// collect flattens a multi-segment slice for assertions.
func collect[T any](s *market.Slice[T]) []T {
	out := make([]T, 0, s.Len())
	for _, seg := range s.Segments() {
		out = append(out, seg...)
	}
	return out
}
