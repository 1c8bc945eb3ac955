package his

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/muhammadchandra19/tickstore/internal/codec"
	loaderMock "github.com/muhammadchandra19/tickstore/internal/domain/loader/v1/mock"
	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

func writeBlockFile(t *testing.T, path string, block []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, block, 0o644))
}

func tickFilePath(root, exchg, code string, date uint32) string {
	return filepath.Join(root, "his", "ticks", exchg, strconv.Itoa(int(date)), code+".dsb")
}

func sampleTicks(date uint32) []market.Tick {
	ticks := make([]market.Tick, 2)
	for i := range ticks {
		ticks[i].SetExchange("SHFE")
		ticks[i].SetInstrument("rb2205")
		ticks[i].TradingDate = date
		ticks[i].ActionDate = date
		ticks[i].ActionTime = 93000000 + uint32(i)*500
		ticks[i].Price = 4100 + float64(i)
	}
	return ticks
}

func TestStore_ReadTicks(t *testing.T) {
	root := t.TempDir()
	ticks := sampleTicks(20220104)
	block := codec.WrapCompressed(market.BytesOfTicks(ticks), codec.BlockTypeHisTicks)
	writeBlockFile(t, tickFilePath(root, "SHFE", "rb2205", 20220104), block)

	store := NewStore(root, nil, logger.NewNop())

	got := store.ReadTicks("SHFE", "rb2205", 20220104)
	require.Len(t, got, 2)
	assert.Equal(t, ticks, got)

	// Second read is served from cache even after the file is gone.
	require.NoError(t, os.Remove(tickFilePath(root, "SHFE", "rb2205", 20220104)))
	assert.Equal(t, ticks, store.ReadTicks("SHFE", "rb2205", 20220104))
}

func TestStore_ReadTicks_LegacyFile(t *testing.T) {
	root := t.TempDir()

	var legacy market.LegacyTick
	legacy.TradingDate = 20220104
	legacy.ActionDate = 20220104
	legacy.ActionTime = 93000000
	legacy.Price = 4102.5

	block := codec.AppendHeader(nil, codec.BlockTypeHisTicks, codec.VersionRaw)
	block = append(block, market.BytesOfLegacyTicks([]market.LegacyTick{legacy})...)
	writeBlockFile(t, tickFilePath(root, "SHFE", "rb2205", 20220104), block)

	store := NewStore(root, nil, logger.NewNop())
	got := store.ReadTicks("SHFE", "rb2205", 20220104)
	require.Len(t, got, 1)
	assert.InDelta(t, 4102.5, got[0].Price, 1e-4)
	assert.Equal(t, uint32(20220104), got[0].TradingDate)
}

func TestStore_ReadTicks_Missing(t *testing.T) {
	store := NewStore(t.TempDir(), nil, logger.NewNop())
	assert.Nil(t, store.ReadTicks("SHFE", "rb2205", 20220104))
}

func TestStore_ReadTicks_Corrupt(t *testing.T) {
	root := t.TempDir()
	writeBlockFile(t, tickFilePath(root, "SHFE", "rb2205", 20220104), []byte("not a block"))

	store := NewStore(root, nil, logger.NewNop())
	assert.Nil(t, store.ReadTicks("SHFE", "rb2205", 20220104))
}

func TestStore_ReadTicks_LoaderFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ticks := sampleTicks(20220104)
	loader := loaderMock.NewMockHistoryLoader(ctrl)
	loader.EXPECT().LoadRawTicks("SHFE.rb2205", uint32(20220104)).Return(ticks, true).Times(1)

	store := NewStore(t.TempDir(), loader, logger.NewNop())
	assert.Equal(t, ticks, store.ReadTicks("SHFE", "rb2205", 20220104))

	// Cached; the loader is not consulted again.
	assert.Equal(t, ticks, store.ReadTicks("SHFE", "rb2205", 20220104))
}

func TestStore_ReadBars(t *testing.T) {
	root := t.TempDir()
	bars := []market.Bar{
		{Date: 20220103, Time: market.MakeBarTime(20220103, 931), Close: 4100},
		{Date: 20220104, Time: market.MakeBarTime(20220104, 931), Close: 4105},
	}
	path := filepath.Join(root, "his", "min1", "SHFE", "rb2205.dsb")
	writeBlockFile(t, path, codec.Wrap(market.BytesOfBars(bars), codec.BlockTypeHisMinute1))

	store := NewStore(root, nil, logger.NewNop())

	assert.True(t, store.HasBarFile("SHFE", "rb2205", market.PeriodMinute1))
	assert.False(t, store.HasBarFile("SHFE", "rb2209", market.PeriodMinute1))

	got := store.ReadBars("SHFE", "rb2205", market.PeriodMinute1)
	assert.Equal(t, bars, got)
	assert.Nil(t, store.ReadBars("SHFE", "rb2209", market.PeriodMinute1))
}

func TestStore_Level2Reads(t *testing.T) {
	root := t.TempDir()
	date := uint32(20220104)

	var queue market.OrderQueue
	queue.TradingDate = date
	queue.ActionDate = date
	queue.ActionTime = 93000000
	queue.Price = 4100
	writeBlockFile(t,
		filepath.Join(root, "his", "queue", "SZSE", "20220104", "000001.dsb"),
		codec.Wrap(market.BytesOfOrderQueues([]market.OrderQueue{queue}), codec.BlockTypeHisOrderQueue))

	var detail market.OrderDetail
	detail.TradingDate = date
	detail.ActionDate = date
	detail.ActionTime = 93000100
	detail.Price = 4101
	writeBlockFile(t,
		filepath.Join(root, "his", "orders", "SZSE", "20220104", "000001.dsb"),
		codec.Wrap(market.BytesOfOrderDetails([]market.OrderDetail{detail}), codec.BlockTypeHisOrderDetail))

	var tx market.Transaction
	tx.TradingDate = date
	tx.ActionDate = date
	tx.ActionTime = 93000200
	tx.Price = 4102
	writeBlockFile(t,
		filepath.Join(root, "his", "trans", "SZSE", "20220104", "000001.dsb"),
		codec.Wrap(market.BytesOfTransactions([]market.Transaction{tx}), codec.BlockTypeHisTransaction))

	store := NewStore(root, nil, logger.NewNop())

	queues := store.ReadOrderQueue("SZSE", "000001", date)
	require.Len(t, queues, 1)
	assert.Equal(t, queue, queues[0])

	details := store.ReadOrderDetails("SZSE", "000001", date)
	require.Len(t, details, 1)
	assert.Equal(t, detail, details[0])

	trans := store.ReadTransactions("SZSE", "000001", date)
	require.Len(t, trans, 1)
	assert.Equal(t, tx, trans[0])
}
