package adjust

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	loaderMock "github.com/muhammadchandra19/tickstore/internal/domain/loader/v1/mock"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

func writeFactorFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adjfactors.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTable_LoadFile(t *testing.T) {
	path := writeFactorFile(t, `{
		"SSE": {
			"600000": [
				{"date": 20200601, "factor": 1.2},
				{"date": 20100601, "factor": 1.1}
			],
			"STK.600036": [
				{"date": 20150101, "factor": 2.0}
			]
		}
	}`)

	table := NewTable(logger.NewNop())
	require.NoError(t, table.LoadFile(path))

	// Bare code keys get the equity product id; lists sort ascending and
	// gain the sentinel.
	require.True(t, table.Has("SSE.STK.600000"))
	require.True(t, table.Has("SSE.STK.600036"))

	factors := table.Factors("SSE.STK.600000")
	require.Len(t, factors, 3)
	assert.Equal(t, SentinelDate, factors[0].Date)
	assert.Equal(t, 1.0, factors[0].Factor)
	assert.Equal(t, uint32(20100601), factors[1].Date)
	assert.Equal(t, uint32(20200601), factors[2].Date)
}

func TestTable_FactorAsOf(t *testing.T) {
	table := NewTable(logger.NewNop())
	table.put("SSE.STK.600000", []Factor{
		{Date: 20100601, Factor: 1.1},
		{Date: 20200601, Factor: 1.2},
	})

	testCases := []struct {
		name string
		date uint32
		want float64
	}{
		{name: "before first event", date: 20050101, want: 1.0},
		{name: "on first event", date: 20100601, want: 1.1},
		{name: "between events", date: 20150101, want: 1.1},
		{name: "after last event", date: 20210101, want: 1.2},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, table.FactorAsOf("SSE.STK.600000", testCase.date))
		})
	}

	assert.Equal(t, 1.0, table.FactorAsOf("SSE.STK.999999", 20210101))
	assert.Equal(t, 1.2, table.LatestFactor("SSE.STK.600000"))
	assert.Equal(t, 1.0, table.LatestFactor("SSE.STK.999999"))
}

func TestTable_LoadFile_Malformed(t *testing.T) {
	path := writeFactorFile(t, `{"SSE": not json`)

	table := NewTable(logger.NewNop())
	err := table.LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.AdjustConfigError))

	// The table stays usable at factor 1.0.
	assert.Equal(t, 1.0, table.FactorAsOf("SSE.STK.600000", 20210101))
}

func TestTable_LoadFile_Missing(t *testing.T) {
	table := NewTable(logger.NewNop())
	require.NoError(t, table.LoadFile(filepath.Join(t.TempDir(), "absent.json")))
}

func TestTable_LoadFromLoader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := loaderMock.NewMockAdjFactorLoader(ctrl)
	loader.EXPECT().LoadAdjFactors(gomock.Any()).DoAndReturn(
		func(sink func(string, []uint32, []float64)) bool {
			sink("SZSE.STK.000001", []uint32{20180101, 20190101}, []float64{1.05, 1.15})
			return true
		})

	table := NewTable(logger.NewNop())
	require.True(t, table.LoadFromLoader(loader))
	assert.Equal(t, 1.05, table.FactorAsOf("SZSE.STK.000001", 20180601))
	assert.Equal(t, 1.15, table.LatestFactor("SZSE.STK.000001"))

	assert.False(t, table.LoadFromLoader(nil))
}
