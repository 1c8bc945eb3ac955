package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice_SegmentsInOrder(t *testing.T) {
	s := NewSlice[Bar]()
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.First())
	assert.Nil(t, s.Last())

	s.Append([]Bar{{Date: 20220103}, {Date: 20220104}})
	s.Append([]Bar{{Date: 20220105}})
	s.Prepend([]Bar{{Date: 20220101}, {Date: 20220102}})

	require.Equal(t, 5, s.Len())
	assert.Equal(t, uint32(20220101), s.First().Date)
	assert.Equal(t, uint32(20220105), s.Last().Date)
	for i, want := range []uint32{20220101, 20220102, 20220103, 20220104, 20220105} {
		assert.Equal(t, want, s.At(i).Date)
	}
	assert.Nil(t, s.At(5))
	assert.Len(t, s.Segments(), 3)
}

func TestSlice_IgnoresEmptySegments(t *testing.T) {
	s := NewSlice[Tick]()
	s.Append(nil)
	s.Prepend([]Tick{})
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Segments())
}
