package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-daterange/internal/engine"
)

func TestIntRange(t *testing.T) {
	tests := []struct {
		from, to int
		expected []int
	}{
		{-1, 4, []int{-1, 0, 1, 2, 3, 4}},
		{4, -1, []int{4, 3, 2, 1, 0, -1}},
		{2, 2, []int{2}},
		{1, 1, []int{1}},
		{0, -2, []int{0, -1, -2}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, engine.IntRange(tt.from, tt.to), "IntRange(%d, %d)", tt.from, tt.to)
	}
}

func TestIntRange_OtherIntegerTypes(t *testing.T) {
	assert.Equal(t, []uint8{253, 254, 255}, engine.IntRange[uint8](253, 255), "must stop at the type's maximum")
	assert.Equal(t, []uint{2, 1, 0}, engine.IntRange[uint](2, 0), "must stop at zero for unsigned types")
	assert.Equal(t, []int64{-3, -2}, engine.IntRange[int64](-3, -2))
}

func TestIntRange_SpanWiderThanType(t *testing.T) {
	up := engine.IntRange[int8](-100, 100)
	assert.Len(t, up, 201)
	assert.Equal(t, int8(-100), up[0])
	assert.Equal(t, int8(100), up[200])

	down := engine.IntRange[int8](100, -100)
	assert.Len(t, down, 201)
	assert.Equal(t, int8(100), down[0])
	assert.Equal(t, int8(-100), down[200])

	assert.Len(t, engine.IntRange[int8](-128, 127), 256)
	assert.Len(t, engine.IntRange[int16](-20000, 20000), 40001)
	assert.Len(t, engine.IntRange[uint8](255, 0), 256)
}
