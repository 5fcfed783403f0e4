package slime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

func TestJavaRandomKnownValues(t *testing.T) {
	if got := NewJavaRandom(42).NextInt(); got != -1170105035 {
		t.Errorf("Random(42).nextInt() = %d, want -1170105035", got)
	}
	if got := NewJavaRandom(0).NextInt(); got != -1155484576 {
		t.Errorf("Random(0).nextInt() = %d, want -1155484576", got)
	}
	if got := NewJavaRandom(42).NextIntn(10); got != 0 {
		t.Errorf("Random(42).nextInt(10) = %d, want 0", got)
	}

	r := NewJavaRandom(42)
	want := []int32{30, 63, 48, 84, 70}
	for i, w := range want {
		if got := r.NextIntn(100); got != w {
			t.Errorf("Random(42) call %d nextInt(100) = %d, want %d", i, got, w)
		}
	}
}

func TestJavaRandomPowerOfTwoBound(t *testing.T) {
	r := NewJavaRandom(7)
	for range 1000 {
		v := r.NextIntn(16)
		if v < 0 || v >= 16 {
			t.Fatalf("NextIntn(16) = %d, out of range", v)
		}
	}
}

func TestIsSlimeChunkKnownLayout(t *testing.T) {
	tests := []struct {
		seed int64
		want []chunkset.Pos
	}{
		{12345, []chunkset.Pos{{X: -2, Z: 1}, {X: -1, Z: 2}, {X: 0, Z: -2}, {X: 3, Z: 0}}},
		{0, []chunkset.Pos{{X: -2, Z: 0}, {X: 1, Z: -3}, {X: 2, Z: -3}, {X: 2, Z: 2}}},
	}
	for _, tt := range tests {
		var got []chunkset.Pos
		n, err := Scan(tt.seed, chunkset.Pos{}, 3, func(p chunkset.Pos) { got = append(got, p) })
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "seed %d", tt.seed)
		assert.Equal(t, len(tt.want), n)
	}
}

func TestSlimeDensity(t *testing.T) {
	n, err := Scan(12345, chunkset.Pos{}, 49, func(chunkset.Pos) {})
	require.NoError(t, err)
	// 972 of 9801 chunks; roughly one in ten.
	assert.Equal(t, 972, n)
	assert.InDelta(t, 0.1, float64(n)/(99*99), 0.01)
}

func TestScanOffsetCenter(t *testing.T) {
	center := chunkset.Pos{X: 1000, Z: -1000}
	_, err := Scan(99, center, 5, func(p chunkset.Pos) {
		assert.True(t, IsSlimeChunk(99, int32(p.X), int32(p.Z)))
		assert.LessOrEqual(t, abs(p.X-center.X), 5)
		assert.LessOrEqual(t, abs(p.Z-center.Z), 5)
	})
	require.NoError(t, err)
}

func TestScanRejectsOutOfRangeRegion(t *testing.T) {
	tests := []struct {
		name   string
		center chunkset.Pos
		radius int
	}{
		{"wide center", chunkset.Pos{X: 1 << 32, Z: 0}, 1},
		{"radius crosses max", chunkset.Pos{X: 0, Z: math.MaxInt32 - 2}, 3},
		{"radius crosses min", chunkset.Pos{X: math.MinInt32 + 1, Z: 0}, 2},
		{"huge radius", chunkset.Pos{}, 1 << 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			n, err := Scan(1, tt.center, tt.radius, func(chunkset.Pos) { called = true })
			assert.ErrorIs(t, err, chunkset.ErrOutOfRange)
			assert.Zero(t, n)
			assert.False(t, called)
		})
	}

	_, err := Scan(1, chunkset.Pos{}, -1, func(chunkset.Pos) {})
	assert.Error(t, err)
}

func TestScanAtRangeEdge(t *testing.T) {
	center := chunkset.Pos{X: math.MaxInt32 - 2, Z: math.MinInt32 + 2}
	var got []chunkset.Pos
	n, err := Scan(7, center, 2, func(p chunkset.Pos) { got = append(got, p) })
	require.NoError(t, err)
	assert.Len(t, got, n)
	for _, p := range got {
		assert.True(t, p.Valid(), "%v", p)
		assert.True(t, IsSlimeChunk(7, int32(p.X), int32(p.Z)))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
