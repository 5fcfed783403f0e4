package window

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

// DefaultMaxCells caps the bounding-box area a Grid will allocate.
// Each cell costs one occupancy byte plus a four-byte prefix sum.
const DefaultMaxCells = 1 << 27

const bytesPerCell = 5

// Grid is the dense occupancy grid over a point set's bounding box together
// with its inclusive 2D prefix sums. Both are read-only after NewGrid.
//
// Cells are stored column-major by X: index (i, j) lives at i*H + j, where
// i = x - MinX and j = z - MinZ.
type Grid struct {
	bounds chunkset.Bounds
	w, h   int
	cells  []uint8
	prefix []int32
}

type gridOptions struct {
	maxCells int
}

// Option configures NewGrid.
type Option func(*gridOptions)

// WithMaxCells overrides DefaultMaxCells. n <= 0 removes the limit.
func WithMaxCells(n int) Option {
	return func(o *gridOptions) { o.maxCells = n }
}

// NewGrid builds the occupancy grid and prefix-sum matrix for set.
func NewGrid(set *chunkset.Set, opts ...Option) (*Grid, error) {
	o := gridOptions{maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(&o)
	}

	b, ok := set.Bounds()
	if !ok {
		return nil, ErrEmptyInput
	}

	w, h := b.Width(), b.Height()
	if o.maxCells > 0 && int64(w)*int64(h) > int64(o.maxCells) {
		area := uint64(w) * uint64(h)
		return nil, fmt.Errorf("%w: bounding box %dx%d needs %s (limit %d cells)",
			ErrGridTooLarge, w, h, humanize.IBytes(area*bytesPerCell), o.maxCells)
	}

	g := &Grid{
		bounds: b,
		w:      w,
		h:      h,
		cells:  make([]uint8, w*h),
		prefix: make([]int32, w*h),
	}
	set.Each(func(p chunkset.Pos) {
		g.cells[(p.X-b.MinX)*h+(p.Z-b.MinZ)] = 1
	})
	g.accumulate()
	return g, nil
}

// accumulate fills the prefix matrix:
// P[i][j] = cell[i][j] + P[i-1][j] + P[i][j-1] - P[i-1][j-1].
func (g *Grid) accumulate() {
	h := g.h
	for i := 0; i < g.w; i++ {
		for j := 0; j < h; j++ {
			s := int32(g.cells[i*h+j])
			if i > 0 {
				s += g.prefix[(i-1)*h+j]
			}
			if j > 0 {
				s += g.prefix[i*h+j-1]
			}
			if i > 0 && j > 0 {
				s -= g.prefix[(i-1)*h+j-1]
			}
			g.prefix[i*h+j] = s
		}
	}
}

// Bounds returns the bounding box the grid covers.
func (g *Grid) Bounds() chunkset.Bounds { return g.bounds }

// Occupied reports whether the world cell (x, z) holds a point.
// Cells outside the bounding box are empty.
func (g *Grid) Occupied(x, z int) bool {
	if !g.bounds.Contains(chunkset.Pos{X: x, Z: z}) {
		return false
	}
	return g.cells[(x-g.bounds.MinX)*g.h+(z-g.bounds.MinZ)] == 1
}

// Prefix returns P[i][j] for local indices; -1 on either axis yields 0.
func (g *Grid) Prefix(i, j int) int {
	if i < 0 || j < 0 {
		return 0
	}
	return int(g.prefix[i*g.h+j])
}

// Total returns the number of occupied cells.
func (g *Grid) Total() int {
	return g.Prefix(g.w-1, g.h-1)
}

// Sum counts occupied cells in the w×h window whose top-left world cell is
// (x0, z0). The window must lie inside Bounds; Search never asks otherwise.
func (g *Grid) Sum(x0, z0, w, h int) int {
	x1 := x0 - g.bounds.MinX
	z1 := z0 - g.bounds.MinZ
	x2 := x1 + w - 1
	z2 := z1 + h - 1
	return g.Prefix(x2, z2) - g.Prefix(x1-1, z2) - g.Prefix(x2, z1-1) + g.Prefix(x1-1, z1-1)
}
