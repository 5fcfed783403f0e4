package chunkset

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Pos identifies a chunk by its X and Z coordinates.
type Pos struct{ X, Z int }

// DistSq returns the squared Euclidean distance from the origin.
func (p Pos) DistSq() uint64 {
	x, z := abs64(p.X), abs64(p.Z)
	return x*x + z*z
}

func abs64(v int) uint64 {
	if v < 0 {
		return uint64(-int64(v))
	}
	return uint64(v)
}

// Distance returns the Euclidean distance from the origin.
func (p Pos) Distance() float64 {
	return math.Sqrt(float64(p.DistSq()))
}

// Less orders positions by X, then Z.
func (p Pos) Less(o Pos) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Z < o.Z
}

// Compare returns -1, 0 or +1 following Less. Suitable for slices.SortFunc.
func Compare(a, b Pos) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// ErrOutOfRange is returned for positions a Set cannot hold.
var ErrOutOfRange = errors.New("chunk coordinate out of int32 range")

// InRange reports whether v fits the coordinate range a Set can hold.
func InRange(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// Valid reports whether both components of p fit in int32.
func (p Pos) Valid() bool {
	return InRange(int64(p.X)) && InRange(int64(p.Z))
}

// Bounds is an inclusive axis-aligned box in chunk coordinates.
type Bounds struct {
	MinX, MinZ int
	MaxX, MaxZ int
}

// Width returns the number of columns along X.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows along Z.
func (b Bounds) Height() int { return b.MaxZ - b.MinZ + 1 }

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Pos) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Set is an unordered collection of unique chunk positions.
// Coordinates are packed into 64-bit keys: X in the high word, Z in the low word.
// Both components must fit in int32.
type Set struct {
	bm *roaring64.Bitmap
}

// New creates a Set holding the given positions. It panics if a position is
// out of range; use Add to handle that case as an error.
func New(ps ...Pos) *Set {
	s := &Set{bm: roaring64.New()}
	for _, p := range ps {
		if err := s.Add(p); err != nil {
			panic(err)
		}
	}
	return s
}

func pack(p Pos) uint64 {
	return uint64(uint32(int32(p.X)))<<32 | uint64(uint32(int32(p.Z)))
}

func unpack(k uint64) Pos {
	return Pos{X: int(int32(uint32(k >> 32))), Z: int(int32(uint32(k)))}
}

// Add inserts p. Adding a position twice is a no-op. Positions outside the
// int32 range are rejected with ErrOutOfRange and the set is left unchanged.
func (s *Set) Add(p Pos) error {
	if !p.Valid() {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, p.X, p.Z)
	}
	s.bm.Add(pack(p))
	return nil
}

// Contains reports whether p is in the set.
func (s *Set) Contains(p Pos) bool {
	return p.Valid() && s.bm.Contains(pack(p))
}

// Len returns the number of unique positions.
func (s *Set) Len() int {
	return int(s.bm.GetCardinality())
}

// Each calls fn for every position. Iteration order is unspecified.
func (s *Set) Each(fn func(p Pos)) {
	it := s.bm.Iterator()
	for it.HasNext() {
		fn(unpack(it.Next()))
	}
}

// Bounds returns the minimal box covering every position.
// ok is false when the set is empty.
func (s *Set) Bounds() (b Bounds, ok bool) {
	first := true
	s.Each(func(p Pos) {
		if first {
			b = Bounds{MinX: p.X, MinZ: p.Z, MaxX: p.X, MaxZ: p.Z}
			first = false
			return
		}
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinZ = min(b.MinZ, p.Z)
		b.MaxZ = max(b.MaxZ, p.Z)
	})
	return b, !first
}
