// Package slime answers which chunks spawn slimes for a given world seed.
package slime

import (
	"fmt"

	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

// BlocksPerChunk is the chunk edge length in blocks.
const BlocksPerChunk = 16

// chunkSeed mixes the world seed with chunk coordinates. The int32 products
// wrap exactly like the game's int arithmetic before widening.
func chunkSeed(worldSeed int64, x, z int32) int64 {
	return (worldSeed +
		int64(x*x*0x4c1906) +
		int64(x*0x5ac0db) +
		int64(z*z)*0x4307a7 +
		int64(z*0x5f24f)) ^ 0x3ad8025f
}

// IsSlimeChunk reports whether chunk (x, z) is a slime chunk in worldSeed.
func IsSlimeChunk(worldSeed int64, x, z int32) bool {
	return NewJavaRandom(chunkSeed(worldSeed, x, z)).NextIntn(10) == 0
}

// CheckRegion reports whether the square of the given radius around center
// lies inside the int32 chunk coordinate range.
func CheckRegion(center chunkset.Pos, radius int) error {
	if radius < 0 {
		return fmt.Errorf("negative radius %d", radius)
	}
	r := int64(radius)
	if !chunkset.InRange(int64(center.X)-r) || !chunkset.InRange(int64(center.X)+r) ||
		!chunkset.InRange(int64(center.Z)-r) || !chunkset.InRange(int64(center.Z)+r) {
		return fmt.Errorf("%w: radius %d around (%d,%d)", chunkset.ErrOutOfRange, radius, center.X, center.Z)
	}
	return nil
}

// Scan calls fn for every slime chunk in the square of the given radius around
// center, X ascending then Z ascending. It returns the number of chunks found.
// Regions leaving the int32 range are rejected before any chunk is visited.
func Scan(worldSeed int64, center chunkset.Pos, radius int, fn func(p chunkset.Pos)) (int, error) {
	if err := CheckRegion(center, radius); err != nil {
		return 0, err
	}
	n := 0
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			if IsSlimeChunk(worldSeed, int32(x), int32(z)) {
				n++
				fn(chunkset.Pos{X: x, Z: z})
			}
		}
	}
	return n, nil
}
