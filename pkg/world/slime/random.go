package slime

// JavaRandom reproduces java.util.Random's 48-bit linear congruential generator
// so seed-derived values match the game exactly.
type JavaRandom struct {
	seed int64
}

const (
	multiplier = 0x5DEECE66D
	addend     = 0xB
	mask       = (1 << 48) - 1
)

// NewJavaRandom returns a generator in the state new Random(seed) would have.
func NewJavaRandom(seed int64) *JavaRandom {
	r := &JavaRandom{}
	r.SetSeed(seed)
	return r
}

// SetSeed scrambles seed the same way Random.setSeed does.
func (r *JavaRandom) SetSeed(seed int64) {
	r.seed = (seed ^ multiplier) & mask
}

func (r *JavaRandom) next(bits uint) int32 {
	r.seed = (r.seed*multiplier + addend) & mask
	return int32(r.seed >> (48 - bits))
}

// NextInt returns the next uniformly distributed int32.
func (r *JavaRandom) NextInt() int32 {
	return r.next(32)
}

// NextIntn returns a value in [0, bound). bound must be positive.
func (r *JavaRandom) NextIntn(bound int32) int32 {
	if bound <= 0 {
		panic("slime: bound must be positive")
	}
	if bound&-bound == bound {
		return int32((int64(bound) * int64(r.next(31))) >> 31)
	}
	for {
		bits := r.next(31)
		val := bits % bound
		// Reject the tail that would bias the modulo; relies on int32 overflow.
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}
