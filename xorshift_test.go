package floatcheck

import "math"

// xorshift32 is a tiny deterministic generator of raw bit patterns.
type xorshift32 struct {
	x uint32
}

func newXorshift32() *xorshift32 {
	return &xorshift32{x: 2463534242}
}

func (r *xorshift32) Uint32() uint32 {
	x := r.x
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.x = x
	return x
}

// Float32 returns an arbitrary binary32 pattern, NaNs included.
func (r *xorshift32) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// Float16Pair returns two arbitrary binary16 patterns.
func (r *xorshift32) Float16Pair() (Float16, Float16) {
	x := r.Uint32()
	return Float16(x), Float16(x >> 16)
}
