package floatcheck

import "math"

// Class is the IEEE 754 category of a bit pattern.
// Exactly one class applies to any pattern of either width.
type Class int

const (
	ClassZero Class = iota
	ClassDenormal
	ClassNormal
	ClassInfinity
	ClassNaN
)

// SignBit32 reports whether the sign bit of f is set.
func SignBit32(f float32) bool {
	return math.Float32bits(f)&signMask32 != 0
}

// Exponent32 returns the biased 8-bit exponent field of f.
func Exponent32(f float32) int {
	return int(math.Float32bits(f)>>shift32) & mask32
}

// Mantissa32 returns the 23-bit mantissa field of f.
func Mantissa32(f float32) int {
	return int(math.Float32bits(f) & fracMask32)
}

// Classify32 returns the category of f, determined by its exponent and
// mantissa fields only.
func Classify32(f float32) Class {
	return classify(uint32(Exponent32(f)), uint32(Mantissa32(f)), mask32)
}

// Class returns the category of f.
func (f Float16) Class() Class {
	return classify(uint32(f>>shift16)&mask16, uint32(f&fracMask16), mask16)
}

func classify(exp, frac, maxExp uint32) Class {
	switch {
	case exp == 0 && frac == 0:
		return ClassZero
	case exp == 0:
		return ClassDenormal
	case exp != maxExp:
		return ClassNormal
	case frac == 0:
		return ClassInfinity
	}
	return ClassNaN
}
