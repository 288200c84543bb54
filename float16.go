package floatcheck

import (
	"math"
)

// Float16 is an IEEE 754 binary16 bit pattern.
// No arithmetic is defined on it; promote with [Float16.Float32] first.
type Float16 uint16

// Bit layout and conversion constants. The encode and decode paths share
// this table so the two directions stay consistent.
const (
	signMask16 = 0x8000
	expMask16  = 0x7c00
	fracMask16 = 0x03ff
	shift16    = 10
	mask16     = 0x1f

	biggestDenorm16 = fracMask16
	biggestNormal16 = 0x7bff

	signMask32 = 0x80000000
	expMask32  = 0x7f800000
	fracMask32 = 0x007fffff
	shift32    = 23
	mask32     = 0xff

	// shift between the binary32 and binary16 mantissa fields
	rebiasShift = shift32 - shift16

	// smallest binary32 magnitude that is normal in binary16 (0x1p-14)
	min16in32 = 0x38800000

	// largest binary32 magnitude that is finite in binary16 (65504)
	max16in32 = 0x477fe000

	// largest finite binary32 pattern
	max32 = 0x7f7fffff

	// 0x1p+24 and 0x1p-24, used to scale subnormals between the widths
	denormRatio16in32 = 0x4b800000
	denormRatio32in16 = 0x33800000

	// exponent rebias for normals, and for infinities and NaNs
	normalDelta = 0x38000000
	infDelta    = 0x70000000

	uvnan    = 0x7e00
	uvinf    = 0x7c00
	uvneginf = 0xfc00
)

// Well-known binary16 patterns used by reference tables.
const (
	NaN16       Float16 = 0xff80
	PosInf16    Float16 = uvinf
	NegInf16    Float16 = uvneginf
	PosDenorm16 Float16 = 0x0008
	NegDenorm16 Float16 = 0x8008
	PosZero16   Float16 = 0x0000
	NegZero16   Float16 = 0x8000
)

// FromBits returns the floating point number corresponding
// the IEEE 754 binary representation b.
func FromBits(b uint16) Float16 {
	return Float16(b)
}

// Bits returns the IEEE 754 binary representation of f.
func (f Float16) Bits() uint16 {
	return uint16(f)
}

// NaN returns a quiet binary16 NaN.
func NaN() Float16 {
	return uvnan
}

// Inf returns positive infinity if sign >= 0, negative infinity if sign < 0.
func Inf(sign int) Float16 {
	if sign >= 0 {
		return uvinf
	}
	return uvneginf
}

// IsNaN reports whether f is a binary16 NaN:
// the exponent field is all ones and the mantissa is nonzero.
func (f Float16) IsNaN() bool {
	return f&expMask16 == expMask16 && f&fracMask16 != 0
}

// IsInf reports whether f is an infinity, according to sign.
// If sign > 0, IsInf reports whether f is positive infinity.
// If sign < 0, IsInf reports whether f is negative infinity.
// If sign == 0, IsInf reports whether f is either infinity.
func (f Float16) IsInf(sign int) bool {
	return sign >= 0 && f == uvinf || sign <= 0 && f == uvneginf
}

// Signbit reports whether f is negative or negative zero.
func (f Float16) Signbit() bool {
	return f&signMask16 != 0
}

// FromFloat32 converts f to binary16.
//
// The conversion is lossy: subnormal results and normal results are
// truncated toward zero, every binary32 NaN becomes the NaN with an all-ones
// mantissa, and finite magnitudes beyond the binary16 range saturate.
// Magnitudes between 65504 and 65536 become ±65504; larger ones become ±Inf.
func FromFloat32(f float32) Float16 {
	b := math.Float32bits(f)
	sign := Float16((b & signMask32) >> 16)
	abs := b &^ signMask32

	switch {
	case abs < min16in32:
		// zero or subnormal in binary16
		return sign | Float16(math.Float32frombits(abs)*math.Float32frombits(denormRatio16in32))
	case abs > max32:
		// infinity or NaN
		if abs&fracMask32 != 0 {
			return sign | expMask16 | fracMask16
		}
		return sign | expMask16
	case abs > max16in32:
		// overflow; keep the rebiased pattern out of the sign bit
		return sign | Float16(min((abs-normalDelta)>>rebiasShift, uvinf))
	}

	// normal number
	return sign | Float16((abs-normalDelta)>>rebiasShift)
}

// Float32 returns the float32 representation of f.
// Every binary16 value is exactly representable in binary32.
func (f Float16) Float32() float32 {
	sign := uint32(f&signMask16) << 16
	abs := uint32(f &^ signMask16)

	var b uint32
	switch {
	case abs > biggestNormal16:
		// infinity or NaN
		b = abs<<rebiasShift + infDelta
	case abs > biggestDenorm16:
		// normal number
		b = abs<<rebiasShift + normalDelta
	default:
		// zero or subnormal number
		b = math.Float32bits(float32(abs) * math.Float32frombits(denormRatio32in16))
	}
	return math.Float32frombits(sign | b)
}

// Float64 returns the float64 representation of f.
func (f Float16) Float64() float64 {
	return float64(f.Float32())
}
