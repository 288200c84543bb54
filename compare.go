package floatcheck

import "math"

// Mantissa widths used to turn a relative epsilon exponent into ULPs.
const (
	mantissaBits32 = shift32
	mantissaBits16 = shift16
)

// ULPDistance32 returns the distance between the bit patterns of a and b,
// read as signed 32-bit integers.
func ULPDistance32(a, b float32) uint64 {
	d := int64(int32(math.Float32bits(a))) - int64(int32(math.Float32bits(b)))
	if d < 0 {
		d = -d
	}
	return uint64(d)
}

// ULPDistance16 returns the distance between the bit patterns of a and b.
func ULPDistance16(a, b Float16) uint32 {
	d := int32(a) - int32(b)
	if d < 0 {
		d = -d
	}
	return uint32(d)
}

// compareSpecial32 handles the cases shared by the binary32 comparators.
// ok reports whether the result is already decided.
func compareSpecial32(src, ref float32, mode DenormMode) (result, ok bool) {
	if src == ref {
		// includes +0 == -0
		return true, true
	}
	if isNaN32(src) {
		return isNaN32(ref), true
	}
	if mode.acceptsFlushedZero() {
		// the expected denormal may come back as a zero of the same sign
		if IsDenormal(ref) && src == 0 && SignBit32(src) == SignBit32(ref) {
			return true, true
		}
	}
	return false, false
}

// CompareULP32 reports whether src is within ulpTolerance units in the last
// place of ref. Any NaN matches any NaN. Under [DenormAny] a zero matches a
// denormal reference of the same sign. A negative tolerance allows no
// distance.
func CompareULP32(src, ref float32, ulpTolerance int, mode DenormMode) bool {
	if result, ok := compareSpecial32(src, ref, mode); ok {
		return result
	}
	if ulpTolerance < 0 {
		return false
	}
	return ULPDistance32(src, ref) <= uint64(ulpTolerance)
}

// CompareEpsilon32 reports whether |src - ref| < epsilon, with the same
// NaN and denormal handling as [CompareULP32].
func CompareEpsilon32(src, ref, epsilon float32, mode DenormMode) bool {
	if result, ok := compareSpecial32(src, ref, mode); ok {
		return result
	}
	return abs32(src-ref) < epsilon
}

// CompareRelativeEpsilon32 reports whether the relative error of src
// is below 2^-relativeExp, expressed as a ULP tolerance of
// 23 - relativeExp.
func CompareRelativeEpsilon32(src, ref float32, relativeExp int, mode DenormMode) bool {
	return CompareULP32(src, ref, mantissaBits32-relativeExp, mode)
}

// compareSpecial16 handles the cases shared by the binary16 comparators.
// Half precision denormals must be preserved, so there is no flushed zero case.
func compareSpecial16(src, ref Float16) (result, ok bool) {
	if src == ref {
		return true, true
	}
	if src.IsNaN() {
		return ref.IsNaN(), true
	}
	return false, false
}

// CompareULP16 reports whether the bit patterns of src and ref are at most
// ulpTolerance apart. Any NaN matches any NaN.
// Equality is bitwise, so +0 and -0 are 0x8000 ULPs apart.
func CompareULP16(src, ref Float16, ulpTolerance int) bool {
	if result, ok := compareSpecial16(src, ref); ok {
		return result
	}
	if ulpTolerance < 0 {
		return false
	}
	return uint64(ULPDistance16(src, ref)) <= uint64(ulpTolerance)
}

// CompareEpsilon16 promotes src and ref to binary32 and reports whether
// they differ by less than epsilon. Any NaN matches any NaN.
func CompareEpsilon16(src, ref Float16, epsilon float32) bool {
	if result, ok := compareSpecial16(src, ref); ok {
		return result
	}
	return abs32(src.Float32()-ref.Float32()) < epsilon
}

// CompareRelativeEpsilon16 is [CompareULP16] with a tolerance of
// 10 - relativeExp.
func CompareRelativeEpsilon16(src, ref Float16, relativeExp int) bool {
	return CompareULP16(src, ref, mantissaBits16-relativeExp)
}

func abs32(f float32) float32 {
	return math.Float32frombits(math.Float32bits(f) &^ signMask32)
}
