package floatcheck

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DenormMode describes how the hardware under test treats binary32 denormals.
type DenormMode int

const (
	// DenormAny accepts either a preserved denormal or a zero of the same
	// sign where the reference is denormal.
	DenormAny DenormMode = iota

	// DenormPreserve requires denormals to be kept.
	DenormPreserve

	// DenormFlushToZero describes hardware that flushes denormals to zero.
	// Comparisons under it apply the regular tolerance.
	DenormFlushToZero
)

// ErrUnknownDenormMode is returned by ParseDenormMode for an unrecognised name.
var ErrUnknownDenormMode = errors.New("floatcheck: unknown denorm mode")

// ParseDenormMode parses the names produced by [DenormMode.String],
// plus the short alias "ftz".
func ParseDenormMode(s string) (DenormMode, error) {
	switch strings.ToLower(s) {
	case "any":
		return DenormAny, nil
	case "preserve":
		return DenormPreserve, nil
	case "ftz", "flushtozero", "flush-to-zero":
		return DenormFlushToZero, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDenormMode, s)
}

// acceptsFlushedZero reports whether a signed zero may stand in for
// a denormal reference.
func (m DenormMode) acceptsFlushedZero() bool {
	switch m {
	case DenormAny:
		return true
	case DenormPreserve, DenormFlushToZero:
		return false
	}
	panic(fmt.Sprintf("floatcheck: invalid DenormMode %d", int(m)))
}

// IsDenormal reports whether f is a binary32 denormal (subnormal):
// zero exponent field, nonzero mantissa.
func IsDenormal(f float32) bool {
	b := math.Float32bits(f)
	return b&expMask32 == 0 && b&fracMask32 != 0
}

// FlushToZero returns a zero with the sign of f if f is denormal,
// and f otherwise.
func FlushToZero(f float32) float32 {
	if IsDenormal(f) {
		return math.Float32frombits(math.Float32bits(f) & signMask32)
	}
	return f
}

// FlushedEqual reports whether a and b compare equal once both are flushed.
// Like ==, it treats +0 and -0 as equal and NaN as unequal to everything.
func FlushedEqual(a, b float32) bool {
	return FlushToZero(a) == FlushToZero(b)
}

// FlushedEqualOrNaN is like FlushedEqual, but two NaNs are equal
// regardless of payload and sign.
func FlushedEqualOrNaN(a, b float32) bool {
	if isNaN32(a) && isNaN32(b) {
		return true
	}
	return FlushedEqual(a, b)
}

func isNaN32(f float32) bool {
	return math.IsNaN(float64(f))
}
