package floatcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/shogo82148/int128"
)

var (
	// ErrLengthMismatch is returned when the result and reference slices
	// have different lengths.
	ErrLengthMismatch = errors.New("floatcheck: result and reference lengths differ")

	// ErrInvalidTolerance is returned for a Tolerance that cannot be applied.
	ErrInvalidTolerance = errors.New("floatcheck: invalid tolerance")
)

// Method selects the comparator a Tolerance dispatches to.
type Method int

const (
	MethodULP Method = iota
	MethodEpsilon
	MethodRelativeEpsilon
)

// Tolerance bundles a comparison method with its parameter.
// Mode only affects binary32 comparisons.
type Tolerance struct {
	Method      Method
	ULP         int
	Epsilon     float32
	RelativeExp int
	Mode        DenormMode
}

// Validate reports whether t can be used for comparison.
func (t Tolerance) Validate() error {
	switch t.Mode {
	case DenormAny, DenormPreserve, DenormFlushToZero:
	default:
		return fmt.Errorf("%w: denorm mode %d", ErrInvalidTolerance, int(t.Mode))
	}
	switch t.Method {
	case MethodULP:
		if t.ULP < 0 {
			return fmt.Errorf("%w: negative ULP tolerance %d", ErrInvalidTolerance, t.ULP)
		}
	case MethodEpsilon:
		if !(t.Epsilon > 0) || math.IsInf(float64(t.Epsilon), 0) {
			return fmt.Errorf("%w: epsilon %v", ErrInvalidTolerance, t.Epsilon)
		}
	case MethodRelativeEpsilon:
	default:
		return fmt.Errorf("%w: method %d", ErrInvalidTolerance, int(t.Method))
	}
	return nil
}

// Match32 compares src against ref with the configured comparator.
func (t Tolerance) Match32(src, ref float32) bool {
	switch t.Method {
	case MethodEpsilon:
		return CompareEpsilon32(src, ref, t.Epsilon, t.Mode)
	case MethodRelativeEpsilon:
		return CompareRelativeEpsilon32(src, ref, t.RelativeExp, t.Mode)
	}
	return CompareULP32(src, ref, t.ULP, t.Mode)
}

// Match16 compares src against ref with the configured comparator.
func (t Tolerance) Match16(src, ref Float16) bool {
	switch t.Method {
	case MethodEpsilon:
		return CompareEpsilon16(src, ref, t.Epsilon)
	case MethodRelativeEpsilon:
		return CompareRelativeEpsilon16(src, ref, t.RelativeExp)
	}
	return CompareULP16(src, ref, t.ULP)
}

// Mismatch describes one value that failed comparison.
// Src and Ref hold the raw bit patterns at the report's width.
type Mismatch struct {
	Index int
	Src   uint32
	Ref   uint32
	ULP   uint64
}

// Report is the outcome of comparing a result slice with a reference slice.
type Report struct {
	// Width is 32 or 16.
	Width int

	Total      int
	Mismatches []Mismatch

	// MaxULP and TotalULP cover the mismatching values only.
	MaxULP   uint64
	TotalULP int128.Uint128
}

// OK reports whether every value matched.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// MeanULP returns the mean ULP distance over the mismatching values,
// rounded toward zero.
func (r *Report) MeanULP() uint64 {
	if len(r.Mismatches) == 0 {
		return 0
	}
	div, _ := r.TotalULP.DivMod(int128.Uint128{L: uint64(len(r.Mismatches))})
	return div.L
}

func (r *Report) add(m Mismatch) {
	r.Mismatches = append(r.Mismatches, m)
	r.MaxULP = max(r.MaxULP, m.ULP)
	r.TotalULP = r.TotalULP.Add(int128.Uint128{L: m.ULP})
}

// Verify32 compares every element of src with the element of ref at the
// same index.
func Verify32(src, ref []float32, tol Tolerance) (*Report, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	if len(src) != len(ref) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(src), len(ref))
	}

	r := &Report{Width: 32, Total: len(src)}
	for i := range src {
		if tol.Match32(src[i], ref[i]) {
			continue
		}
		r.add(Mismatch{
			Index: i,
			Src:   math.Float32bits(src[i]),
			Ref:   math.Float32bits(ref[i]),
			ULP:   ULPDistance32(src[i], ref[i]),
		})
	}
	return r, nil
}

// Verify16 is the binary16 counterpart of Verify32.
func Verify16(src, ref []Float16, tol Tolerance) (*Report, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	if len(src) != len(ref) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(src), len(ref))
	}

	r := &Report{Width: 16, Total: len(src)}
	for i := range src {
		if tol.Match16(src[i], ref[i]) {
			continue
		}
		r.add(Mismatch{
			Index: i,
			Src:   uint32(src[i]),
			Ref:   uint32(ref[i]),
			ULP:   uint64(ULPDistance16(src[i], ref[i])),
		})
	}
	return r, nil
}
