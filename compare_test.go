package floatcheck

import (
	"math"
	"runtime"
	"testing"
)

var allModes = []DenormMode{DenormAny, DenormPreserve, DenormFlushToZero}

func TestULPDistance32(t *testing.T) {
	tests := []struct {
		a, b uint32
		want uint64
	}{
		{0x3f800000, 0x3f800000, 0},
		{0x3f800000, 0x3f800001, 1},
		{0x3f800001, 0x3f800000, 1},
		{0x00000000, 0x00000001, 1},
		{0x80000001, 0x80000000, 1},
		{0x3f800000, 0xbf800000, 0x80000000},
		{0x7f800000, 0x80000001, 0xff7fffff},
		{0x00000000, 0x80000000, 0x80000000},
	}
	for _, tt := range tests {
		got := ULPDistance32(math.Float32frombits(tt.a), math.Float32frombits(tt.b))
		if got != tt.want {
			t.Errorf("%08x, %08x: expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestCompareULP32(t *testing.T) {
	nan := float32(math.NaN())
	negNaN := math.Float32frombits(0xff800123)
	inf := float32(math.Inf(1))
	one := float32(1)
	next := math.Nextafter32(1, 2)
	next2 := math.Nextafter32(next, 2)

	tests := []struct {
		name     string
		src, ref float32
		ulp      int
		mode     DenormMode
		want     bool
	}{
		{"equal", one, one, 0, DenormPreserve, true},
		{"signed zeros", 0, negZero32, 0, DenormPreserve, true},
		{"signed zeros reversed", negZero32, 0, 0, DenormFlushToZero, true},
		{"one ulp within", next, one, 1, DenormPreserve, true},
		{"one ulp outside", next, one, 0, DenormPreserve, false},
		{"two ulps", next2, one, 1, DenormAny, false},
		{"two ulps within", one, next2, 2, DenormAny, true},
		{"nan nan", nan, nan, 0, DenormPreserve, true},
		{"nan payloads", negNaN, nan, 0, DenormPreserve, true},
		{"nan number", nan, one, 1 << 30, DenormAny, false},
		{"number nan", one, nan, 1 << 30, DenormAny, false},
		{"inf", inf, inf, 0, DenormAny, true},
		{"inf max", inf, math.MaxFloat32, 1, DenormAny, true},
		{"negative tolerance", next, one, -1, DenormAny, false},
		{"negative tolerance equal", one, one, -1, DenormAny, true},

		{"any flushed", 0, minDenorm32, 0, DenormAny, true},
		{"any flushed negative", negZero32, negMinDenorm32, 0, DenormAny, true},
		{"any flushed max denormal", 0, maxDenorm32, 0, DenormAny, true},
		{"any wrong sign", negZero32, minDenorm32, 0, DenormAny, false},
		{"any wrong sign positive", 0, negMinDenorm32, 0, DenormAny, false},
		{"any not reversed", minDenorm32, 0, 0, DenormAny, false},
		{"preserve flushed", 0, minDenorm32, 0, DenormPreserve, false},
		{"ftz flushed", 0, minDenorm32, 0, DenormFlushToZero, false},
		{"preserve within ulp", 0, minDenorm32, 1, DenormPreserve, true},
		{"preserve denormal", maxDenorm32, maxDenorm32, 0, DenormPreserve, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareULP32(tt.src, tt.ref, tt.ulp, tt.mode)
			if got != tt.want {
				t.Errorf("CompareULP32(%08x, %08x, %d, %v): expected %v, got %v",
					math.Float32bits(tt.src), math.Float32bits(tt.ref), tt.ulp, tt.mode, tt.want, got)
			}
		})
	}
}

func TestCompareEpsilon32(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name     string
		src, ref float32
		epsilon  float32
		mode     DenormMode
		want     bool
	}{
		{"equal", 1, 1, 0, DenormPreserve, true},
		{"signed zeros", negZero32, 0, 0, DenormPreserve, true},
		{"within", 1.0005, 1, 0.001, DenormPreserve, true},
		{"within negative", 0.9995, 1, 0.001, DenormPreserve, true},
		{"outside", 1.002, 1, 0.001, DenormPreserve, false},
		{"strict", 1.5, 1, 0.5, DenormPreserve, false},
		{"nan nan", nan, nan, 0, DenormAny, true},
		{"nan number", nan, 1, 1e30, DenormAny, false},
		{"inf number", inf, 1, 1e30, DenormAny, false},
		{"inf inf", inf, inf, 0, DenormAny, true},
		{"any flushed", 0, minDenorm32, 0, DenormAny, true},
		{"preserve flushed zero epsilon", 0, minDenorm32, 0, DenormPreserve, false},
		{"preserve flushed", 0, minDenorm32, 1e-30, DenormPreserve, true},
		{"any wrong sign", negZero32, maxDenorm32, 0, DenormAny, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareEpsilon32(tt.src, tt.ref, tt.epsilon, tt.mode)
			if got != tt.want {
				t.Errorf("CompareEpsilon32(%x, %x, %x, %v): expected %v, got %v",
					tt.src, tt.ref, tt.epsilon, tt.mode, tt.want, got)
			}
		})
	}
}

func TestCompareRelativeEpsilon32(t *testing.T) {
	r := newXorshift32()
	for i := 0; i < 1<<16; i++ {
		a := r.Float32()
		// stay within a few ULPs some of the time
		b := math.Float32frombits(math.Float32bits(a) + r.Uint32()%8)
		for _, mode := range allModes {
			for _, exp := range []int{23, 22, 20, 16} {
				got := CompareRelativeEpsilon32(a, b, exp, mode)
				want := CompareULP32(a, b, 23-exp, mode)
				if got != want {
					t.Fatalf("%08x, %08x, %d, %v: expected %v, got %v",
						math.Float32bits(a), math.Float32bits(b), exp, mode, want, got)
				}
			}
		}
	}

	one := float32(1)
	next := math.Nextafter32(1, 2)
	if CompareRelativeEpsilon32(next, one, 23, DenormPreserve) {
		t.Errorf("full precision must not allow one ulp")
	}
	if !CompareRelativeEpsilon32(next, one, 22, DenormPreserve) {
		t.Errorf("22 bits must allow one ulp")
	}
	if CompareRelativeEpsilon32(next, one, 24, DenormPreserve) {
		t.Errorf("more bits than the mantissa must not allow one ulp")
	}
}

func TestULPDistance16(t *testing.T) {
	tests := []struct {
		a, b Float16
		want uint32
	}{
		{0x3c00, 0x3c00, 0},
		{0x3c00, 0x3c01, 1},
		{0x3c01, 0x3c00, 1},
		{0x0000, 0x8000, 0x8000},
		{0xffff, 0x0000, 0xffff},
	}
	for _, tt := range tests {
		if got := ULPDistance16(tt.a, tt.b); got != tt.want {
			t.Errorf("%04x, %04x: expected %d, got %d", tt.a.Bits(), tt.b.Bits(), tt.want, got)
		}
	}
}

func TestCompareULP16(t *testing.T) {
	tests := []struct {
		name     string
		src, ref Float16
		ulp      int
		want     bool
	}{
		{"equal", 0x3c00, 0x3c00, 0, true},
		{"adjacent", 0x3c01, 0x3c00, 1, true},
		{"adjacent outside", 0x3c01, 0x3c00, 0, false},
		{"nan nan", NaN(), NaN16, 0, true},
		{"nan number", NaN16, 0x3c00, 1 << 20, false},
		{"number nan", 0x7bff, NaN16, 16, false},
		{"signed zeros", PosZero16, NegZero16, 0, false},
		{"denormal zero", PosZero16, PosDenorm16, 0, false},
		{"denormal zero within", PosZero16, PosDenorm16, 8, true},
		{"largest normal inf", 0x7bff, PosInf16, 1, true},
		{"negative tolerance", 0x3c01, 0x3c00, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareULP16(tt.src, tt.ref, tt.ulp)
			if got != tt.want {
				t.Errorf("CompareULP16(%04x, %04x, %d): expected %v, got %v",
					tt.src.Bits(), tt.ref.Bits(), tt.ulp, tt.want, got)
			}
		})
	}
}

func TestCompareULP16_Adjacent(t *testing.T) {
	for bits := 0; bits < 1<<16; bits++ {
		h := FromBits(uint16(bits))
		next := h + 1
		if h.IsNaN() || h.IsInf(0) || next.IsNaN() || next&^signMask16 == 0 {
			continue
		}
		if !CompareULP16(h, next, 1) || !CompareULP16(next, h, 1) {
			t.Errorf("%04x: expected adjacent values within 1 ulp", bits)
		}
		if CompareULP16(h, next, 0) {
			t.Errorf("%04x: expected adjacent values outside 0 ulp", bits)
		}
	}
}

func TestCompareEpsilon16(t *testing.T) {
	tests := []struct {
		name     string
		src, ref Float16
		epsilon  float32
		want     bool
	}{
		{"equal", 0x3c00, 0x3c00, 0, true},
		{"signed zeros", PosZero16, NegZero16, 0x1p-30, true},
		{"signed zeros zero epsilon", PosZero16, NegZero16, 0, false},
		{"within", 0x3c01, 0x3c00, 0x1p-9, true},
		{"strict", 0x3c01, 0x3c00, 0x1p-10, false},
		{"denormals", PosDenorm16, NegDenorm16, 0x1p-19, true},
		{"nan nan", 0x7c01, 0xfe00, 0, true},
		{"nan number", NaN16, 0x3c00, 1e30, false},
		{"inf number", PosInf16, 0x7bff, 1e30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareEpsilon16(tt.src, tt.ref, tt.epsilon)
			if got != tt.want {
				t.Errorf("CompareEpsilon16(%04x, %04x, %x): expected %v, got %v",
					tt.src.Bits(), tt.ref.Bits(), tt.epsilon, tt.want, got)
			}
		})
	}
}

func TestCompareRelativeEpsilon16(t *testing.T) {
	for bits := 0; bits < 1<<16; bits += 7 {
		a := FromBits(uint16(bits))
		for d := 0; d < 4; d++ {
			b := a + Float16(d)
			for _, exp := range []int{10, 9, 8} {
				got := CompareRelativeEpsilon16(a, b, exp)
				want := CompareULP16(a, b, 10-exp)
				if got != want {
					t.Fatalf("%04x, %04x, %d: expected %v, got %v", a.Bits(), b.Bits(), exp, want, got)
				}
			}
		}
	}
}

// A value always matches itself, and a NaN result never matches a number.
func FuzzCompareULP32(f *testing.F) {
	f.Add(uint32(0x3f800000), uint32(0x3f800001), 1)
	f.Add(uint32(0x00000000), uint32(0x00000001), 0)
	f.Add(uint32(0x7fc00000), uint32(0xffc00000), 0)

	f.Fuzz(func(t *testing.T, a, b uint32, ulp int) {
		src := math.Float32frombits(a)
		ref := math.Float32frombits(b)
		for _, mode := range allModes {
			if !CompareULP32(src, src, 0, mode) {
				t.Errorf("%08x does not match itself", a)
			}
			got := CompareULP32(src, ref, ulp, mode)
			if math.IsNaN(float64(src)) && !math.IsNaN(float64(ref)) && got {
				t.Errorf("%08x, %08x: NaN matched a number", a, b)
			}
			if ulp >= 0 && ULPDistance32(src, ref) <= uint64(ulp) && !math.IsNaN(float64(src)) && !got {
				t.Errorf("%08x, %08x, %d: within distance but rejected", a, b, ulp)
			}
		}
	})
}

func BenchmarkCompareULP32(b *testing.B) {
	r := newXorshift32()
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(CompareULP32(r.Float32(), r.Float32(), 4, DenormAny))
	}
}

func BenchmarkCompareEpsilon16(b *testing.B) {
	r := newXorshift32()
	for i := 0; i < b.N; i++ {
		x, y := r.Float16Pair()
		runtime.KeepAlive(CompareEpsilon16(x, y, 0x1p-8))
	}
}
