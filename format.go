package floatcheck

import (
	"fmt"
	"math"
	"strconv"
)

var _ fmt.Formatter = Float16(0)

func (x Float16) String() string {
	return x.Text('g', -1)
}

// Text converts x to a string, like [strconv.FormatFloat] with bitSize 32
// applied to the promoted value.
func (x Float16) Text(fmt byte, prec int) string {
	return string(x.Append(make([]byte, 0, 16), fmt, prec))
}

// Append appends the string form of x, as generated by [Float16.Text], to buf.
func (x Float16) Append(buf []byte, fmt byte, prec int) []byte {
	switch {
	case x.IsNaN():
		return append(buf, "NaN"...)
	case x == uvinf:
		return append(buf, "+Inf"...)
	case x == uvneginf:
		return append(buf, "-Inf"...)
	}
	return strconv.AppendFloat(buf, x.Float64(), fmt, prec, 32)
}

// Format implements [fmt.Formatter].
// The verbs b, e, E, f, F, g, G, x, X and v format the value;
// the flag '#' with x or X prints the raw bit pattern instead.
func (x Float16) Format(s fmt.State, verb rune) {
	switch verb {
	case 'x':
		if s.Flag('#') {
			fmt.Fprintf(s, "%#04x", uint16(x))
			return
		}
	case 'X':
		if s.Flag('#') {
			fmt.Fprintf(s, "%#04X", uint16(x))
			return
		}
	case 'b', 'e', 'E', 'f', 'g', 'G':
	case 'F':
		verb = 'f'
	case 'v':
		verb = 'g'
	default:
		fmt.Fprintf(s, "%%!%c(floatcheck.Float16=%s)", verb, x.String())
		return
	}
	if x.IsNaN() {
		s.Write([]byte("NaN"))
		return
	}

	var prefix []byte
	var data []byte

	// sign
	if x&signMask16 != 0 {
		prefix = append(prefix, '-')
		x &^= signMask16
	} else {
		if s.Flag('+') {
			prefix = append(prefix, '+')
		} else if s.Flag(' ') {
			prefix = append(prefix, ' ')
		}
	}

	prec, ok := s.Precision()
	if !ok {
		prec = -1
	}
	if x == uvinf {
		if len(prefix) == 0 {
			prefix = append(prefix, '+')
		}
		data = append(data, "Inf"...)
	} else {
		data = strconv.AppendFloat(data, x.Float64(), byte(verb), prec, 32)
	}

	if w, ok := s.Width(); ok {
		var buf [1]byte
		buf[0] = ' '
		pad := w - len(prefix) - len(data)
		if s.Flag('-') {
			s.Write(prefix)
			s.Write(data)
			for i := 0; i < pad; i++ {
				s.Write(buf[:1])
			}
		} else {
			for i := 0; i < pad; i++ {
				s.Write(buf[:1])
			}
			s.Write(prefix)
			s.Write(data)
		}
		return
	}

	if len(prefix) > 0 {
		s.Write(prefix)
	}
	s.Write(data)
}

func (c Class) String() string {
	switch c {
	case ClassZero:
		return "Zero"
	case ClassDenormal:
		return "Denormal"
	case ClassNormal:
		return "Normal"
	case ClassInfinity:
		return "Infinity"
	case ClassNaN:
		return "NaN"
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

func (m DenormMode) String() string {
	switch m {
	case DenormAny:
		return "any"
	case DenormPreserve:
		return "preserve"
	case DenormFlushToZero:
		return "ftz"
	}
	return "DenormMode(" + strconv.Itoa(int(m)) + ")"
}

func (m Method) String() string {
	switch m {
	case MethodULP:
		return "ulp"
	case MethodEpsilon:
		return "epsilon"
	case MethodRelativeEpsilon:
		return "relative"
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// Describe renders m for a report of the given width.
func (m Mismatch) Describe(width int) string {
	if width == 16 {
		return fmt.Sprintf("[%d] got %#04x (%v), want %#04x (%v), %d ulp",
			m.Index, m.Src, Float16(m.Src), m.Ref, Float16(m.Ref), m.ULP)
	}
	src := math.Float32frombits(m.Src)
	ref := math.Float32frombits(m.Ref)
	return fmt.Sprintf("[%d] got %#08x (%v), want %#08x (%v), %d ulp",
		m.Index, m.Src, src, m.Ref, ref, m.ULP)
}
