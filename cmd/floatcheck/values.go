package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shogo82148/floatcheck"
)

// parseBits reports whether s is a raw bit pattern such as 0x3c00, and if so
// returns it. Hex float literals like 0x1p-3 are not bit patterns.
func parseBits(s string, bitSize int) (uint64, bool, error) {
	if len(s) < 3 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0, false, nil
	}
	digits := s[2:]
	for i := 0; i < len(digits); i++ {
		if !isHex(digits[i]) {
			return 0, false, nil
		}
	}
	v, err := strconv.ParseUint(digits, 16, bitSize)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func parseValue32(s string) (float32, error) {
	if b, ok, err := parseBits(s, 32); ok {
		return math.Float32frombits(uint32(b)), err
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// parseValue16 parses a binary16 bit pattern, or a decimal value that is
// encoded with the lossy binary32 to binary16 conversion.
func parseValue16(s string) (floatcheck.Float16, error) {
	if b, ok, err := parseBits(s, 16); ok {
		return floatcheck.FromBits(uint16(b)), err
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return floatcheck.FromFloat32(float32(f)), nil
}

// scanValues calls fn for every value line of r.
// Blank lines and lines starting with '#' are skipped.
func scanValues(r io.Reader, name string, fn func(s string) error) error {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(text); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func readValues32(name string) ([]float32, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values []float32
	err = scanValues(f, name, func(s string) error {
		v, err := parseValue32(s)
		if err != nil {
			return err
		}
		values = append(values, v)
		return nil
	})
	return values, err
}

func readValues16(name string) ([]floatcheck.Float16, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values []floatcheck.Float16
	err = scanValues(f, name, func(s string) error {
		v, err := parseValue16(s)
		if err != nil {
			return err
		}
		values = append(values, v)
		return nil
	})
	return values, err
}
