package csvview

import (
	"errors"
	"math"
	"strconv"
)

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

// parseInt reads leading whitespace, an optional sign and decimal digits, stopping at the
// first other byte. n is the number of bytes consumed, 0 when no digit was found. Values
// that do not fit in bits saturate and set overflow.
func parseInt[T Text](s T, bits uint) (v int64, n int, overflow bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	limit := uint64(1)<<(bits-1) - 1
	if neg {
		limit++
	}
	first := i
	var acc uint64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if overflow {
			continue
		}
		d := uint64(s[i] - '0')
		if acc > (limit-d)/10 {
			acc = limit
			overflow = true
			continue
		}
		acc = acc*10 + d
	}
	if i == first {
		return 0, 0, false
	}
	if neg {
		return int64(-acc), i, overflow
	}
	return int64(acc), i, overflow
}

// parseFloat reads the longest decimal floating-point prefix of s after leading whitespace:
// sign, digits, fraction, exponent, or one of inf, infinity and nan. n is 0 when there is
// no such prefix. Magnitudes beyond float64 become infinities.
func parseFloat[T Text](s T) (v float64, n int) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	sign := 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}

	switch {
	case hasPrefixFold(s[i:], "infinity"):
		return math.Inf(sign), i + len("infinity")
	case hasPrefixFold(s[i:], "inf"):
		return math.Inf(sign), i + len("inf")
	case hasPrefixFold(s[i:], "nan"):
		return math.NaN(), i + len("nan")
	}

	digits := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0, 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for ; j < len(s) && s[j] >= '0' && s[j] <= '9'; j++ {
		}
		if j > expStart {
			i = j
		}
	}

	v, err := strconv.ParseFloat(asString(s[start:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, 0
	}
	return v, i
}

// hasPrefixFold reports whether s starts with the lower-case ASCII word, ignoring case.
func hasPrefixFold[T Text](s T, word string) bool {
	if len(s) < len(word) {
		return false
	}
	for k := 0; k < len(word); k++ {
		if s[k]|0x20 != word[k] {
			return false
		}
	}
	return true
}

func strictInt[T Text](s T, bits int) (int64, bool) {
	v, err := strconv.ParseInt(asString(s), 10, bits)
	return v, err == nil
}

func strictFloat[T Text](s T) (float64, bool) {
	v, err := strconv.ParseFloat(asString(s), 64)
	return v, err == nil
}
