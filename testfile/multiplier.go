package testfile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidMultiplier = errors.New("invalid size multiplier")

// Parse the size argument given on the command line. Strict parsing requires
// the entire argument to be a 32 bit integer (0x and 0 prefixes allowed).
// Permissive parsing scans like C's %i into an int: it reads as many digits
// as it can and ignores whatever comes after, an argument with no digits at
// all is simply 0, and the result wraps to 32 bits.
func ParseMultiplier(arg string, strict bool) (int64, error) {
	if strict {
		value, err := strconv.ParseInt(strings.TrimSpace(arg), 0, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMultiplier, arg)
		}
		return value, nil
	}
	return int64(int32(scanMultiplier(arg))), nil
}

// Scan a long the way strtol does, saturating on overflow
func scanMultiplier(arg string) int64 {
	s := strings.TrimLeft(arg, " \t\n\v\f\r")
	negative := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := uint64(10)
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		// "0x" with nothing hex after it still scans the leading 0
		if len(s) < 3 || digitValue(s[2]) >= 16 {
			return 0
		}
		base = 16
		s = s[2:]
	} else if len(s) > 0 && s[0] == '0' {
		base = 8
	}

	var value uint64
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			break
		}
		if value > (math.MaxInt64-d)/base {
			if negative {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		value = value*base + d
	}

	if negative {
		return -int64(value)
	}
	return int64(value)
}

// Value of a single digit in any base up to 16. Anything else is 255
func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10
	}
	return 255
}
