package testfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMultiplier_Permissive(t *testing.T) {
	cases := []struct {
		arg    string
		expect int64
	}{
		{"1", 1},
		{"5", 5},
		{"0", 0},
		{"-3", -3},
		{"+7", 7},
		{"  12", 12},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"0x10", 16},
		{"0X1f", 31},
		{"0x", 0},
		{"0xg", 0},
		{"010", 8},
		{"09", 0},
		{"1.5", 1},
		// Stored into a 32 bit int like the C generator: strtol saturates, then wraps
		{"2147483647", 2147483647},
		{"2147483648", -2147483648},
		{"4294967296", 0},
		{"4294967297", 1},
		{"99999999999999999999", -1},
		{"9223372036854775807", -1},
		{"-99999999999999999999", 0},
	}
	for _, c := range cases {
		value, err := ParseMultiplier(c.arg, false)
		require.NoError(t, err, "arg %q", c.arg)
		assert.Equal(t, c.expect, value, "arg %q", c.arg)
	}
}

func TestParseMultiplier_Strict(t *testing.T) {
	good := map[string]int64{
		"1":    1,
		"-3":   -3,
		" 4 ":  4,
		"0x10": 16,
		"010":  8,
	}
	for arg, expect := range good {
		value, err := ParseMultiplier(arg, true)
		require.NoError(t, err, "arg %q", arg)
		assert.Equal(t, expect, value, "arg %q", arg)
	}
	for _, arg := range []string{"", "abc", "12abc", "1.5", "99999999999999999999", "4294967296", "2147483648"} {
		_, err := ParseMultiplier(arg, true)
		assert.ErrorIs(t, err, ErrInvalidMultiplier, "arg %q", arg)
	}
}
