package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToStr(t *testing.T) {
	assert.Equal(t, "0", IntToStr(0).Materialise())
	assert.Equal(t, "-42", IntToStr(-42).Materialise())
	assert.Equal(t, "9223372036854775807", IntToStr(math.MaxInt64).Materialise())
}

func TestFloatToInt(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected int64
	}{
		{"truncates toward zero, positive", 3.9, 3},
		{"truncates toward zero, negative", -3.9, -3},
		{"nan becomes zero", math.NaN(), 0},
		{"overflow saturates high", math.MaxFloat64, math.MaxInt64},
		{"overflow saturates low", -math.MaxFloat64, math.MinInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FloatToInt(tt.in))
		})
	}
}

func TestFloatToStr_ShortestRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.1, 3.14159, 1e100, -1e-100} {
		s := FloatToStr(f).Materialise()
		parsed := StrToFloat(s)
		assert.Equal(t, f, parsed, "round trip through %q", s)
	}
}

func TestStrToInt_LenientParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected int64
	}{
		{"plain", "42", 42},
		{"leading whitespace", "   42", 42},
		{"leading sign", "-42", -42},
		{"plus sign", "+42", 42},
		{"junk suffix", "42abc", 42},
		{"no digits", "abc", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StrToInt(tt.in))
		})
	}
}

func TestStrToFloat_LenientParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
	}{
		{"plain", "3.14", 3.14},
		{"leading whitespace", "  2.5", 2.5},
		{"scientific", "1.5e3", 1500},
		{"junk suffix", "3.14xyz", 3.14},
		{"no digits", "xyz", 0},
		{"bare dot", ".", 0},
		{"negative exponent", "2e-2", 0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, StrToFloat(tt.in), 1e-9)
		})
	}
}

func TestStrIsNumericPrefix(t *testing.T) {
	assert.True(t, StrIsNumericPrefix("42abc"))
	assert.True(t, StrIsNumericPrefix("  3.14"))
	assert.False(t, StrIsNumericPrefix("abc"))
	assert.False(t, StrIsNumericPrefix(""))
}
