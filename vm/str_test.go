package vm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr_ConcatMaterialise(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Str
		expected string
	}{
		{
			name:     "single literal",
			build:    func() *Str { return FromLiteral("hello") },
			expected: "hello",
		},
		{
			name: "two-way concat",
			build: func() *Str {
				return Concat(FromLiteral("foo"), FromLiteral("bar"))
			},
			expected: "foobar",
		},
		{
			name: "deep left-leaning chain",
			build: func() *Str {
				s := EmptyStr()
				for i := 0; i < 5000; i++ {
					s = Concat(s, FromLiteral("x"))
				}
				return s
			},
			expected: strings.Repeat("x", 5000),
		},
		{
			name: "concat of concats",
			build: func() *Str {
				left := Concat(FromLiteral("a"), FromLiteral("b"))
				right := Concat(FromLiteral("c"), FromLiteral("d"))
				return Concat(left, right)
			},
			expected: "abcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.build()
			assert.Equal(t, tt.expected, s.Materialise())
		})
	}
}

func TestStr_LenIsForceIndependent(t *testing.T) {
	s := Concat(FromLiteral("ab"), FromLiteral("cd"))
	require.EqualValues(t, 4, s.Len())
	// Len is correct before force, and unchanged after.
	s.Materialise()
	require.EqualValues(t, 4, s.Len())
}

func TestStr_LenSaturatesAtMax(t *testing.T) {
	big := &Str{kind: strLiteral, flat: "", len: maxStrLen}
	small := FromLiteral("x")
	combined := Concat(big, small)
	assert.EqualValues(t, maxStrLen, combined.Len())
}

func TestStrEqual(t *testing.T) {
	a := Concat(FromLiteral("foo"), FromLiteral("bar"))
	b := FromLiteral("foobar")
	assert.True(t, StrEqual(a, b))

	c := FromLiteral("foobaz")
	assert.False(t, StrEqual(a, c))

	assert.False(t, StrEqual(FromLiteral("short"), FromLiteral("longer")))
}

func TestStrCompare(t *testing.T) {
	assert.Negative(t, StrCompare(FromLiteral("abc"), FromLiteral("abd")))
	assert.Zero(t, StrCompare(FromLiteral("abc"), FromLiteral("abc")))
	assert.Positive(t, StrCompare(FromLiteral("abd"), FromLiteral("abc")))
}

func TestStr_SharedSubtreeForceIsIndependent(t *testing.T) {
	shared := Concat(FromLiteral("x"), FromLiteral("y"))
	whole := Concat(shared, FromLiteral("z"))

	assert.Equal(t, "xyz", whole.Materialise())
	// shared is untouched by forcing whole: it must still flatten
	// correctly on its own.
	assert.Equal(t, "xy", shared.Materialise())
}
