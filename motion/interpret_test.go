package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	cases := []struct {
		kind      Kind
		raw       string
		seconds   float64
		defaulted bool
	}{
		{Forward, "3步", 1.5, false},
		{Forward, "2米", 6.0, false},
		{Forward, "", 1.5, true},
		{Forward, "banana", 1.5, true},
		{Forward, "90度", 1.5, true},
		{Forward, "3 steps", 1.5, false},
		{Forward, "2m", 6.0, false},
		{Forward, "5 mangoes", 1.5, true},
		{Forward, "  4步  ", 2.0, false},
		{Forward, "前进3步", 1.5, true},
		{Backward, "10步", 5.0, false},
		{TurnLeft, "45度", 1.5, false},
		{TurnLeft, "", 3.0, true},
		{TurnRight, "90度", 3.0, false},
		{TurnRight, "180 degrees", 6.0, false},
		{TurnRight, "720度", 24.0, false},
		{WalkInPlace, "5秒", 5.0, false},
		{WalkInPlace, "20秒", 15.0, false},
		{WalkInPlace, "", 5.0, true},
		{WalkInPlace, "10s", 10.0, false},
		{WalkInPlace, "3步", 5.0, true},
		{Forward, "４米", 12.0, false},
		{Forward, "3　步", 1.5, false},
		{Forward, "4步abc", 2.0, false},
		{Forward, "２ 步", 1.0, false},
		{Backward, "2min", 1.5, true},
		{Backward, "2 meters", 6.0, false},
		{TurnLeft, "９０度", 3.0, false},
		{TurnLeft, "60度左右", 2.0, false},
		{TurnLeft, "30 deg", 1.0, false},
		{TurnLeft, "30 degs", 3.0, true},
		{WalkInPlace, "８秒", 8.0, false},
		{WalkInPlace, "٣秒", 3.0, false},
		{WalkInPlace, "7secs", 7.0, false},
		{WalkInPlace, "7sx", 5.0, true},
	}

	for _, c := range cases {
		seconds, defaulted := Interpret(c.kind, c.raw)
		assert.InDelta(t, c.seconds, seconds, 1e-9, "%s %q", c.kind, c.raw)
		assert.Equal(t, c.defaulted, defaulted, "%s %q", c.kind, c.raw)
	}
}

func TestASCIIDigits(t *testing.T) {
	assert.Equal(t, "123", asciiDigits("123"))
	assert.Equal(t, "48", asciiDigits("４８"))
	assert.Equal(t, "305", asciiDigits("٣٠٥"))
	assert.Equal(t, "7", asciiDigits("\U0001D7D5")) // 数学粗体 7
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Idle, Forward, Backward, TurnLeft, TurnRight, WalkInPlace} {
		parsed, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKind("moonwalk")
	assert.False(t, ok)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
