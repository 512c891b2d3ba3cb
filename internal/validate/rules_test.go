package validate_test

import (
	"math"
	"testing"

	"github.com/gridform/gridform/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	r := validate.Required("required")

	uu := map[string]struct {
		v  any
		ok bool
	}{
		"blank":  {v: "  "},
		"nil":    {v: nil},
		"nan":    {v: math.NaN()},
		"text":   {v: "fred", ok: true},
		"zero":   {v: 0, ok: true},
		"number": {v: 12.5, ok: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			msg, ok := r(u.v)
			assert.Equal(t, u.ok, ok)
			assert.Equal(t, "required", msg)
		})
	}
}

func TestLengthMessages(t *testing.T) {
	msg, ok := validate.MaxLength(3, "at most {max}")("abcd")
	assert.False(t, ok)
	assert.Equal(t, "at most 3", msg)

	msg, ok = validate.MinLength(2, "at least {min}")("a")
	assert.False(t, ok)
	assert.Equal(t, "at least 2", msg)

	_, ok = validate.MinLength(2, "")("")
	assert.True(t, ok)
}

func TestPattern(t *testing.T) {
	r, err := validate.Pattern([]validate.PatternType{validate.PatternUpper, validate.PatternNumber}, false, true, "")
	require.NoError(t, err)

	_, ok := r("AB12")
	assert.True(t, ok)
	msg, ok := r("ABCD")
	assert.False(t, ok)
	assert.Equal(t, "must include upper case letters, numbers", msg)
	_, ok = r("AB 12")
	assert.False(t, ok)

	_, err = validate.Pattern([]validate.PatternType{"KLINGON"}, true, false, "")
	assert.Error(t, err)
}

func TestGreaterThanZero(t *testing.T) {
	r := validate.GreaterThanZero("zero")

	_, ok := r("0")
	assert.False(t, ok)
	_, ok = r(3)
	assert.True(t, ok)
}

func TestInputNormalize(t *testing.T) {
	no := false
	uu := map[string]struct {
		in   validate.Input
		s, e string
	}{
		"numeric":   {in: validate.Input{Char: validate.CharNumeric}, s: "12a 3", e: "12 3"},
		"nospace":   {in: validate.Input{Char: validate.CharNumeric, Spacing: &no}, s: "12a 3", e: "123"},
		"upper-max": {in: validate.Input{Case: "upper", Max: 3}, s: "abcd", e: "ABC"},
		"all":       {in: validate.Input{}, s: "a b", e: "a b"},
		"all-nosp":  {in: validate.Input{Spacing: &no}, s: "a b", e: "ab"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, u.in.Normalize(u.s))
		})
	}
}
