package validate

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Rule checks a value and returns a message when it fails.
type Rule func(v any) (string, bool)

// PatternType names an allowed character class.
type PatternType string

const (
	PatternUpper   PatternType = "UPPER-ALPHABET"
	PatternLower   PatternType = "LOWER-ALPHABET"
	PatternNumber  PatternType = "NUMBER"
	PatternSpecial PatternType = "SPECIAL"
	PatternEnglish PatternType = "ENGLISH"
)

var patternClasses = map[PatternType]string{
	PatternUpper:   `A-Z`,
	PatternLower:   `a-z`,
	PatternNumber:  `0-9`,
	PatternSpecial: `!@#$%^&*(),.?":{}|<>_\[\]/+=~` + "`" + `'\-;`,
	PatternEnglish: `a-zA-Z`,
}

var patternLabels = map[PatternType]string{
	PatternUpper:   "upper case letters",
	PatternLower:   "lower case letters",
	PatternNumber:  "numbers",
	PatternSpecial: "special characters",
	PatternEnglish: "letters",
}

// Required rejects blank strings, NaN and missing values.
func Required(msg string) Rule {
	return func(v any) (string, bool) {
		switch t := v.(type) {
		case string:
			return msg, strings.TrimSpace(t) != ""
		case float64:
			return msg, !math.IsNaN(t)
		case float32:
			return msg, !math.IsNaN(float64(t))
		case nil:
			return msg, false
		}
		if _, err := cast.ToFloat64E(v); err == nil {
			return msg, true
		}
		return msg, cast.ToString(v) != ""
	}
}

// MinLength rejects non-empty values shorter than n characters. A {min}
// placeholder in msg is replaced by n.
func MinLength(n int, msg string) Rule {
	msg = strings.ReplaceAll(msg, "{min}", fmt.Sprint(n))
	return func(v any) (string, bool) {
		s := cast.ToString(v)
		if s == "" {
			return msg, true
		}
		return msg, len([]rune(s)) >= n
	}
}

// MaxLength rejects values longer than n characters. A {max} placeholder in
// msg is replaced by n.
func MaxLength(n int, msg string) Rule {
	msg = strings.ReplaceAll(msg, "{max}", fmt.Sprint(n))
	return func(v any) (string, bool) {
		return msg, len([]rune(cast.ToString(v))) <= n
	}
}

// GreaterThanZero rejects values that are numerically zero.
func GreaterThanZero(msg string) Rule {
	return func(v any) (string, bool) {
		f, err := cast.ToFloat64E(v)
		return msg, err != nil || f != 0
	}
}

// OneOf rejects non-empty values outside the allowed set.
func OneOf(values []string, msg string) Rule {
	return func(v any) (string, bool) {
		s := cast.ToString(v)
		return msg, s == "" || slices.Contains(values, s)
	}
}

// Match rejects non-empty values not matching rx.
func Match(rx *regexp.Regexp, msg string) Rule {
	return func(v any) (string, bool) {
		s := cast.ToString(v)
		return msg, s == "" || rx.MatchString(s)
	}
}

// PatternRegex combines character classes into one expression accepting
// only those classes.
func PatternRegex(types []PatternType, allowSpace bool) (*regexp.Regexp, error) {
	if len(types) == 0 {
		return regexp.Compile(`^.*$`)
	}

	var body strings.Builder
	for _, t := range types {
		class, ok := patternClasses[t]
		if !ok {
			return nil, fmt.Errorf("unknown pattern type %q", t)
		}
		body.WriteString(class)
	}
	if allowSpace {
		body.WriteString(" ")
	}
	return regexp.Compile(`^[` + body.String() + `]+$`)
}

// Pattern restricts a value to the given character classes. With
// requireAll every class must appear at least once.
func Pattern(types []PatternType, allowSpace, requireAll bool, msg string) (Rule, error) {
	rx, err := PatternRegex(types, allowSpace)
	if err != nil {
		return nil, err
	}
	each := make([]*regexp.Regexp, 0, len(types))
	if requireAll {
		for _, t := range types {
			each = append(each, regexp.MustCompile(`[`+patternClasses[t]+`]`))
		}
	}
	if msg == "" {
		msg = PatternMessage(types, requireAll)
	}

	return func(v any) (string, bool) {
		s := cast.ToString(v)
		if s == "" {
			return msg, true
		}
		if !rx.MatchString(s) {
			return msg, false
		}
		for _, r := range each {
			if !r.MatchString(s) {
				return msg, false
			}
		}
		return msg, true
	}, nil
}

// PatternMessage describes the allowed character classes.
func PatternMessage(types []PatternType, requireAll bool) string {
	if len(types) == 0 {
		return ""
	}
	ll := make([]string, 0, len(types))
	for _, t := range types {
		ll = append(ll, patternLabels[t])
	}
	if requireAll {
		return "must include " + strings.Join(ll, ", ")
	}
	return "only " + strings.Join(ll, ", ") + " allowed"
}
