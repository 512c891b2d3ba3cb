package validate

import (
	"regexp"
	"strings"
)

// CharType restricts the characters an input keeps.
type CharType string

const (
	CharAll          CharType = "ALL"
	CharNumeric      CharType = "NUMERIC"
	CharAlpha        CharType = "ALPHA"
	CharAlphanumeric CharType = "ALPHANUMERIC"
)

// Input describes how raw input is cleaned before it reaches the store.
type Input struct {
	Max     int      `yaml:"max,omitempty"`
	Char    CharType `yaml:"char,omitempty"`
	Spacing *bool    `yaml:"spacing,omitempty"`
	Case    string   `yaml:"case,omitempty"` // UPPER or LOWER
}

func (i Input) pattern() *regexp.Regexp {
	spacing := i.Spacing == nil || *i.Spacing
	var p string
	switch i.Char {
	case CharNumeric:
		p = `[0-9]`
		if spacing {
			p = `[0-9 ]`
		}
	case CharAlpha:
		p = `[A-Za-z]`
		if spacing {
			p = `[A-Za-z ]`
		}
	case CharAlphanumeric:
		p = `[A-Za-z0-9]`
		if spacing {
			p = `[A-Za-z0-9 ]`
		}
	default:
		p = `[\s\S]`
		if !spacing {
			p = `[^ ]`
		}
	}
	return regexp.MustCompile(p)
}

// Normalize filters disallowed characters, applies the case and truncates
// to the max length.
func (i Input) Normalize(s string) string {
	s = strings.Join(i.pattern().FindAllString(s, -1), "")

	switch strings.ToUpper(i.Case) {
	case "UPPER":
		s = strings.ToUpper(s)
	case "LOWER":
		s = strings.ToLower(s)
	}

	if i.Max > 0 {
		if rr := []rune(s); len(rr) > i.Max {
			s = string(rr[:i.Max])
		}
	}
	return s
}
