package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Default messages. {field}, {min} and {max} are substituted. MsgUnique
// also takes the 1-based row numbers {first} and {second}.
const (
	MsgRequired = "{field} is required"
	MsgMin      = "{field} must be at least {min} characters"
	MsgMax      = "{field} must be at most {max} characters"
	MsgPositive = "{field} must be greater than zero"
	MsgEnum     = "{field} has an unsupported value"
	MsgRegex    = "{field} has an invalid format"
	MsgUnique   = "{field} in row {second} duplicates row {first}"
)

// Spec is the declarative form of a column's rules, as found in config files.
type Spec struct {
	Required   bool          `yaml:"required,omitempty"`
	Min        int           `yaml:"min,omitempty"`
	Max        int           `yaml:"max,omitempty"`
	Positive   bool          `yaml:"positive,omitempty"`
	Pattern    []PatternType `yaml:"pattern,omitempty"`
	AllowSpace *bool         `yaml:"allowSpace,omitempty"`
	RequireAll bool          `yaml:"requireAll,omitempty"`
	Regex      string        `yaml:"regex,omitempty"`
	Enum       []string      `yaml:"enum,omitempty"`
	Unique     bool          `yaml:"unique,omitempty"`
	Message    string        `yaml:"message,omitempty"`
	Input      *Input        `yaml:"input,omitempty"`
}

// Build converts a spec into a schema field.
func (s Spec) Build(title string) (Field, error) {
	f := Field{Title: title, Input: s.Input}
	msg := func(def string) string {
		if s.Message != "" {
			def = s.Message
		}
		return substitute(def, title)
	}

	if s.Required {
		f.Rules = append(f.Rules, Required(msg(MsgRequired)))
	}
	if s.Min > 0 {
		f.Rules = append(f.Rules, MinLength(s.Min, msg(MsgMin)))
	}
	if s.Max > 0 {
		f.Rules = append(f.Rules, MaxLength(s.Max, msg(MsgMax)))
	}
	if s.Positive {
		f.Rules = append(f.Rules, GreaterThanZero(msg(MsgPositive)))
	}
	if len(s.Pattern) > 0 {
		allowSpace := s.AllowSpace == nil || *s.AllowSpace
		m := s.Message
		if m == "" {
			m = title + " " + PatternMessage(s.Pattern, s.RequireAll)
		}
		r, err := Pattern(s.Pattern, allowSpace, s.RequireAll, m)
		if err != nil {
			return Field{}, fmt.Errorf("field %q: %w", title, err)
		}
		f.Rules = append(f.Rules, r)
	}
	if s.Regex != "" {
		rx, err := regexp.Compile(s.Regex)
		if err != nil {
			return Field{}, fmt.Errorf("field %q: invalid regex: %w", title, err)
		}
		f.Rules = append(f.Rules, Match(rx, msg(MsgRegex)))
	}
	if len(s.Enum) > 0 {
		f.Rules = append(f.Rules, OneOf(s.Enum, msg(MsgEnum)))
	}
	if s.Unique {
		f.Unique = msg(MsgUnique)
	}

	return f, nil
}

func substitute(msg, title string) string {
	return strings.ReplaceAll(msg, "{field}", title)
}
