package model1

import (
	"github.com/gdamore/tcell/v2"
)

const NAValue = "n/a"

// Status represents a row lifecycle status
type Status int

const (
	StatusUnchanged Status = 1 << iota
	StatusCreated
	StatusModified
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusModified:
		return "modified"
	default:
		return "unchanged"
	}
}

// IsDirty returns true when the row holds unsaved changes.
func (s Status) IsDirty() bool {
	return s == StatusCreated || s == StatusModified
}

// ParseStatus converts a config status name back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "unchanged", "default", "":
		return StatusUnchanged, true
	case "created", "new":
		return StatusCreated, true
	case "modified":
		return StatusModified, true
	}
	return StatusUnchanged, false
}

// Fields represents a row business payload keyed by field name
type Fields map[string]any

// Clone returns a shallow copy of the fields.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// With returns a copy of the fields with one value replaced.
func (f Fields) With(field string, value any) Fields {
	out := f.Clone()
	out[field] = value
	return out
}

// Record is an external row as delivered by a data source.
type Record struct {
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
	Fields    Fields `json:"fields" yaml:"fields"`
	Removable *bool  `json:"removable,omitempty" yaml:"removable,omitempty"`
}

// DecoratorFunc decorates a string
type DecoratorFunc func(string) string

// ColorerFunc represents a row colorer
type ColorerFunc func(h Header, row *Row) tcell.Color
