// Package validate runs field level validation rules over form values.
package validate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gridform/gridform/internal/model1"
	"github.com/spf13/cast"
)

// Field holds the rules and input cleaning of one column.
type Field struct {
	Title string
	Rules []Rule
	Input *Input

	// Unique is the message of the duplicate value rule; empty turns it off.
	Unique string
}

// RowValues holds the form values of one row.
type RowValues struct {
	RowID  string
	Values model1.Fields
}

// Schema maps a field name to its validation settings.
type Schema map[string]Field

// Engine validates form values against a schema.
type Engine struct {
	schema Schema
}

// NewEngine returns a new engine.
func NewEngine(s Schema) *Engine {
	if s == nil {
		s = Schema{}
	}
	return &Engine{schema: s}
}

// Schema returns the engine schema.
func (e *Engine) Schema() Schema {
	return e.schema
}

// Validate checks one cell and returns the first failing rule.
func (e *Engine) Validate(rowID, field string, v any) *FieldError {
	f, ok := e.schema[field]
	if !ok {
		return nil
	}
	for _, r := range f.Rules {
		if msg, ok := r(v); !ok {
			return &FieldError{
				RowID:   rowID,
				Field:   field,
				Value:   v,
				Message: msg,
			}
		}
	}
	return nil
}

// ValidateRow checks every field of a row in the given column order and
// returns all failures.
func (e *Engine) ValidateRow(rowID string, values model1.Fields, order []string) Errors {
	var errs Errors
	seen := make(map[string]struct{}, len(order))
	for _, f := range order {
		seen[f] = struct{}{}
		if fe := e.Validate(rowID, f, values[f]); fe != nil {
			errs = append(errs, *fe)
		}
	}
	rest := make([]string, 0, len(e.schema))
	for f := range e.schema {
		if _, ok := seen[f]; !ok {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	for _, f := range rest {
		if fe := e.Validate(rowID, f, values[f]); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// ValidateUnique checks the unique fields across rows, given in display
// order. A repeated value fails on every later row; blank values never
// collide. Values compare trimmed and case-insensitively.
func (e *Engine) ValidateUnique(rows []RowValues) Errors {
	var fields []string
	for f, spec := range e.schema {
		if spec.Unique != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)

	seen := make(map[string]map[string]int, len(fields))
	for _, f := range fields {
		seen[f] = make(map[string]int)
	}
	var errs Errors
	for i, r := range rows {
		for _, f := range fields {
			v := r.Values[f]
			if model1.IsFalsy(v) {
				continue
			}
			k := strings.ToLower(strings.TrimSpace(cast.ToString(v)))
			if k == "" {
				continue
			}
			first, ok := seen[f][k]
			if !ok {
				seen[f][k] = i
				continue
			}
			errs = append(errs, FieldError{
				RowID:   r.RowID,
				Field:   f,
				Value:   v,
				Message: rowNumbers(e.schema[f].Unique, first+1, i+1),
			})
		}
	}
	return errs
}

func rowNumbers(msg string, first, second int) string {
	return strings.NewReplacer(
		"{first}", strconv.Itoa(first),
		"{second}", strconv.Itoa(second),
	).Replace(msg)
}

// Normalize cleans a raw string input for the given field.
func (e *Engine) Normalize(field string, v any) any {
	f, ok := e.schema[field]
	if !ok || f.Input == nil {
		return v
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	return f.Input.Normalize(s)
}
