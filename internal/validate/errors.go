package validate

import (
	"fmt"
	"strings"
)

// FieldError represents a single validation failure for a cell.
type FieldError struct {
	RowID   string // Row identity
	Field   string // Field name
	Value   any    // The invalid value
	Message string // Human-readable error message
}

// Path returns the store address of the failing cell.
func (e FieldError) Path() string {
	return e.RowID + "." + e.Field
}

func (e FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Errors collects every failure of one validation pass, in row then column
// order.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// First returns the error to surface to the user.
func (e Errors) First() (FieldError, bool) {
	if len(e) == 0 {
		return FieldError{}, false
	}
	return e[0], true
}
