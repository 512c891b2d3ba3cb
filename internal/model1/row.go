package model1

import (
	"fmt"

	"github.com/wI2L/jsondiff"
)

// Row represents one editable record in the grid.
type Row struct {
	ID        string
	Key       string
	Fields    Fields
	Original  Fields
	Status    Status
	Removable *bool
}

// NewRow builds a row from an external record using the given identity.
func NewRow(id string, rec Record) Row {
	fields := rec.Fields.Clone()
	return Row{
		ID:        id,
		Key:       rec.Key,
		Fields:    fields,
		Original:  fields.Clone(),
		Status:    StatusUnchanged,
		Removable: rec.Removable,
	}
}

// IsNew returns true if the row has no business key yet.
func (r Row) IsNew() bool {
	return r.Key == ""
}

// IsRemovable returns false only when the row explicitly opts out.
func (r Row) IsRemovable() bool {
	return r.Removable == nil || *r.Removable
}

// Value returns a field value.
func (r Row) Value(field string) any {
	return r.Fields[field]
}

// Text returns a field value formatted for display.
func (r Row) Text(field string) string {
	v, ok := r.Fields[field]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (r Row) Clone() Row {
	return Row{
		ID:        r.ID,
		Key:       r.Key,
		Fields:    r.Fields.Clone(),
		Original:  r.Original.Clone(),
		Status:    r.Status,
		Removable: r.Removable,
	}
}

// Record projects the row back to an external record.
func (r Row) Record() Record {
	return Record{
		Key:       r.Key,
		Fields:    r.Fields.Clone(),
		Removable: r.Removable,
	}
}

// Patch returns the RFC 6902 operations turning the original snapshot into
// the current values.
func (r Row) Patch() (jsondiff.Patch, error) {
	return jsondiff.Compare(map[string]any(r.Original.Clone()), map[string]any(r.Fields.Clone()))
}

// Rows represents a collection of rows
type Rows []Row

func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}

// IDs returns the row identities in order.
func (r Rows) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, row := range r {
		ids = append(ids, row.ID)
	}
	return ids
}
