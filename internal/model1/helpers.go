package model1

import (
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/spf13/cast"
)

// SortColumn represents one normalized sort key.
type SortColumn struct {
	Field     string `json:"field" yaml:"field"`
	Ascending bool   `json:"ascending" yaml:"ascending"`
}

// SortState represents an ordered list of sort keys.
type SortState []SortColumn

func (s SortState) Clone() SortState {
	if s == nil {
		return nil
	}
	out := make(SortState, len(s))
	copy(out, s)
	return out
}

// Equal returns true if both states sort the same way. A nil and an empty
// state are equal.
func (s SortState) Equal(o SortState) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// IsEmpty returns true if no column is sorted.
func (s SortState) IsEmpty() bool {
	return len(s) == 0
}

// Direction returns the sort direction of a field, if sorted.
func (s SortState) Direction(field string) (ascending, ok bool) {
	for _, c := range s {
		if c.Field == field {
			return c.Ascending, true
		}
	}
	return false, false
}

// Toggle cycles a single column through ascending, descending and unsorted.
func (s SortState) Toggle(field string) SortState {
	asc, ok := s.Direction(field)
	switch {
	case !ok:
		return SortState{{Field: field, Ascending: true}}
	case asc:
		return SortState{{Field: field, Ascending: false}}
	default:
		return nil
	}
}

// Less returns true if v1 sorts before v2
func Less(v1, v2 any) bool {
	f1, err1 := cast.ToFloat64E(v1)
	f2, err2 := cast.ToFloat64E(v2)
	if err1 == nil && err2 == nil {
		return f1 < f2
	}
	return sortorder.NaturalLess(
		strings.ToLower(cast.ToString(v1)),
		strings.ToLower(cast.ToString(v2)),
	)
}

// SortRows sorts rows in place by the given state. Ties keep their relative
// order.
func SortRows(rows Rows, state SortState) {
	if state.IsEmpty() {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, c := range state {
			a, b := rows[i].Value(c.Field), rows[j].Value(c.Field)
			if Less(a, b) {
				return c.Ascending
			}
			if Less(b, a) {
				return !c.Ascending
			}
		}
		return false
	})
}
