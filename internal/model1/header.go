package model1

import (
	"fmt"
	"reflect"
)

// RowNumberCol is the conventional name of the row number column.
const RowNumberCol = "no"

// Attrs represents column attributes
type Attrs struct {
	Align     int  // tview alignment
	Width     int  // Max display width, 0 means unbounded
	NoSort    bool // Sorting disabled
	ReadOnly  bool // Displayed but not editable
	Hide      bool // Always hidden
	Decorator DecoratorFunc
}

func (a Attrs) Merge(b Attrs) Attrs {
	if a.Align == 0 {
		a.Align = b.Align
	}
	if a.Width == 0 {
		a.Width = b.Width
	}
	if !a.Hide {
		a.Hide = b.Hide
	}
	if !a.NoSort {
		a.NoSort = b.NoSort
	}
	if !a.ReadOnly {
		a.ReadOnly = b.ReadOnly
	}
	if a.Decorator == nil {
		a.Decorator = b.Decorator
	}
	return a
}

// HeaderColumn represents a table header column bound to a row field
type HeaderColumn struct {
	Name  string
	Title string
	Attrs
}

func (h HeaderColumn) String() string {
	return fmt.Sprintf("%s [%d::%t::%t]", h.Name, h.Align, h.NoSort, h.ReadOnly)
}

// Label returns the display title, falling back to the field name.
func (h HeaderColumn) Label() string {
	if h.Title != "" {
		return h.Title
	}
	return h.Name
}

func (h HeaderColumn) Clone() HeaderColumn {
	return h
}

// Header represents a table header (slice of columns)
type Header []HeaderColumn

func (h Header) Clone() Header {
	he := make(Header, 0, len(h))
	for _, c := range h {
		he = append(he, c.Clone())
	}
	return he
}

func (h Header) Diff(header Header) bool {
	if len(h) != len(header) {
		return true
	}
	return !reflect.DeepEqual(h.ColumnNames(true), header.ColumnNames(true))
}

func (h Header) IndexOf(colName string, includeHidden bool) (int, bool) {
	for i, c := range h {
		if c.Hide && !includeHidden {
			continue
		}
		if c.Name == colName {
			return i, true
		}
	}
	return -1, false
}

// Column returns the named column.
func (h Header) Column(colName string) (HeaderColumn, bool) {
	idx, ok := h.IndexOf(colName, true)
	if !ok {
		return HeaderColumn{}, false
	}
	return h[idx], true
}

func (h Header) HasRowNumber() bool {
	_, ok := h.IndexOf(RowNumberCol, true)
	return ok
}

func (h Header) IsSortable(col string) bool {
	c, ok := h.Column(col)
	return ok && !c.NoSort
}

func (h Header) ColumnNames(includeHidden bool) []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		if !includeHidden && c.Hide {
			continue
		}
		cc = append(cc, c.Name)
	}
	return cc
}

// FieldNames returns the names of the editable business fields, skipping
// the row number column.
func (h Header) FieldNames() []string {
	cc := make([]string, 0, len(h))
	for _, c := range h {
		if c.Name == RowNumberCol {
			continue
		}
		cc = append(cc, c.Name)
	}
	return cc
}
