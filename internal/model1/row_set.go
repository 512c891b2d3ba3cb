package model1

import "fmt"

// RowSet an ordered collection of rows indexed by row identity
type RowSet struct {
	rows  []Row
	index map[string]int
}

func NewRowSet(size int) *RowSet {
	return &RowSet{
		rows:  make([]Row, 0, size),
		index: make(map[string]int, size),
	}
}

func (r *RowSet) reindex() {
	for k := range r.index {
		delete(r.index, k)
	}
	for i, row := range r.rows {
		r.index[row.ID] = i
	}
}

func (r *RowSet) At(i int) (Row, bool) {
	if i < 0 || i >= len(r.rows) {
		return Row{}, false
	}
	return r.rows[i], true
}

func (r *RowSet) Set(i int, row Row) {
	delete(r.index, r.rows[i].ID)
	r.rows[i] = row
	r.index[row.ID] = i
}

func (r *RowSet) Add(row Row) {
	r.rows = append(r.rows, row)
	r.index[row.ID] = len(r.rows) - 1
}

func (r *RowSet) Len() int {
	return len(r.rows)
}

func (r *RowSet) Empty() bool {
	return len(r.rows) == 0
}

func (r *RowSet) Clear() {
	r.rows = r.rows[:0]
	for k := range r.index {
		delete(r.index, k)
	}
}

func (r *RowSet) Get(id string) (Row, bool) {
	i, ok := r.index[id]
	if !ok {
		return Row{}, false
	}
	return r.At(i)
}

func (r *RowSet) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

func (r *RowSet) FindIndex(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

func (r *RowSet) Delete(id string) error {
	victim, ok := r.FindIndex(id)
	if !ok {
		return fmt.Errorf("unable to delete row with id: %q", id)
	}
	r.rows = append(r.rows[0:victim], r.rows[victim+1:]...)
	r.reindex()
	return nil
}

// Reorder replaces the row order, keeping the same members.
func (r *RowSet) Reorder(rows Rows) {
	r.rows = append(r.rows[:0], rows...)
	r.reindex()
}

func (r *RowSet) Clone() *RowSet {
	out := NewRowSet(len(r.rows))
	for _, row := range r.rows {
		out.Add(row.Clone())
	}
	return out
}

// Rows returns a copy of the rows in display order.
func (r *RowSet) Rows() Rows {
	out := make(Rows, len(r.rows))
	copy(out, r.rows)
	return out
}
