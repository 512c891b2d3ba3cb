package model1

import "sync"

// TableData is a snapshot of a grid for display.
type TableData struct {
	header Header
	rows   *RowSet
	sort   SortState
	errMsg string
	mx     sync.RWMutex
}

// NewTableData returns a new table.
func NewTableData() *TableData {
	return &TableData{
		rows: NewRowSet(10),
	}
}

// Header returns the table header.
func (t *TableData) Header() Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.header
}

// SetHeader sets the table header.
func (t *TableData) SetHeader(h Header) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.header = h
}

// RowSet returns the rows.
func (t *TableData) RowSet() *RowSet {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rows
}

// SetRowSet replaces the rows.
func (t *TableData) SetRowSet(rs *RowSet) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.rows = rs
}

// Sort returns the sort state the rows are ordered by.
func (t *TableData) Sort() SortState {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.sort.Clone()
}

// SetSort sets the sort state.
func (t *TableData) SetSort(s SortState) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.sort = s.Clone()
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rows.Empty()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rows.Len()
}

// Clone returns a deep copy of the table data.
func (t *TableData) Clone() *TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return &TableData{
		header: t.header.Clone(),
		rows:   t.rows.Clone(),
		sort:   t.sort.Clone(),
		errMsg: t.errMsg,
	}
}

// SetError sets an error message to display instead of data.
func (t *TableData) SetError(msg string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.errMsg = msg
}

// Error returns the error message, if any.
func (t *TableData) Error() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg
}

// HasError returns true if there's an error message.
func (t *TableData) HasError() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg != ""
}
