package model

import (
	"github.com/gridform/gridform/internal/model1"
)

// GridListener represents a display grid listener.
type GridListener interface {
	// GridChanged notifies the row set changed.
	GridChanged(*model1.TableData)

	// GridRowsRefreshed asks for a redraw of the given rows only.
	GridRowsRefreshed(ids []string)

	// GridColumnsRefreshed asks for a redraw of the given columns only.
	GridColumnsRefreshed(cols []string)

	// GridRowVisible asks to scroll the given row into view.
	GridRowVisible(id string)
}

// SortListener represents a sort state listener.
type SortListener interface {
	// GridSortChanged notifies the grid sort state changed.
	GridSortChanged(model1.SortState)
}

// Transaction batches row inserts and removals.
type Transaction struct {
	Add    model1.Rows
	Remove []string
}

// TxResult reports the rows a transaction actually touched.
type TxResult struct {
	Added   []string
	Removed []string
}

// Grid defines the display grid the form engine drives.
type Grid interface {
	// Header returns the grid columns.
	Header() model1.Header

	// Apply runs a batched insert/remove transaction.
	Apply(Transaction) TxResult

	// Row returns the row displayed under the given identity.
	Row(id string) (model1.Row, bool)

	// Rows returns every row in display order.
	Rows() model1.Rows

	// Rendered returns the rows currently drawn.
	Rendered() model1.Rows

	// Replace swaps the row object sharing the same identity.
	Replace(model1.Row) bool

	// RefreshRows redraws the given rows.
	RefreshRows(ids ...string)

	// RefreshColumns redraws the given columns.
	RefreshColumns(cols ...string)

	// EnsureVisible brings a row into view.
	EnsureVisible(id string)

	// SortState returns the current column sort state.
	SortState() model1.SortState

	// SetSort applies a sort state and notifies sort listeners.
	SetSort(model1.SortState)

	// RevertSort undoes the last SetSort, row order included, and notifies
	// sort listeners. It returns false when there is nothing to undo.
	RevertSort() bool

	// AddListener registers a grid listener.
	AddListener(GridListener)

	// RemoveListener unregisters a grid listener.
	RemoveListener(GridListener)

	// AddSortListener registers a sort listener.
	AddSortListener(SortListener)

	// RemoveSortListener unregisters a sort listener.
	RemoveSortListener(SortListener)
}
