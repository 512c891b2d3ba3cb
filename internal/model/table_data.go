package model

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/gridform/gridform/internal/model1"
)

// sortUndo remembers the display before the last sort.
type sortUndo struct {
	ids   []string
	state model1.SortState
}

// GridData is an in-memory display grid. Rows keep their insertion order
// underneath any sort.
type GridData struct {
	data          *model1.TableData
	order         []string
	undo          *sortUndo
	viewport      [2]int
	listeners     []GridListener
	sortListeners []SortListener
	log           *slog.Logger
	mx            sync.RWMutex
}

var _ Grid = (*GridData)(nil)

// NewGridData creates a new grid with the given columns.
func NewGridData(h model1.Header) *GridData {
	data := model1.NewTableData()
	data.SetHeader(h)

	return &GridData{
		data:      data,
		listeners: make([]GridListener, 0, 2),
		log:       slog.Default().With("component", "grid"),
	}
}

// Header returns the grid header.
func (g *GridData) Header() model1.Header {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.data.Header()
}

// SetHeader replaces the grid columns.
func (g *GridData) SetHeader(h model1.Header) {
	g.mx.Lock()
	g.data.SetHeader(h)
	g.mx.Unlock()

	g.notifyChanged()
}

// Apply runs a batched transaction and notifies listeners once.
func (g *GridData) Apply(tx Transaction) TxResult {
	var res TxResult

	g.mx.Lock()
	rs := g.data.RowSet()
	for _, id := range tx.Remove {
		if err := rs.Delete(id); err != nil {
			g.log.Debug("remove skipped", "row_id", id, "error", err)
			continue
		}
		g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })
		res.Removed = append(res.Removed, id)
	}
	for _, r := range tx.Add {
		if rs.Has(r.ID) {
			g.log.Debug("duplicate add skipped", "row_id", r.ID)
			continue
		}
		rs.Add(r)
		g.order = append(g.order, r.ID)
		res.Added = append(res.Added, r.ID)
	}
	if len(res.Added)+len(res.Removed) > 0 {
		g.undo = nil
	}
	g.mx.Unlock()

	if len(res.Added)+len(res.Removed) > 0 {
		g.notifyChanged()
	}
	return res
}

// Clear drops every row.
func (g *GridData) Clear() {
	g.mx.Lock()
	g.data.RowSet().Clear()
	g.order, g.undo = nil, nil
	g.mx.Unlock()

	g.notifyChanged()
}

// Row returns a row by identity.
func (g *GridData) Row(id string) (model1.Row, bool) {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.data.RowSet().Get(id)
}

// Rows returns every row in display order.
func (g *GridData) Rows() model1.Rows {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.data.RowSet().Rows()
}

// SetViewport limits Rendered to count rows starting at offset. A zero
// count renders every row.
func (g *GridData) SetViewport(offset, count int) {
	g.mx.Lock()
	defer g.mx.Unlock()
	g.viewport = [2]int{offset, count}
}

// Rendered returns the rows within the viewport.
func (g *GridData) Rendered() model1.Rows {
	g.mx.RLock()
	defer g.mx.RUnlock()

	rows := g.data.RowSet().Rows()
	offset, count := g.viewport[0], g.viewport[1]
	if count <= 0 {
		return rows
	}
	if offset >= len(rows) {
		return nil
	}
	end := min(offset+count, len(rows))
	return rows[offset:end]
}

// Replace swaps the row sharing the same identity.
func (g *GridData) Replace(r model1.Row) bool {
	g.mx.Lock()
	defer g.mx.Unlock()

	rs := g.data.RowSet()
	idx, ok := rs.FindIndex(r.ID)
	if !ok {
		return false
	}
	rs.Set(idx, r)
	return true
}

// RefreshRows asks listeners to redraw some rows.
func (g *GridData) RefreshRows(ids ...string) {
	for _, l := range g.snapListeners() {
		l.GridRowsRefreshed(ids)
	}
}

// RefreshColumns asks listeners to redraw some columns.
func (g *GridData) RefreshColumns(cols ...string) {
	for _, l := range g.snapListeners() {
		l.GridColumnsRefreshed(cols)
	}
}

// EnsureVisible asks listeners to scroll to a row.
func (g *GridData) EnsureVisible(id string) {
	if _, ok := g.Row(id); !ok {
		return
	}
	for _, l := range g.snapListeners() {
		l.GridRowVisible(id)
	}
}

// SortState returns the current sort state.
func (g *GridData) SortState() model1.SortState {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.data.Sort()
}

// SetSort reorders rows by the given state, then notifies sort listeners.
// Rows are sorted from their insertion order, so an empty state restores it.
func (g *GridData) SetSort(s model1.SortState) {
	g.mx.Lock()
	rs := g.data.RowSet()
	g.undo = &sortUndo{ids: rs.Rows().IDs(), state: g.data.Sort()}
	g.data.SetSort(s)
	rows := g.inserted()
	model1.SortRows(rows, s)
	rs.Reorder(rows)
	g.mx.Unlock()

	g.sorted(s)
}

// RevertSort undoes the last SetSort, restoring the previous row order and
// sort state, then notifies sort listeners. It returns false when rows were
// added or removed since, or no sort happened.
func (g *GridData) RevertSort() bool {
	g.mx.Lock()
	u := g.undo
	if u == nil {
		g.mx.Unlock()
		return false
	}
	g.undo = nil
	rs := g.data.RowSet()
	rows := make(model1.Rows, 0, len(u.ids))
	for _, id := range u.ids {
		if r, ok := rs.Get(id); ok {
			rows = append(rows, r)
		}
	}
	rs.Reorder(rows)
	g.data.SetSort(u.state)
	g.mx.Unlock()

	g.sorted(u.state)
	return true
}

// inserted returns the rows in insertion order. Caller holds the lock.
func (g *GridData) inserted() model1.Rows {
	rs := g.data.RowSet()
	rows := make(model1.Rows, 0, len(g.order))
	for _, id := range g.order {
		if r, ok := rs.Get(id); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *GridData) sorted(s model1.SortState) {
	g.notifyChanged()
	if g.Header().HasRowNumber() {
		g.RefreshColumns(model1.RowNumberCol)
	}
	for _, l := range g.snapSortListeners() {
		l.GridSortChanged(s.Clone())
	}
}

// Peek returns a clone of the current grid data.
func (g *GridData) Peek() *model1.TableData {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.data.Clone()
}

// AddListener registers a grid listener.
func (g *GridData) AddListener(l GridListener) {
	g.mx.Lock()
	defer g.mx.Unlock()
	g.listeners = append(g.listeners, l)
}

// RemoveListener unregisters a grid listener.
func (g *GridData) RemoveListener(l GridListener) {
	g.mx.Lock()
	defer g.mx.Unlock()

	for i, listener := range g.listeners {
		if listener == l {
			g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
			return
		}
	}
}

// AddSortListener registers a sort listener.
func (g *GridData) AddSortListener(l SortListener) {
	g.mx.Lock()
	defer g.mx.Unlock()
	g.sortListeners = append(g.sortListeners, l)
}

// RemoveSortListener unregisters a sort listener.
func (g *GridData) RemoveSortListener(l SortListener) {
	g.mx.Lock()
	defer g.mx.Unlock()

	for i, listener := range g.sortListeners {
		if listener == l {
			g.sortListeners = append(g.sortListeners[:i], g.sortListeners[i+1:]...)
			return
		}
	}
}

func (g *GridData) snapListeners() []GridListener {
	g.mx.RLock()
	defer g.mx.RUnlock()

	listeners := make([]GridListener, len(g.listeners))
	copy(listeners, g.listeners)
	return listeners
}

func (g *GridData) snapSortListeners() []SortListener {
	g.mx.RLock()
	defer g.mx.RUnlock()

	listeners := make([]SortListener, len(g.sortListeners))
	copy(listeners, g.sortListeners)
	return listeners
}

// notifyChanged notifies listeners that the rows changed.
func (g *GridData) notifyChanged() {
	data := g.Peek()
	for _, l := range g.snapListeners() {
		l.GridChanged(data)
	}
}
