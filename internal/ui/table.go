// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/validate"
)

const (
	// TitleFmt formats the table title with table name and row count.
	TitleFmt = " <%s>[%d] "

	statusWidth = 8
)

// GridSource is the row model a Table renders.
type GridSource interface {
	// Peek returns a snapshot of the grid data.
	Peek() *model1.TableData

	// Row returns the current version of a row.
	Row(id string) (model1.Row, bool)

	// SetViewport tells the model which rows are on screen.
	SetViewport(offset, count int)
}

// QueueFunc schedules a ui update.
type QueueFunc func(func())

// Table represents an editable grid view. Column 0 shows the row status.
type Table struct {
	*tview.Table

	name       string
	actions    *KeyActions
	source     GridSource
	header     model1.Header
	cols       []model1.HeaderColumn
	rows       model1.Rows
	sort       model1.SortState
	lines      map[string]int
	errs       map[string]string
	filterText string
	queue      QueueFunc
	colorer    model1.ColorerFunc
	mx         sync.RWMutex
}

// NewTable returns a new table instance.
func NewTable(name string) *Table {
	return &Table{
		Table:   tview.NewTable(),
		name:    name,
		actions: NewKeyActions(),
		lines:   make(map[string]int),
		errs:    make(map[string]string),
		queue:   func(f func()) { f() },
		colorer: model1.DefaultColorer,
	}
}

// Init initializes the table component.
func (t *Table) Init(context.Context) error {
	t.SetFixed(1, 1)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, true)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorWhite)
	t.SetTitle(fmt.Sprintf(TitleFmt, t.name, 0))
	t.showNoData("Loading...")
	t.SetInputCapture(t.keyboard)

	return nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// SetQueue sets how listener updates reach the ui goroutine.
func (t *Table) SetQueue(q QueueFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.queue = q
}

// SetSource sets the row model.
func (t *Table) SetSource(s GridSource) {
	t.mx.Lock()
	t.source = s
	t.mx.Unlock()

	if s != nil {
		t.GridChanged(s.Peek())
	}
}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// keyboard handles table keyboard input.
func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	switch key := evt.Key(); {
	case key == tcell.KeyRune && evt.Rune() == 'j', key == tcell.KeyDown:
		if row < rowCount-1 {
			t.Select(row+1, col)
		}
		return nil
	case key == tcell.KeyRune && evt.Rune() == 'k', key == tcell.KeyUp:
		if row > 1 {
			t.Select(row-1, col)
		}
		return nil
	case key == tcell.KeyRune && evt.Rune() == 'g', key == tcell.KeyHome:
		if rowCount > 1 {
			t.Select(1, col)
		}
		return nil
	case key == tcell.KeyRune && evt.Rune() == 'G', key == tcell.KeyEnd:
		if rowCount > 1 {
			t.Select(rowCount-1, col)
		}
		return nil
	}

	if out, ok := t.actions.Dispatch(evt); ok {
		return out
	}

	return evt
}

// showNoData displays a message when there's no data.
func (t *Table) showNoData(msg string) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(tcell.ColorGray)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	t.SetCell(0, 0, cell)
}

// SelectedRowID returns the identity of the selected row.
func (t *Table) SelectedRowID() string {
	row, _ := t.GetSelection()
	if row == 0 {
		return ""
	}
	cell := t.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	if id, ok := cell.GetReference().(string); ok {
		return id
	}
	return ""
}

// SelectedField returns the field under the cursor.
func (t *Table) SelectedField() string {
	_, col := t.GetSelection()

	t.mx.RLock()
	defer t.mx.RUnlock()
	if col < 1 || col > len(t.cols) {
		return ""
	}
	return t.cols[col-1].Name
}

// Focus moves the cursor to a cell.
func (t *Table) Focus(rowID, field string) {
	t.do(func() {
		t.mx.RLock()
		line, ok := t.lines[rowID]
		col := t.colIndex(field)
		t.mx.RUnlock()
		if ok {
			t.Select(line, max(col, 1))
		}
	})
}

// SetErrors highlights invalid cells. A nil list clears them.
func (t *Table) SetErrors(errs validate.Errors) {
	t.mx.Lock()
	t.errs = make(map[string]string, len(errs))
	for _, e := range errs {
		t.errs[errKey(e.RowID, e.Field)] = e.Message
	}
	t.mx.Unlock()

	t.do(t.render)
}

// CellError returns the validation message of a cell.
func (t *Table) CellError(rowID, field string) (string, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()
	msg, ok := t.errs[errKey(rowID, field)]
	return msg, ok
}

// HasErrors returns true if any cell is highlighted as invalid.
func (t *Table) HasErrors() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.errs) > 0
}

// SetFilter sets the current filter text.
func (t *Table) SetFilter(filter string) {
	t.mx.Lock()
	t.filterText = filter
	t.mx.Unlock()

	t.do(t.render)
}

// ClearFilter clears the filter.
func (t *Table) ClearFilter() {
	t.SetFilter("")
}

// VisibleIDs returns the row identities on display, in order.
func (t *Table) VisibleIDs() []string {
	t.mx.RLock()
	defer t.mx.RUnlock()

	ids := make([]string, len(t.lines))
	for id, line := range t.lines {
		ids[line-1] = id
	}
	return ids
}

// Draw draws the table and reports the visible window to the model.
func (t *Table) Draw(screen tcell.Screen) {
	t.Table.Draw(screen)

	t.mx.RLock()
	src, filtered := t.source, t.filterText != ""
	t.mx.RUnlock()
	if src == nil {
		return
	}
	if filtered {
		src.SetViewport(0, 0)
		return
	}
	_, _, _, h := t.GetInnerRect()
	offset, _ := t.GetOffset()
	src.SetViewport(offset, max(h-1, 0))
}

// GridChanged implements model.GridListener.
func (t *Table) GridChanged(data *model1.TableData) {
	t.mx.Lock()
	t.header = data.Header()
	t.rows = data.RowSet().Rows()
	t.sort = data.Sort()
	t.mx.Unlock()

	t.do(t.render)
}

// GridRowsRefreshed implements model.GridListener.
func (t *Table) GridRowsRefreshed(ids []string) {
	t.mx.Lock()
	src := t.source
	if src == nil {
		t.mx.Unlock()
		return
	}
	for _, id := range ids {
		row, ok := src.Row(id)
		if !ok {
			continue
		}
		for i := range t.rows {
			if t.rows[i].ID == id {
				t.rows[i] = row
				break
			}
		}
	}
	t.mx.Unlock()

	t.do(func() {
		t.mx.RLock()
		defer t.mx.RUnlock()
		for _, id := range ids {
			line, ok := t.lines[id]
			if !ok {
				continue
			}
			if row, ok := t.rowByID(id); ok {
				t.buildRow(row, line)
			}
		}
	})
}

// GridColumnsRefreshed implements model.GridListener.
func (t *Table) GridColumnsRefreshed(cols []string) {
	t.do(func() {
		t.mx.RLock()
		defer t.mx.RUnlock()
		for _, row := range t.rows {
			line, ok := t.lines[row.ID]
			if !ok {
				continue
			}
			for _, c := range cols {
				if idx := t.colIndex(c); idx > 0 {
					t.SetCell(line, idx, t.buildCell(row, line, t.cols[idx-1]))
				}
			}
		}
	})
}

// GridRowVisible implements model.GridListener.
func (t *Table) GridRowVisible(id string) {
	t.do(func() {
		t.mx.RLock()
		line, ok := t.lines[id]
		t.mx.RUnlock()
		if ok {
			_, col := t.GetSelection()
			t.Select(line, max(col, 1))
		}
	})
}

func (t *Table) do(f func()) {
	t.mx.RLock()
	q := t.queue
	t.mx.RUnlock()
	q(f)
}

// render rebuilds every cell. Must run on the ui goroutine.
func (t *Table) render() {
	t.mx.Lock()
	t.cols = t.cols[:0]
	for _, c := range t.header {
		if !c.Hide {
			t.cols = append(t.cols, c)
		}
	}
	filter := strings.ToLower(t.filterText)
	t.lines = make(map[string]int, len(t.rows))
	shown := make(model1.Rows, 0, len(t.rows))
	for _, row := range t.rows {
		if filter == "" || t.matches(row, filter) {
			shown = append(shown, row)
			t.lines[row.ID] = len(shown)
		}
	}
	t.mx.Unlock()

	t.mx.RLock()
	defer t.mx.RUnlock()

	selRow, selCol := t.GetSelection()
	t.Clear()
	t.buildHeader()
	for i, row := range shown {
		t.buildRow(row, i+1)
	}
	t.updateTitle(len(shown))

	if len(shown) == 0 {
		return
	}
	t.Select(min(max(selRow, 1), len(shown)), max(selCol, 1))
}

func (t *Table) matches(row model1.Row, filter string) bool {
	for _, c := range t.header {
		if strings.Contains(strings.ToLower(row.Text(c.Name)), filter) {
			return true
		}
	}
	return false
}

func (t *Table) buildHeader() {
	st := tview.NewTableCell("")
	st.SetSelectable(false)
	st.SetMaxWidth(statusWidth)
	t.SetCell(0, 0, st)

	for i, h := range t.cols {
		label := strings.ToUpper(h.Label())
		cell := tview.NewTableCell(label)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(h.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if asc, ok := t.sort.Direction(h.Name); ok {
			arrow := "▼"
			if asc {
				arrow = "▲"
			}
			cell.SetText(label + " " + arrow)
			cell.SetAttributes(tcell.AttrBold)
		}
		t.SetCell(0, i+1, cell)
	}
}

func (t *Table) buildRow(row model1.Row, line int) {
	st := tview.NewTableCell(model1.StatusLabel(row.Status))
	st.SetReference(row.ID)
	st.SetMaxWidth(statusWidth)
	st.SetTextColor(tcell.Color(model1.StatusColor(row.Status)))
	st.SetSelectable(false)
	t.SetCell(line, 0, st)

	for i, c := range t.cols {
		t.SetCell(line, i+1, t.buildCell(row, line, c))
	}
}

func (t *Table) buildCell(row model1.Row, line int, c model1.HeaderColumn) *tview.TableCell {
	text := row.Text(c.Name)
	if c.Name == model1.RowNumberCol {
		text = strconv.Itoa(line)
	}
	if c.Decorator != nil {
		text = c.Decorator(text)
	}

	cell := tview.NewTableCell(tview.Escape(text))
	cell.SetBackgroundColor(tcell.ColorDefault)
	cell.SetAlign(c.Align)
	cell.SetExpansion(1)
	cell.SetTextColor(tcell.Color(t.colorer(t.header, &row)))
	if c.Width > 0 {
		cell.SetMaxWidth(c.Width)
	}
	if c.ReadOnly {
		cell.SetAttributes(tcell.AttrDim)
	}
	if _, ok := t.errs[errKey(row.ID, c.Name)]; ok {
		cell.SetTextColor(tcell.Color(model1.ErrColor))
		cell.SetAttributes(tcell.AttrUnderline)
	}

	return cell
}

func (t *Table) rowByID(id string) (model1.Row, bool) {
	for _, r := range t.rows {
		if r.ID == id {
			return r, true
		}
	}
	return model1.Row{}, false
}

func (t *Table) colIndex(field string) int {
	for i, c := range t.cols {
		if c.Name == field {
			return i + 1
		}
	}
	return 0
}

func (t *Table) updateTitle(count int) {
	title := fmt.Sprintf(TitleFmt, t.name, count)
	if t.filterText != "" {
		title = fmt.Sprintf(" <%s>[%d] Filter: %s ", t.name, count, t.filterText)
	}
	t.SetTitle(title)
}

func errKey(rowID, field string) string {
	return rowID + "/" + field
}
