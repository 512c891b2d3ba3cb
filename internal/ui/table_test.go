package ui_test

import (
	"context"
	"testing"

	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/ui"
	"github.com/gridform/gridform/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T) (*ui.Table, *model.GridData) {
	t.Helper()

	g := model.NewGridData(model1.Header{
		{Name: model1.RowNumberCol, Attrs: model1.Attrs{NoSort: true, ReadOnly: true}},
		{Name: "name", Title: "Name"},
		{Name: "secret", Attrs: model1.Attrs{Hide: true}},
	})
	g.Apply(model.Transaction{Add: model1.Rows{
		{ID: "r1", Key: "1", Fields: model1.Fields{"name": "Charlie", "secret": "x"}, Status: model1.StatusUnchanged},
		{ID: "r2", Fields: model1.Fields{"name": "Alice"}, Status: model1.StatusCreated},
	}})

	tv := ui.NewTable("people")
	require.NoError(t, tv.Init(context.Background()))
	g.AddListener(tv)
	tv.SetSource(g)

	return tv, g
}

func TestTableRender(t *testing.T) {
	tv, _ := newGrid(t)

	assert.Equal(t, 3, tv.GetRowCount())
	assert.Equal(t, 3, tv.GetColumnCount())
	assert.Equal(t, "NAME", tv.GetCell(0, 2).Text)
	assert.Equal(t, "1", tv.GetCell(1, 1).Text)
	assert.Equal(t, "Charlie", tv.GetCell(1, 2).Text)
	assert.Equal(t, "", tv.GetCell(1, 0).Text)
	assert.Equal(t, model1.StatusLabel(model1.StatusCreated), tv.GetCell(2, 0).Text)
	assert.Equal(t, []string{"r1", "r2"}, tv.VisibleIDs())
}

func TestTableSortIndicator(t *testing.T) {
	tv, g := newGrid(t)

	g.SetSort(model1.SortState{{Field: "name", Ascending: true}})

	assert.Equal(t, "NAME ▲", tv.GetCell(0, 2).Text)
	assert.Equal(t, "Alice", tv.GetCell(1, 2).Text)
	assert.Equal(t, "1", tv.GetCell(1, 1).Text)
	assert.Equal(t, []string{"r2", "r1"}, tv.VisibleIDs())
}

func TestTableRowsRefreshed(t *testing.T) {
	tv, g := newGrid(t)

	r, ok := g.Row("r1")
	require.True(t, ok)
	r.Fields = r.Fields.With("name", "Chuck")
	r.Status = model1.StatusModified
	require.True(t, g.Replace(r))
	g.RefreshRows("r1")

	assert.Equal(t, "Chuck", tv.GetCell(1, 2).Text)
	assert.Equal(t, model1.StatusLabel(model1.StatusModified), tv.GetCell(1, 0).Text)
}

func TestTableFilter(t *testing.T) {
	tv, _ := newGrid(t)

	tv.SetFilter("ali")
	assert.Equal(t, []string{"r2"}, tv.VisibleIDs())

	tv.ClearFilter()
	assert.Len(t, tv.VisibleIDs(), 2)
}

func TestTableFocus(t *testing.T) {
	tv, g := newGrid(t)

	tv.Focus("r2", "name")
	assert.Equal(t, "r2", tv.SelectedRowID())
	assert.Equal(t, "name", tv.SelectedField())

	g.EnsureVisible("r1")
	assert.Equal(t, "r1", tv.SelectedRowID())
}

func TestTableErrors(t *testing.T) {
	tv, _ := newGrid(t)

	tv.SetErrors(validate.Errors{{RowID: "r2", Field: "name", Message: "Name is required"}})
	msg, ok := tv.CellError("r2", "name")
	assert.True(t, ok)
	assert.Equal(t, "Name is required", msg)

	tv.SetErrors(nil)
	_, ok = tv.CellError("r2", "name")
	assert.False(t, ok)
}
