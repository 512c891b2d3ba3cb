package model_test

import (
	"testing"

	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gridRecorder struct {
	changed   int
	refreshed [][]string
	columns   [][]string
	visible   []string
	sorts     []model1.SortState
}

func (r *gridRecorder) GridChanged(*model1.TableData)      { r.changed++ }
func (r *gridRecorder) GridRowsRefreshed(ids []string)     { r.refreshed = append(r.refreshed, ids) }
func (r *gridRecorder) GridColumnsRefreshed(cols []string) { r.columns = append(r.columns, cols) }
func (r *gridRecorder) GridRowVisible(id string)           { r.visible = append(r.visible, id) }
func (r *gridRecorder) GridSortChanged(s model1.SortState) { r.sorts = append(r.sorts, s) }

func makeRow(id, key, name string) model1.Row {
	return model1.NewRow(id, model1.Record{Key: key, Fields: model1.Fields{"name": name}})
}

func newGrid() (*model.GridData, *gridRecorder) {
	g := model.NewGridData(model1.Header{
		{Name: model1.RowNumberCol},
		{Name: "name"},
	})
	r := new(gridRecorder)
	g.AddListener(r)
	g.AddSortListener(r)

	return g, r
}

func TestGridApply(t *testing.T) {
	g, r := newGrid()

	res := g.Apply(model.Transaction{Add: model1.Rows{
		makeRow("r1", "1", "b"),
		makeRow("r2", "2", "a"),
		makeRow("r1", "1", "dup"),
	}})
	assert.Equal(t, []string{"r1", "r2"}, res.Added)
	assert.Equal(t, 1, r.changed)

	res = g.Apply(model.Transaction{Remove: []string{"r1", "zorg"}})
	assert.Equal(t, []string{"r1"}, res.Removed)
	assert.Equal(t, []string{"r2"}, g.Rows().IDs())
	assert.Equal(t, 2, r.changed)

	res = g.Apply(model.Transaction{Remove: []string{"zorg"}})
	assert.Empty(t, res.Removed)
	assert.Equal(t, 2, r.changed)
}

func TestGridReplace(t *testing.T) {
	g, _ := newGrid()
	g.Apply(model.Transaction{Add: model1.Rows{makeRow("r1", "1", "a")}})

	next := makeRow("r1", "1", "z")
	require.True(t, g.Replace(next))
	row, ok := g.Row("r1")
	require.True(t, ok)
	assert.Equal(t, "z", row.Text("name"))

	assert.False(t, g.Replace(makeRow("r9", "9", "z")))
}

func TestGridSetSort(t *testing.T) {
	g, r := newGrid()
	g.Apply(model.Transaction{Add: model1.Rows{
		makeRow("r1", "1", "item10"),
		makeRow("r2", "2", "item2"),
		makeRow("r3", "3", "Item1"),
	}})

	s := model1.SortState{{Field: "name", Ascending: true}}
	g.SetSort(s)

	assert.Equal(t, []string{"r3", "r2", "r1"}, g.Rows().IDs())
	assert.Equal(t, s, g.SortState())
	require.Len(t, r.sorts, 1)
	assert.Equal(t, s, r.sorts[0])
	assert.Equal(t, [][]string{{model1.RowNumberCol}}, r.columns)

	g.SetSort(nil)
	assert.True(t, g.SortState().IsEmpty())
	assert.Len(t, r.sorts, 2)
}

func TestGridSortInsertionOrder(t *testing.T) {
	g, r := newGrid()
	g.Apply(model.Transaction{Add: model1.Rows{
		makeRow("r1", "1", "c"),
		makeRow("r2", "2", "a"),
		makeRow("r3", "3", "b"),
	}})

	g.SetSort(model1.SortState{{Field: "name", Ascending: true}})
	assert.Equal(t, []string{"r2", "r3", "r1"}, g.Rows().IDs())

	g.SetSort(nil)
	assert.Equal(t, []string{"r1", "r2", "r3"}, g.Rows().IDs())

	g.SetSort(model1.SortState{{Field: "name", Ascending: false}})
	assert.True(t, g.RevertSort())
	assert.Equal(t, []string{"r1", "r2", "r3"}, g.Rows().IDs())
	assert.True(t, g.SortState().IsEmpty())
	assert.Len(t, r.sorts, 4)
	assert.False(t, g.RevertSort())

	g.SetSort(model1.SortState{{Field: "name", Ascending: true}})
	g.Apply(model.Transaction{Add: model1.Rows{makeRow("r4", "4", "0")}})
	assert.False(t, g.RevertSort())
	assert.Equal(t, []string{"r2", "r3", "r1", "r4"}, g.Rows().IDs())
}

func TestGridViewport(t *testing.T) {
	g, _ := newGrid()
	g.Apply(model.Transaction{Add: model1.Rows{
		makeRow("r1", "1", "a"),
		makeRow("r2", "2", "b"),
		makeRow("r3", "3", "c"),
	}})

	assert.Len(t, g.Rendered(), 3)
	g.SetViewport(1, 5)
	assert.Equal(t, []string{"r2", "r3"}, g.Rendered().IDs())
	g.SetViewport(4, 1)
	assert.Empty(t, g.Rendered())
}

func TestGridRefresh(t *testing.T) {
	g, r := newGrid()
	g.Apply(model.Transaction{Add: model1.Rows{makeRow("r1", "1", "a")}})

	g.RefreshRows("r1")
	g.EnsureVisible("r1")
	g.EnsureVisible("nope")

	assert.Equal(t, [][]string{{"r1"}}, r.refreshed)
	assert.Equal(t, []string{"r1"}, r.visible)

	g.RemoveListener(r)
	g.RefreshRows("r1")
	assert.Len(t, r.refreshed, 1)
}
