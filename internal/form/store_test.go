package form_test

import (
	"testing"

	"github.com/gridform/gridform/internal/form"
	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	store *form.Store
	seen  []int
}

func (r *recorder) StoreCleared() {
	r.seen = append(r.seen, r.store.Len())
}

func (r *recorder) StoreSeeded(n int) {
	r.seen = append(r.seen, n)
}

func seedRows() model1.Rows {
	return model1.Rows{
		model1.NewRow("r1", model1.Record{Key: "1", Fields: model1.Fields{"name": "A"}}),
		model1.NewRow("r2", model1.Record{Key: "2", Fields: model1.Fields{"name": "B"}}),
	}
}

func TestStoreResetClearsBeforeSeeding(t *testing.T) {
	s := form.NewStore()
	s.AddRow(model1.Row{ID: "old", Fields: model1.Fields{"name": "Z"}})
	r := recorder{store: s}
	s.AddListener(&r)

	s.Reset(seedRows())

	assert.Equal(t, []int{0, 2}, r.seen)
	assert.Equal(t, []string{"r1", "r2"}, s.IDs())
	assert.False(t, s.Has("old"))
}

func TestStoreCollectAll(t *testing.T) {
	s := form.NewStore("name")
	s.Reset(seedRows())

	all := s.CollectAll()
	require.Len(t, all, 2)
	assert.Equal(t, model1.Fields{"name": "A"}, all[0])
	assert.Equal(t, model1.Fields{"name": "B"}, all[1])
	for _, p := range all {
		assert.NotContains(t, p, "rowId")
		assert.NotContains(t, p, "key")
		assert.NotContains(t, p, "status")
	}
}

func TestStoreRegisterField(t *testing.T) {
	s := form.NewStore("name", "phone")
	s.Reset(seedRows())

	assert.True(t, s.RegisterField("r1", "phone", "555"))
	assert.True(t, s.RegisterField("r1", "phone", "666"))
	v, ok := s.Field("r1", "phone")
	assert.True(t, ok)
	assert.Equal(t, "555", v)

	assert.False(t, s.RegisterField("r1", "addBtn", ""))
	assert.False(t, s.RegisterField("nope", "phone", ""))
}

func TestStoreSetAndRemove(t *testing.T) {
	s := form.NewStore()
	s.Reset(seedRows())

	assert.True(t, s.SetField("r2", "name", "C"))
	assert.False(t, s.SetField("r9", "name", "C"))
	row, ok := s.Row("r2")
	assert.True(t, ok)
	assert.Equal(t, "C", row["name"])

	assert.True(t, s.RemoveRow("r1"))
	assert.False(t, s.RemoveRow("r1"))
	assert.Equal(t, []string{"r2"}, s.IDs())
}

func TestStoreAccepts(t *testing.T) {
	s := form.NewStore("name")
	s.Reset(seedRows())

	assert.True(t, s.Accepts("name"))
	assert.False(t, s.Accepts("phone"))
	assert.False(t, s.SetField("r1", "phone", "555"))
	assert.True(t, form.NewStore().Accepts("phone"))
}

func TestStoreRebaseline(t *testing.T) {
	s := form.NewStore()
	s.Reset(seedRows())
	s.SetField("r1", "name", "AA")

	b, _ := s.Baseline("r1")
	assert.Equal(t, "A", b["name"])

	s.Rebaseline()
	b, _ = s.Baseline("r1")
	assert.Equal(t, "AA", b["name"])
	assert.Equal(t, 2, s.Len())
}
