package model1_test

import (
	"testing"

	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
)

func TestSortRows(t *testing.T) {
	rows := model1.Rows{
		{ID: "a", Fields: model1.Fields{"name": "node10", "age": 3}},
		{ID: "b", Fields: model1.Fields{"name": "node2", "age": "12"}},
		{ID: "c", Fields: model1.Fields{"name": "Node1", "age": 3}},
	}

	model1.SortRows(rows, model1.SortState{{Field: "name", Ascending: true}})
	assert.Equal(t, []string{"c", "b", "a"}, rows.IDs())

	model1.SortRows(rows, model1.SortState{{Field: "age", Ascending: false}, {Field: "name", Ascending: true}})
	assert.Equal(t, []string{"b", "c", "a"}, rows.IDs())
}

func TestSortStateToggle(t *testing.T) {
	var s model1.SortState

	s = s.Toggle("name")
	assert.Equal(t, model1.SortState{{Field: "name", Ascending: true}}, s)
	s = s.Toggle("name")
	assert.Equal(t, model1.SortState{{Field: "name", Ascending: false}}, s)
	s = s.Toggle("name")
	assert.True(t, s.IsEmpty())
	assert.True(t, s.Equal(model1.SortState{}))
}
