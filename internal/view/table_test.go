// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"
	"testing"

	"github.com/gridform/gridform/internal/config"
	"github.com/gridform/gridform/internal/config/data"
	"github.com/gridform/gridform/internal/dao"
	"github.com/gridform/gridform/internal/logging"
	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, ds dao.Dataset) *Table {
	app := NewApp(config.NewConfig(), nil, "test", logging.Discard())
	tv, err := NewTable(app, data.DefaultTable(), ds)
	require.NoError(t, err)
	require.NoError(t, tv.Init(context.Background()))
	t.Cleanup(tv.Close)

	return tv
}

func TestMessages(t *testing.T) {
	m := messages(data.Messages{SortBlocked: "save first", Deleted: "gone"})

	assert.Equal(t, "save first", m.SortBlocked)
	assert.Equal(t, "gone", m.Deleted)
	assert.Empty(t, m.ConfirmDelete)
}

func TestTableEditSubmit(t *testing.T) {
	ds := dao.NewMemory("people", dao.SampleRecords())
	tv := newTestTable(t, ds)

	require.NoError(t, tv.Load(context.Background()))
	rr := tv.Model().Rows()
	require.Len(t, rr, 4)
	assert.False(t, tv.Dirty())

	row := rr[0]
	tv.EditCell(row.ID, "name", "Ada King")
	v, ok := tv.Model().Store().Field(row.ID, "name")
	require.True(t, ok)
	assert.Equal(t, "Ada King", v)
	assert.True(t, tv.Dirty())
	st, _ := tv.Model().Status(row.ID)
	assert.Equal(t, model1.StatusModified, st)

	tv.Submit()
	assert.False(t, tv.Dirty())

	saved, err := ds.Load(context.Background())
	require.NoError(t, err)
	var names []any
	for _, r := range saved {
		if r.Key == row.Key {
			names = append(names, r.Fields["name"])
		}
	}
	assert.Equal(t, []any{"Ada King"}, names)
}

func TestTableSubmitKeepsUndeclaredFields(t *testing.T) {
	rr := dao.SampleRecords()
	rr[1].Fields["note"] = "keep me"
	ds := dao.NewMemory("people", rr)
	tv := newTestTable(t, ds)
	require.NoError(t, tv.Load(context.Background()))

	var id string
	for _, r := range tv.Model().Rows() {
		if r.Key == "2" {
			id = r.ID
		}
	}
	require.NotEmpty(t, id)
	tv.EditCell(id, "name", "Grace Brewster Hopper")
	tv.Submit()
	require.False(t, tv.Dirty())

	reloaded := tv.rowIDByKey("2")
	require.NotEmpty(t, reloaded)
	assert.NotEqual(t, id, reloaded)
	assert.Empty(t, tv.rowIDByKey(""))

	saved, err := ds.Load(context.Background())
	require.NoError(t, err)
	for _, r := range saved {
		if r.Key == "2" {
			assert.Equal(t, "keep me", r.Fields["note"])
			assert.Equal(t, "Grace Brewster Hopper", r.Fields["name"])
			return
		}
	}
	assert.Fail(t, "record 2 not saved")
}

func TestTableSubmitInvalid(t *testing.T) {
	tv := newTestTable(t, dao.NewMemory("people", dao.SampleRecords()))
	require.NoError(t, tv.Load(context.Background()))

	tv.Append()
	assert.True(t, tv.Dirty())

	tv.Submit()
	assert.True(t, tv.Dirty())
	assert.True(t, tv.HasErrors())
}
