// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"
	"testing"

	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wI2L/jsondiff"
)

func TestColorizeValue(t *testing.T) {
	uu := map[string]struct {
		in, e string
	}{
		"true":   {in: "true", e: "[green::]true[-::]"},
		"false":  {in: "false", e: "[red::]false[-::]"},
		"null":   {in: "null", e: "[gray::]null[-::]"},
		"number": {in: "12.5", e: "[fuchsia::]12.5[-::]"},
		"plain":  {in: "Alice", e: "Alice"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, colorizeValue(u.in))
		})
	}
}

func TestHighlightYAML(t *testing.T) {
	out := highlightYAML("name: Alice\nqty: 2\n")

	assert.Equal(t, "[aqua::]name:[-::] Alice\n[aqua::]qty:[-::] [fuchsia::]2[-::]\n", out)
}

func TestFormatPatch(t *testing.T) {
	uu := map[string]struct {
		p jsondiff.Patch
		e string
	}{
		"none": {
			e: "[gray::]none[-::]\n",
		},
		"ops": {
			p: jsondiff.Patch{
				{Type: jsondiff.OperationReplace, Path: "/name", Value: "Bob"},
				{Type: jsondiff.OperationAdd, Path: "/qty", Value: 2},
				{Type: jsondiff.OperationRemove, Path: "/a~1b"},
			},
			e: "[yellow::]~ name[-::] Bob\n[green::]+ qty[-::] [fuchsia::]2[-::]\n[red::]- a/b[-::]\n",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, formatPatch(u.p))
		})
	}
}

func TestDiffInit(t *testing.T) {
	row := model1.NewRow("r1", model1.Record{Key: "k1", Fields: model1.Fields{"name": "Alice"}})
	row.Fields["name"] = "Bob"
	row.Status = model1.StatusModified

	d := NewDiff(nil, row, []string{"name"})
	require.NoError(t, d.Init(context.Background()))

	assert.Equal(t, "diff", d.Name())
	require.Len(t, d.patch, 1)
	assert.Equal(t, "/name", d.patch[0].Path)
	assert.Contains(t, d.generateYAML(), "[yellow::]~ name[-::] Bob")
	assert.Contains(t, d.generateJSON(), `"status": "modified"`)

	d.Start()
	assert.Equal(t, " modified/k1 [YAML] ", d.GetTitle())
}
