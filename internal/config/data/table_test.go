package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gridform/gridform/internal/config/data"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableValidate(t *testing.T) {
	uu := map[string]struct {
		t   data.Table
		err bool
	}{
		"ok": {
			t: data.DefaultTable(),
		},
		"noName": {
			t:   data.Table{Columns: []data.Column{{Name: "a"}}},
			err: true,
		},
		"noColumns": {
			t:   data.Table{Name: "t"},
			err: true,
		},
		"dupColumn": {
			t:   data.Table{Name: "t", Columns: []data.Column{{Name: "a"}, {Name: "a"}}},
			err: true,
		},
		"reserved": {
			t:   data.Table{Name: "t", Columns: []data.Column{{Name: model1.RowNumberCol}}},
			err: true,
		},
		"badAlign": {
			t:   data.Table{Name: "t", Columns: []data.Column{{Name: "a", Align: "middle"}}},
			err: true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			err := u.t.Validate()
			if u.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTableHeader(t *testing.T) {
	h := data.DefaultTable().Header()

	assert.True(t, h.HasRowNumber())
	assert.Equal(t, []string{"name", "phone", "email", "age"}, h.FieldNames())
	assert.False(t, h.IsSortable(model1.RowNumberCol))
	assert.True(t, h.IsSortable("name"))
	col, ok := h.Column("name")
	require.True(t, ok)
	assert.Equal(t, "Name", col.Label())
	assert.Equal(t, 24, col.Width)
}

func TestTableSchema(t *testing.T) {
	s, err := data.DefaultTable().Schema()
	require.NoError(t, err)

	e := validate.NewEngine(s)
	errs := e.ValidateRow("r1", model1.Fields{"name": "", "phone": "12a", "email": "nope", "age": 0}, []string{"name", "phone", "email", "age"})
	require.Len(t, errs, 4)
	assert.Equal(t, "Name is required", errs[0].Message)
	assert.Equal(t, "12", e.Normalize("phone", "1 2a"))

	bad := data.Table{Name: "t", Columns: []data.Column{{Name: "a", Rules: &validate.Spec{Regex: "("}}}}
	_, err = bad.Schema()
	assert.Error(t, err)
}

const tableYAML = `name: orders
rowNumbers: true
columns:
  - name: sku
    title: SKU
    rules:
      required: true
      unique: true
      pattern: [UPPER-ALPHABET, NUMBER]
  - name: qty
    align: right
    rules:
      positive: true
defaults:
  sku: ""
  qty: 1
messages:
  sortBlocked: save first
`

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tableYAML), 0600))

	tbl, err := data.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", tbl.Name)
	assert.Len(t, tbl.Columns, 2)
	assert.Equal(t, 1, tbl.Defaults["qty"])
	assert.Equal(t, "save first", tbl.Messages.SortBlocked)
	assert.Equal(t, []validate.PatternType{validate.PatternUpper, validate.PatternNumber}, tbl.Columns[0].Rules.Pattern)
	assert.True(t, tbl.Columns[0].Rules.Unique)
	assert.False(t, tbl.Columns[1].Rules.Unique)

	_, err = data.LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestStatusStyleApply(t *testing.T) {
	label, color := model1.StatusLabels[model1.StatusCreated], model1.AddColor
	t.Cleanup(func() {
		model1.StatusLabels[model1.StatusCreated], model1.AddColor = label, color
	})

	s := data.StatusStyle{
		Labels: map[string]string{"created": "NEW"},
		Colors: map[string]string{"new": "green"},
	}
	require.NoError(t, s.Apply())
	assert.Equal(t, "NEW", model1.StatusLabel(model1.StatusCreated))
	assert.Equal(t, tcell.ColorGreen, model1.StatusColor(model1.StatusCreated))

	assert.Error(t, data.StatusStyle{Labels: map[string]string{"zorg": "x"}}.Apply())
	assert.Error(t, data.StatusStyle{Colors: map[string]string{"modified": "nocolor"}}.Apply())
}
