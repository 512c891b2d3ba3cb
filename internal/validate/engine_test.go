package validate_test

import (
	"testing"

	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *validate.Engine {
	t.Helper()

	name, err := validate.Spec{Required: true, Max: 5}.Build("Name")
	require.NoError(t, err)
	phone, err := validate.Spec{Regex: `^[0-9-]+$`, Input: &validate.Input{Char: validate.CharNumeric}}.Build("Phone")
	require.NoError(t, err)

	return validate.NewEngine(validate.Schema{"name": name, "phone": phone})
}

func TestEngineValidateRow(t *testing.T) {
	e := newEngine(t)

	errs := e.ValidateRow("r1", model1.Fields{"name": "", "phone": "abc"}, []string{"name", "phone"})
	require.Len(t, errs, 2)
	first, ok := errs.First()
	assert.True(t, ok)
	assert.Equal(t, "name", first.Field)
	assert.Equal(t, "Name is required", first.Message)
	assert.Equal(t, "r1.name", first.Path())
	assert.Equal(t, "Phone has an invalid format", errs[1].Message)

	assert.Empty(t, e.ValidateRow("r1", model1.Fields{"name": "Fred", "phone": "555-1"}, []string{"name", "phone"}))
}

func TestEngineNormalize(t *testing.T) {
	e := newEngine(t)

	assert.Equal(t, "5551", e.Normalize("phone", "555x1"))
	assert.Equal(t, "x", e.Normalize("name", "x"))
	assert.Equal(t, 12, e.Normalize("phone", 12))
}

func TestSpecBadRegex(t *testing.T) {
	_, err := validate.Spec{Regex: "("}.Build("Bad")
	assert.Error(t, err)
}

func TestEngineValidateUnique(t *testing.T) {
	email, err := validate.Spec{Unique: true}.Build("Email")
	require.NoError(t, err)
	code, err := validate.Spec{Unique: true, Message: "{field} {first}/{second}"}.Build("Code")
	require.NoError(t, err)
	e := validate.NewEngine(validate.Schema{"email": email, "code": code, "name": {Title: "Name"}})

	row := func(id, email, code, name string) validate.RowValues {
		return validate.RowValues{RowID: id, Values: model1.Fields{"email": email, "code": code, "name": name}}
	}
	uu := map[string]struct {
		rows []validate.RowValues
		e    []string
	}{
		"empty": {},
		"distinct": {
			rows: []validate.RowValues{row("a", "a@x.io", "1", "Fred"), row("b", "b@x.io", "2", "Fred")},
		},
		"blanks": {
			rows: []validate.RowValues{row("a", "", "", "Fred"), row("b", "", "0", "Fred")},
		},
		"duplicate": {
			rows: []validate.RowValues{row("a", "a@x.io", "1", ""), row("b", "b@x.io", "2", ""), row("c", " A@X.io", "3", "")},
			e:    []string{"c.email:Email in row 3 duplicates row 1"},
		},
		"many": {
			rows: []validate.RowValues{row("a", "a@x.io", "1", ""), row("b", "a@x.io", "1", ""), row("c", "a@x.io", "2", "")},
			e: []string{
				"b.code:Code 1/2",
				"b.email:Email in row 2 duplicates row 1",
				"c.email:Email in row 3 duplicates row 1",
			},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var got []string
			for _, fe := range e.ValidateUnique(u.rows) {
				got = append(got, fe.Path()+":"+fe.Message)
			}
			assert.Equal(t, u.e, got)
		})
	}
}
