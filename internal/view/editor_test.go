// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRowEditor struct {
	calls []string
	fail  string
}

func (f *fakeRowEditor) Edit(_ context.Context, rowID, field string, value any) error {
	if field == f.fail {
		return errors.New("boom")
	}
	f.calls = append(f.calls, fmt.Sprintf("%s.%s=%v", rowID, field, value))
	return nil
}

func TestNewEditSession(t *testing.T) {
	s := NewEditSession("r1", []string{"name"}, model1.Fields{"name": "Alice", "id": 7})

	assert.Equal(t, model1.Fields{"name": "Alice"}, s.Original)
}

func TestMarshalRow(t *testing.T) {
	bb, err := MarshalRow([]string{"name", "qty", "note"}, model1.Fields{"qty": 2, "name": "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "name: Alice\nqty: 2\nnote: null\n", string(bb))
}

func TestParseRow(t *testing.T) {
	uu := map[string]struct {
		in  string
		e   model1.Fields
		err bool
	}{
		"empty": {
			e: model1.Fields{},
		},
		"values": {
			in: "# ERROR: bad\nname: Bob\nqty: 3\n",
			e:  model1.Fields{"name": "Bob", "qty": 3},
		},
		"invalid": {
			in:  "name: [",
			err: true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			ff, err := ParseRow([]byte(u.in))
			if u.err {
				assert.ErrorIs(t, err, ErrInvalidYAML)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.e, ff)
		})
	}
}

func TestEditSessionChanges(t *testing.T) {
	fields := []string{"name", "qty"}
	orig := model1.Fields{"name": "Alice", "qty": 1}

	uu := map[string]struct {
		modified model1.Fields
		e        model1.Fields
		err      error
		unknown  bool
	}{
		"same": {
			modified: model1.Fields{"name": "Alice", "qty": 1},
			err:      ErrNoChanges,
		},
		"loose": {
			modified: model1.Fields{"name": "Alice", "qty": "1"},
			err:      ErrNoChanges,
		},
		"name": {
			modified: model1.Fields{"name": "Bob", "qty": 1},
			e:        model1.Fields{"name": "Bob"},
		},
		"stringKept": {
			modified: model1.Fields{"name": 42, "qty": 1},
			e:        model1.Fields{"name": "42"},
		},
		"cleared": {
			modified: model1.Fields{"qty": 1},
			e:        model1.Fields{"name": ""},
		},
		"unknown": {
			modified: model1.Fields{"name": "Alice", "qty": 1, "extra": true},
			unknown:  true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s := NewEditSession("r1", fields, orig)
			cc, err := s.Changes(u.modified)
			switch {
			case u.err != nil:
				assert.ErrorIs(t, err, u.err)
			case u.unknown:
				assert.ErrorContains(t, err, "unknown field")
			default:
				require.NoError(t, err)
				assert.Equal(t, u.e, cc)
			}
		})
	}
}

func TestEditSessionApply(t *testing.T) {
	s := NewEditSession("r1", []string{"name", "qty"}, model1.Fields{"name": "Alice", "qty": 1})
	w := fakeRowEditor{}

	require.NoError(t, s.Apply(context.Background(), &w, model1.Fields{"qty": 2, "name": "Bob"}))
	assert.Equal(t, []string{"r1.name=Bob", "r1.qty=2"}, w.calls)
	assert.Equal(t, model1.Fields{"name": "Bob", "qty": 2}, s.Original)

	w = fakeRowEditor{fail: "qty"}
	err := s.Apply(context.Background(), &w, model1.Fields{"qty": 3})
	assert.ErrorContains(t, err, "qty: boom")
}

func TestEditSessionCleanup(t *testing.T) {
	s := NewEditSession("r1", nil, nil)
	s.Cleanup()

	assert.Empty(t, s.TempFile)
}
