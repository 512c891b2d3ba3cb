// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

// Package gridform keeps an editable display grid and its form-value store
// in sync: row identity, row status, sort guarding and submission.
package gridform

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/validate"
)

var (
	// ErrBusy is returned when the same remove or submit is already in flight,
	// and for row changes made while a submit runs.
	ErrBusy = errors.New("operation already in progress")

	// ErrDeleteFailed is returned when the delete call reported a failure.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrNotRemovable is returned for rows that opted out of removal.
	ErrNotRemovable = errors.New("row is not removable")

	// ErrSortRejected is returned when a sort is refused because of unsaved rows.
	ErrSortRejected = errors.New("sort rejected while unsaved rows exist")

	// ErrReadOnly is returned when editing a read-only column.
	ErrReadOnly = errors.New("column is read-only")

	// ErrUnknownField is returned when editing a field that is not a form field.
	ErrUnknownField = errors.New("unknown field")

	errNoDeleter   = errors.New("no delete function configured")
	errEmptyResult = errors.New("delete returned an empty result")
)

// Interaction asks the user something or tells the user something.
type Interaction interface {
	// Confirm blocks until the user answers.
	Confirm(ctx context.Context, msg string) bool

	// Notify surfaces a message the user must see.
	Notify(ctx context.Context, msg string)
}

// Focuser moves input focus to a cell.
type Focuser interface {
	Focus(rowID, field string)
}

// Validator validates the values of one row.
type Validator interface {
	ValidateRow(rowID string, values model1.Fields, order []string) validate.Errors
}

// UniqueValidator checks rules that span rows. Rows come in display order.
type UniqueValidator interface {
	ValidateUnique(rows []validate.RowValues) validate.Errors
}

// Normalizer cleans a raw input value before it is stored.
type Normalizer interface {
	Normalize(field string, v any) any
}

// Deleter deletes persisted rows by business key. An empty result string
// means the delete failed.
type Deleter interface {
	Delete(ctx context.Context, keys []string) (string, error)
}

// DeleteFunc adapts a function to a Deleter.
type DeleteFunc func(ctx context.Context, keys []string) (string, error)

// Delete calls f.
func (f DeleteFunc) Delete(ctx context.Context, keys []string) (string, error) {
	return f(ctx, keys)
}

// Hooks are the host callbacks of a table. Any of them may be nil.
type Hooks struct {
	// CustomAdd replaces the inline append.
	CustomAdd func(ctx context.Context) error

	// CustomDelete takes precedence over the table Deleter.
	CustomDelete func(ctx context.Context, keys []string, rows model1.Rows) (string, error)

	// OnDeleted fires once a row left the table. Local rows report an empty key.
	OnDeleted func(ctx context.Context, key string, row model1.Row)

	// OnGridChanged fires after every cell edit.
	OnGridChanged func(ctx context.Context, row model1.Row)

	// OnSort receives every accepted sort state.
	OnSort func(ctx context.Context, state model1.SortState)

	// OnSubmit receives the validated form values in row order.
	OnSubmit func(ctx context.Context, payload []model1.Fields) error
}

// Messages holds the user facing texts. {key} and {keys} are replaced in
// ConfirmDelete.
type Messages struct {
	SortBlocked   string
	ConfirmDelete string
	DeleteFailed  string
	Deleted       string
}

// DefaultMessages returns the stock user messages.
func DefaultMessages() Messages {
	return Messages{
		SortBlocked:   "Sorting is unavailable while the table has new or modified rows.",
		ConfirmDelete: "Delete {keys}?",
		DeleteFailed:  "Delete failed.",
		Deleted:       "Deleted.",
	}
}

// Merge fills blank messages from m2.
func (m Messages) Merge(m2 Messages) Messages {
	if m.SortBlocked == "" {
		m.SortBlocked = m2.SortBlocked
	}
	if m.ConfirmDelete == "" {
		m.ConfirmDelete = m2.ConfirmDelete
	}
	if m.DeleteFailed == "" {
		m.DeleteFailed = m2.DeleteFailed
	}
	if m.Deleted == "" {
		m.Deleted = m2.Deleted
	}
	return m
}

func (m Messages) confirmDelete(keys []string) string {
	msg := strings.ReplaceAll(m.ConfirmDelete, "{keys}", strings.Join(keys, ", "))
	if len(keys) > 0 {
		msg = strings.ReplaceAll(msg, "{key}", keys[0])
	}
	return msg
}

// Dirtier reports unsaved changes.
type Dirtier interface {
	Dirty() bool
}

// AnyDirty returns true if any of the given tables holds unsaved rows.
func AnyDirty(tt ...Dirtier) bool {
	for _, t := range tt {
		if t != nil && t.Dirty() {
			return true
		}
	}
	return false
}

// hasDirty returns true if any row is not unchanged.
func hasDirty(rows model1.Rows) bool {
	for _, r := range rows {
		if r.Status.IsDirty() {
			return true
		}
	}
	return false
}

type silentInteraction struct {
	log *slog.Logger
}

func (s silentInteraction) Confirm(_ context.Context, msg string) bool {
	s.log.Warn("confirm declined, no interaction configured", "message", msg)
	return false
}

func (s silentInteraction) Notify(_ context.Context, msg string) {
	s.log.Info("notify", "message", msg)
}
