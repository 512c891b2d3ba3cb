// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package gridform

import (
	"context"
	"log/slog"

	"github.com/gridform/gridform/internal/form"
	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/rowid"
	"github.com/gridform/gridform/internal/validate"
)

// TableConfig describes a table.
type TableConfig struct {
	Name     string
	Header   model1.Header
	Defaults model1.Fields
	Messages Messages
}

// Deps are the table collaborators. Nil members fall back to defaults.
type Deps struct {
	Grid        model.Grid
	IDs         rowid.Allocator
	Interaction Interaction
	Validator   Validator
	Focuser     Focuser
	Deleter     Deleter
	Logger      *slog.Logger
}

// Table is an editable grid bound to a form store.
type Table struct {
	name      string
	grid      model.Grid
	store     *form.Store
	bridge    *Bridge
	guard     *SortGuard
	submitter *Submitter
	log       *slog.Logger
}

// New returns a new table.
func New(cfg TableConfig, deps Deps) *Table {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("table", cfg.Name)

	g := deps.Grid
	if g == nil {
		g = model.NewGridData(cfg.Header)
	}
	fields := cfg.Header.FieldNames()
	store := form.NewStore(fields...)
	store.SetLogger(log.With("component", "form"))
	msgs := cfg.Messages.Merge(DefaultMessages())

	b := NewBridge(g, store, deps.IDs, deps.Interaction, Options{
		Defaults: cfg.Defaults,
		Messages: msgs,
		Logger:   log,
	})
	b.SetDeleter(deps.Deleter)
	if n, ok := deps.Validator.(Normalizer); ok {
		b.SetNormalizer(n)
	}

	sub := NewSubmitter(g, store, deps.Validator, deps.Interaction, fields, log)
	sub.SetFocuser(deps.Focuser)

	return &Table{
		name:      cfg.Name,
		grid:      g,
		store:     store,
		bridge:    b,
		guard:     NewSortGuard(g, deps.Interaction, msgs.SortBlocked, log),
		submitter: sub,
		log:       log,
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Close detaches the table from its grid.
func (t *Table) Close() {
	t.guard.Close()
}

// Grid returns the display grid.
func (t *Table) Grid() model.Grid {
	return t.grid
}

// Store returns the form store.
func (t *Table) Store() *form.Store {
	return t.store
}

// SetHooks re-points every host callback.
func (t *Table) SetHooks(h Hooks) {
	t.bridge.SetHooks(h)
	t.guard.SetHooks(h)
	t.submitter.SetHooks(h)
}

// SetFocuser sets the cell focus target used on validation failures.
func (t *Table) SetFocuser(f Focuser) {
	t.submitter.SetFocuser(f)
}

// SetDeleter sets the delete caller.
func (t *Table) SetDeleter(d Deleter) {
	t.bridge.SetDeleter(d)
}

// SetData replaces the table content with a new record snapshot.
func (t *Table) SetData(ctx context.Context, records []model1.Record) error {
	return t.bridge.Seed(ctx, records)
}

// Append adds a new row.
func (t *Table) Append(ctx context.Context) (string, error) {
	if err := t.idle(); err != nil {
		return "", err
	}
	return t.bridge.Append(ctx)
}

// AppendMany adds one new row per field set in a single grid transaction.
func (t *Table) AppendMany(ctx context.Context, rows []model1.Fields) ([]string, error) {
	if err := t.idle(); err != nil {
		return nil, err
	}
	return t.bridge.AppendMany(ctx, rows)
}

// Remove removes a row.
func (t *Table) Remove(ctx context.Context, rowID string) error {
	if err := t.idle(); err != nil {
		return err
	}
	return t.bridge.Remove(ctx, rowID)
}

// RemoveMany removes several rows.
func (t *Table) RemoveMany(ctx context.Context, rowIDs []string) error {
	if err := t.idle(); err != nil {
		return err
	}
	return t.bridge.RemoveMany(ctx, rowIDs)
}

// Edit sets a cell value.
func (t *Table) Edit(ctx context.Context, rowID, field string, value any) error {
	if err := t.idle(); err != nil {
		return err
	}
	return t.bridge.Edit(ctx, rowID, field, value)
}

// Touch flags a row modified from a custom editor.
func (t *Table) Touch(ctx context.Context, rowID, field string) error {
	if err := t.idle(); err != nil {
		return err
	}
	return t.bridge.Touch(ctx, rowID, field)
}

// idle refuses row changes while a submit runs.
func (t *Table) idle() error {
	if t.submitter.Busy() {
		return ErrBusy
	}
	return nil
}

// Sort requests a sort state.
func (t *Table) Sort(ctx context.Context, state model1.SortState) error {
	return t.guard.Request(ctx, state)
}

// SortBy cycles the sort direction of one column.
func (t *Table) SortBy(ctx context.Context, field string) error {
	if !t.grid.Header().IsSortable(field) {
		t.log.Debug("column not sortable", "field", field)
		return nil
	}
	return t.Sort(ctx, t.grid.SortState().Toggle(field))
}

// SortBaseline returns the last accepted sort state.
func (t *Table) SortBaseline() model1.SortState {
	return t.guard.Baseline()
}

// Submit validates and submits the form values. Edits, appends and removes
// fail with ErrBusy until it returns.
func (t *Table) Submit(ctx context.Context) error {
	return t.submitter.Submit(ctx)
}

// LastErrors returns the validation errors of the last submit.
func (t *Table) LastErrors() validate.Errors {
	return t.submitter.LastErrors()
}

// Rows returns the grid rows in display order.
func (t *Table) Rows() model1.Rows {
	return t.grid.Rows()
}

// Row returns a row by identity.
func (t *Table) Row(rowID string) (model1.Row, bool) {
	return t.bridge.Row(rowID)
}

// Status returns a row status.
func (t *Table) Status(rowID string) (model1.Status, bool) {
	r, ok := t.grid.Row(rowID)
	if !ok {
		return 0, false
	}
	return r.Status, true
}

// Dirty returns true if any rendered row holds unsaved changes.
func (t *Table) Dirty() bool {
	return t.bridge.Dirty()
}
