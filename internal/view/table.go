// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/gridform/gridform/internal/config"
	"github.com/gridform/gridform/internal/config/data"
	"github.com/gridform/gridform/internal/dao"
	"github.com/gridform/gridform/internal/gridform"
	"github.com/gridform/gridform/internal/logging"
	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/rowid"
	"github.com/gridform/gridform/internal/ui"
	"github.com/gridform/gridform/internal/validate"
	"github.com/spf13/cast"
)

// maxDialogErrors caps the failures listed after a rejected submit.
const maxDialogErrors = 8

// Table wraps ui.Table with an editable gridform table and its dataset.
type Table struct {
	*ui.Table

	app      *App
	spec     data.Table
	grid     *model.GridData
	table    *gridform.Table
	dataset  dao.Dataset
	engine   *validate.Engine
	editor   *ui.CellEditor
	status   *statusTracker
	readOnly bool
	timeout  time.Duration
	saved    []model1.Record
	log      *slog.Logger
	mx       sync.Mutex
}

// NewTable creates a table view over a dataset.
func NewTable(app *App, spec data.Table, ds dao.Dataset) (*Table, error) {
	schema, err := spec.Schema()
	if err != nil {
		return nil, err
	}
	timeout, err := app.config.Gridform.GetAPITimeout()
	if err != nil {
		return nil, err
	}

	t := Table{
		Table:    ui.NewTable(spec.Name),
		app:      app,
		spec:     spec,
		dataset:  ds,
		engine:   validate.NewEngine(schema),
		readOnly: app.config.Gridform.IsReadOnly(),
		timeout:  timeout,
		log:      logging.WithTable(app.log, spec.Name, "data", ds.Location()),
	}
	t.grid = model.NewGridData(spec.Header())
	t.table = gridform.New(gridform.TableConfig{
		Name:     spec.Name,
		Header:   spec.Header(),
		Defaults: spec.Defaults,
		Messages: messages(spec.Messages),
	}, gridform.Deps{
		Grid:        t.grid,
		IDs:         rowid.UUID{},
		Interaction: app.Prompter(),
		Validator:   t.engine,
		Focuser:     t.Table,
		Deleter:     ds,
		Logger:      t.log,
	})
	t.table.SetHooks(gridform.Hooks{
		OnSubmit:      t.save,
		OnGridChanged: t.cellChanged,
		OnDeleted:     t.rowDeleted,
		OnSort:        t.sorted,
	})
	t.status = &statusTracker{t: &t}

	return &t, nil
}

// Init initializes the table view.
func (t *Table) Init(ctx context.Context) error {
	if err := t.Table.Init(ctx); err != nil {
		return err
	}
	t.SetQueue(t.app.QueueUpdateDraw)
	t.grid.AddListener(t.Table)
	t.grid.AddListener(t.status)
	t.SetSource(t.grid)
	t.editor = ui.NewCellEditor(t.app.Content)
	t.bindKeys(t.app.Keys())

	return nil
}

// Start begins the table lifecycle.
func (t *Table) Start() {}

// Stop ends the table lifecycle.
func (t *Table) Stop() {}

// Close detaches the table from its grid.
func (t *Table) Close() {
	t.grid.RemoveListener(t.Table)
	t.grid.RemoveListener(t.status)
	t.table.Close()
}

// Model returns the editable table.
func (t *Table) Model() *gridform.Table {
	return t.table
}

// Dirty returns true if the table holds unsaved changes.
func (t *Table) Dirty() bool {
	return t.table.Dirty()
}

// Load replaces the table content with the dataset records.
func (t *Table) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	rr, err := t.dataset.Load(ctx)
	if err != nil {
		return err
	}
	if err := t.table.SetData(ctx, rr); err != nil {
		return err
	}
	t.SetErrors(nil)
	t.log.Info("Table loaded", "rows", len(rr))

	return nil
}

// bindKeys binds the configured keys to table actions.
func (t *Table) bindKeys(kb *config.KeyBindings) {
	aa := map[config.Action]ui.KeyAction{
		config.ActionSort:   ui.NewKeyAction("Sort", t.sortCmd, true),
		config.ActionReload: ui.NewKeyAction("Reload", t.reloadCmd, true),
		config.ActionDiff:   ui.NewKeyAction("Diff", t.diffCmd, true),
	}
	if !t.readOnly {
		aa[config.ActionAppend] = ui.NewKeyAction("Append", t.appendCmd, true)
		aa[config.ActionRemove] = ui.NewKeyAction("Remove", t.removeCmd, true)
		aa[config.ActionEdit] = ui.NewKeyAction("Edit", t.editCmd, true)
		aa[config.ActionEditRow] = ui.NewKeyAction("Edit Row", t.editRowCmd, true)
		aa[config.ActionSubmit] = ui.NewKeyAction("Submit", t.submitCmd, true)
	}

	for a, ka := range aa {
		k, err := ui.ParseKey(kb.Get(a))
		if err != nil {
			t.log.Warn("Skipping key binding", "action", a, "error", err)
			continue
		}
		t.Actions().Add(k, ka)
	}
}

func (t *Table) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(t.app.ctx, t.timeout)
}

func (t *Table) appendCmd(*tcell.EventKey) *tcell.EventKey {
	t.Append()
	return nil
}

// Append adds a row and moves the cursor to it.
func (t *Table) Append() {
	ctx, cancel := t.opContext()
	defer cancel()

	id, err := t.table.Append(ctx)
	if err != nil {
		t.flashErr(err)
		return
	}
	if ff := t.table.Grid().Header().FieldNames(); len(ff) > 0 && id != "" {
		t.Focus(id, ff[0])
	}
}

func (t *Table) removeCmd(*tcell.EventKey) *tcell.EventKey {
	id := t.SelectedRowID()
	if id == "" {
		return nil
	}
	go t.remove(id)

	return nil
}

func (t *Table) remove(id string) {
	ctx, cancel := context.WithCancel(t.app.ctx)
	defer cancel()

	err := t.table.Remove(ctx, id)
	switch {
	case err == nil, errors.Is(err, gridform.ErrDeleteFailed):
	case errors.Is(err, gridform.ErrNotRemovable):
		t.app.Flash().Warn("This row cannot be removed.")
	default:
		t.flashErr(err)
	}
}

func (t *Table) flashErr(err error) {
	if errors.Is(err, gridform.ErrBusy) {
		t.app.Flash().Warn("Another save or delete is in progress.")
		return
	}
	t.app.Flash().Err(err)
}

func (t *Table) editCmd(*tcell.EventKey) *tcell.EventKey {
	id, field := t.SelectedRowID(), t.SelectedField()
	if id == "" || field == "" {
		return nil
	}
	col, _ := t.table.Grid().Header().Column(field)
	if col.ReadOnly {
		t.app.Flash().Warnf("%s is read only.", col.Label())
		return nil
	}

	v, _ := t.table.Store().Field(id, field)
	t.editor.Edit(col.Label(), cast.ToString(v), func(text string) {
		t.app.SetFocus(t.app.Content)
		t.EditCell(id, field, text)
	}, func() {
		t.app.SetFocus(t.app.Content)
	})
	t.app.SetFocus(t.editor.Input())

	return nil
}

// EditCell writes one cell and reports its validation message.
func (t *Table) EditCell(id, field string, value any) {
	ctx, cancel := t.opContext()
	defer cancel()

	if err := t.table.Edit(ctx, id, field, value); err != nil {
		t.flashErr(err)
		return
	}
	v, _ := t.table.Store().Field(id, field)
	if fe := t.engine.Validate(id, field, v); fe != nil {
		t.app.Flash().Warn(fe.Message)
	}
}

func (t *Table) editRowCmd(*tcell.EventKey) *tcell.EventKey {
	id := t.SelectedRowID()
	if id == "" {
		return nil
	}
	n, err := EditRow(t.app.ctx, t.app.Application, t, id)
	switch {
	case errors.Is(err, ErrEditorCancelled), errors.Is(err, ErrNoChanges):
		t.app.Flash().Info(err.Error())
	case err != nil:
		t.app.Flash().Err(err)
	default:
		t.app.Flash().Infof("%d field(s) updated.", n)
	}

	return nil
}

func (t *Table) sortCmd(*tcell.EventKey) *tcell.EventKey {
	field := t.SelectedField()
	if field == "" {
		return nil
	}
	t.SortBy(field)

	return nil
}

// SortBy cycles the sort direction of a column.
func (t *Table) SortBy(field string) {
	ctx, cancel := t.opContext()
	defer cancel()

	if err := t.table.SortBy(ctx, field); err != nil && !errors.Is(err, gridform.ErrSortRejected) {
		t.app.Flash().Err(err)
	}
}

func (t *Table) submitCmd(*tcell.EventKey) *tcell.EventKey {
	go t.Submit()
	return nil
}

// Submit validates and saves the table. The cursor stays on the selected
// record once the saved rows are reloaded.
func (t *Table) Submit() {
	ctx, cancel := t.opContext()
	defer cancel()

	var key string
	field := t.SelectedField()
	if r, ok := t.table.Row(t.SelectedRowID()); ok {
		key = r.Key
	}

	err := t.table.Submit(ctx)
	var errs validate.Errors
	switch {
	case errors.As(err, &errs):
		t.SetErrors(errs)
		t.app.QueueUpdateDraw(func() {
			d := ui.ErrorsDialog(t.app.Content, errs, maxDialogErrors)
			d.SetDoneCallback(func() { t.app.SetFocus(t.app.Content) })
			d.Show()
			t.app.SetFocus(d)
		})
	case errors.Is(err, gridform.ErrBusy):
		t.app.Flash().Warn("A submit is already in progress.")
	case err != nil:
		t.log.Error("Submit failed", "error", err)
	default:
		t.SetErrors(nil)
		saved := t.takeSaved()
		if id := t.rowIDByKey(key); id != "" {
			t.Focus(id, field)
		}
		t.app.Flash().Infof("Saved %d rows to %s", len(saved), t.dataset.Location())
	}
}

func (t *Table) rowIDByKey(key string) string {
	if key == "" {
		return ""
	}
	for _, r := range t.table.Rows() {
		if r.Key == key {
			return r.ID
		}
	}
	return ""
}

func (t *Table) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	go t.Reload()
	return nil
}

// Reload reads the dataset again. Unsaved changes need a confirmation.
func (t *Table) Reload() {
	if t.Dirty() && !t.app.Prompter().Confirm(t.app.ctx, "Discard unsaved changes?") {
		return
	}
	if err := t.Load(t.app.ctx); err != nil {
		t.app.Flash().Errf("Reload failed: %v", err)
		return
	}
	t.app.Flash().Info("Reloaded.")
}

func (t *Table) diffCmd(*tcell.EventKey) *tcell.EventKey {
	t.ShowDiff(t.SelectedRowID())
	return nil
}

// ShowDiff pushes the change view of a row.
func (t *Table) ShowDiff(id string) {
	row, ok := t.table.Row(id)
	if !ok {
		return
	}
	d := NewDiff(t.app, row, t.spec.Header().FieldNames())
	if err := d.Init(t.app.ctx); err != nil {
		t.app.Flash().Err(err)
		return
	}
	t.app.Content.Push(d)
	t.app.SetFocus(t.app.Content)
}

// save writes the form values back to the dataset and reloads the table
// with the saved records. New rows are saved without a key and receive one
// from the dataset. Fields without a column are carried over from the
// loaded row.
func (t *Table) save(ctx context.Context, _ []model1.Fields) error {
	ee := t.table.Store().Entries()
	rr := make([]model1.Record, 0, len(ee))
	for _, e := range ee {
		rec := model1.Record{Key: e.Key, Fields: e.Values}
		if row, ok := t.table.Row(e.RowID); ok {
			rec.Fields = row.Fields.Clone()
			for k, v := range e.Values {
				rec.Fields[k] = v
			}
			rec.Removable = row.Removable
		}
		rr = append(rr, rec)
	}

	saved, err := t.dataset.Save(ctx, rr)
	if err != nil {
		return fmt.Errorf("save %s: %w", t.dataset.Location(), err)
	}
	if err := t.table.SetData(ctx, saved); err != nil {
		return err
	}
	t.mx.Lock()
	t.saved = saved
	t.mx.Unlock()

	return nil
}

func (t *Table) takeSaved() []model1.Record {
	t.mx.Lock()
	defer t.mx.Unlock()
	rr := t.saved
	t.saved = nil
	return rr
}

// cellChanged re-validates the table while failures are highlighted.
func (t *Table) cellChanged(context.Context, model1.Row) {
	if !t.HasErrors() {
		return
	}
	fields := t.spec.Header().FieldNames()
	var errs validate.Errors
	ee := t.table.Store().Entries()
	rows := make([]validate.RowValues, 0, len(ee))
	for _, r := range t.table.Rows() {
		if f, ok := t.table.Store().Row(r.ID); ok {
			rows = append(rows, validate.RowValues{RowID: r.ID, Values: f})
		}
	}
	for _, e := range ee {
		errs = append(errs, t.engine.ValidateRow(e.RowID, e.Values, fields)...)
	}
	errs = append(errs, t.engine.ValidateUnique(rows)...)
	t.SetErrors(errs)
}

func (t *Table) rowDeleted(_ context.Context, key string, row model1.Row) {
	t.log.Info("Row removed", "key", key, "row", row.ID)
}

func (t *Table) sorted(_ context.Context, state model1.SortState) {
	t.log.Debug("Table sorted", "state", state)
}

func (t *Table) refreshStatus() {
	rr := t.table.Rows()
	var dirty int
	for _, r := range rr {
		if r.Status.IsDirty() {
			dirty++
		}
	}
	t.app.SetStatus(t.spec.Name, len(rr), dirty)
}

func messages(m data.Messages) gridform.Messages {
	return gridform.Messages{
		SortBlocked:   m.SortBlocked,
		ConfirmDelete: m.ConfirmDelete,
		DeleteFailed:  m.DeleteFailed,
		Deleted:       m.Deleted,
	}
}

// statusTracker keeps the status line in sync with the grid.
type statusTracker struct {
	t *Table
}

func (s *statusTracker) GridChanged(*model1.TableData) { s.t.refreshStatus() }
func (s *statusTracker) GridRowsRefreshed([]string)    { s.t.refreshStatus() }
func (s *statusTracker) GridColumnsRefreshed([]string) {}
func (s *statusTracker) GridRowVisible(string)         {}
