// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package gridform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gridform/gridform/internal/form"
	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/rowid"
)

// Options configures a bridge.
type Options struct {
	Defaults model1.Fields
	Messages Messages
	Logger   *slog.Logger
}

// Bridge applies structural changes and edits to both the grid and the
// form store so that each grid row has exactly one store entry.
type Bridge struct {
	grid       model.Grid
	store      *form.Store
	ids        rowid.Allocator
	ui         Interaction
	deleter    Deleter
	normalizer Normalizer
	opts       Options
	hooks      Hooks
	deleting   map[string]struct{}
	log        *slog.Logger
	mx         sync.RWMutex
}

// NewBridge returns a new bridge.
func NewBridge(g model.Grid, s *form.Store, ids rowid.Allocator, ui Interaction, opts Options) *Bridge {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if ids == nil {
		ids = rowid.UUID{}
	}
	if ui == nil {
		ui = silentInteraction{log: log}
	}
	opts.Messages = opts.Messages.Merge(DefaultMessages())

	return &Bridge{
		grid:     g,
		store:    s,
		ids:      ids,
		ui:       ui,
		opts:     opts,
		deleting: make(map[string]struct{}),
		log:      log.With("component", "bridge"),
	}
}

// SetDeleter sets the delete caller used when no custom delete hook is set.
func (b *Bridge) SetDeleter(d Deleter) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.deleter = d
}

// SetNormalizer sets the input cleaner applied on edit.
func (b *Bridge) SetNormalizer(n Normalizer) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.normalizer = n
}

// SetHooks re-points the host callbacks.
func (b *Bridge) SetHooks(h Hooks) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.hooks = h
}

func (b *Bridge) getHooks() Hooks {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.hooks
}

// Row returns the grid row under the given identity.
func (b *Bridge) Row(rowID string) (model1.Row, bool) {
	return b.linked(rowID)
}

// Dirty returns true if any rendered row holds unsaved changes.
func (b *Bridge) Dirty() bool {
	return hasDirty(b.grid.Rendered())
}

// linked returns a row only when both the grid and the store know it.
func (b *Bridge) linked(rowID string) (model1.Row, bool) {
	row, ok := b.grid.Row(rowID)
	if !ok || !b.store.Has(rowID) {
		b.log.Debug("no grid/store linkage", "row_id", rowID)
		return model1.Row{}, false
	}
	return row, true
}

// Seed replaces every row with freshly identified rows built from records.
// The store observes its cleared state before it is populated again and
// the grid receives the new rows as one transaction.
func (b *Bridge) Seed(_ context.Context, records []model1.Record) error {
	b.grid.Apply(model.Transaction{Remove: b.grid.Rows().IDs()})

	rows := make(model1.Rows, 0, len(records))
	for _, rec := range records {
		r := model1.NewRow(b.ids.Allocate(), rec)
		r.Status = ComputeStatus(r)
		rows = append(rows, r)
	}
	b.store.Reset(rows)
	res := b.grid.Apply(model.Transaction{Add: rows})
	if len(res.Added) != len(rows) {
		return fmt.Errorf("seed: grid accepted %d of %d rows", len(res.Added), len(rows))
	}
	b.log.Debug("seeded", "rows", len(rows))

	return nil
}

// Append inserts a new row built from the defaults and scrolls to it. It
// returns the new row identity, or an empty identity when the custom add
// hook took over.
func (b *Bridge) Append(ctx context.Context) (string, error) {
	if h := b.getHooks(); h.CustomAdd != nil {
		return "", h.CustomAdd(ctx)
	}

	id := b.ids.Allocate()
	row := model1.NewRow(id, model1.Record{Fields: b.opts.Defaults})
	row.Status = model1.StatusCreated

	b.store.AddRow(row)
	b.grid.Apply(model.Transaction{Add: model1.Rows{row}})
	b.grid.EnsureVisible(id)
	b.log.Debug("row appended", "row_id", id)

	return id, nil
}

// AppendMany adds one new row per field set, over the configured defaults,
// in a single grid transaction. The last row is scrolled into view.
func (b *Bridge) AppendMany(ctx context.Context, rows []model1.Fields) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if h := b.getHooks(); h.CustomAdd != nil {
		return nil, h.CustomAdd(ctx)
	}

	add := make(model1.Rows, 0, len(rows))
	for _, ff := range rows {
		fields := b.opts.Defaults.Clone()
		for k, v := range ff {
			fields[k] = v
		}
		row := model1.NewRow(b.ids.Allocate(), model1.Record{Fields: fields})
		row.Status = model1.StatusCreated
		b.store.AddRow(row)
		add = append(add, row)
	}
	res := b.grid.Apply(model.Transaction{Add: add})
	if n := len(res.Added); n > 0 {
		b.grid.EnsureVisible(res.Added[n-1])
	}
	b.log.Debug("rows appended", "count", len(res.Added))

	return res.Added, nil
}

// Remove removes a row. Local rows leave right away. Persisted rows need a
// confirmation and a successful delete call first.
func (b *Bridge) Remove(ctx context.Context, rowID string) error {
	row, ok := b.linked(rowID)
	if !ok {
		return nil
	}
	if !row.IsRemovable() {
		return ErrNotRemovable
	}
	if row.IsNew() {
		b.drop(model1.Rows{row})
		if h := b.getHooks(); h.OnDeleted != nil {
			h.OnDeleted(ctx, "", row)
		}
		return nil
	}

	return b.removePersisted(ctx, model1.Rows{row})
}

// RemoveMany removes several rows. Local rows leave right away, persisted
// rows are confirmed once and deleted with a single call.
func (b *Bridge) RemoveMany(ctx context.Context, rowIDs []string) error {
	var local, persisted model1.Rows
	for _, id := range rowIDs {
		row, ok := b.linked(id)
		if !ok {
			continue
		}
		if !row.IsRemovable() {
			b.log.Debug("skipping unremovable row", "row_id", id, "key", row.Key)
			continue
		}
		if row.IsNew() {
			local = append(local, row)
		} else {
			persisted = append(persisted, row)
		}
	}

	if len(local) > 0 {
		b.drop(local)
		if h := b.getHooks(); h.OnDeleted != nil {
			for _, r := range local {
				h.OnDeleted(ctx, "", r)
			}
		}
	}
	if len(persisted) == 0 {
		return nil
	}

	return b.removePersisted(ctx, persisted)
}

func (b *Bridge) removePersisted(ctx context.Context, rows model1.Rows) error {
	if !b.acquire(rows) {
		return ErrBusy
	}
	defer b.release(rows)

	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	if !b.ui.Confirm(ctx, b.opts.Messages.confirmDelete(keys)) {
		b.log.Debug("delete declined", "keys", keys)
		return nil
	}

	res, err := b.callDelete(ctx, keys, rows)
	if err == nil && res == "" {
		err = errEmptyResult
	}
	if err != nil {
		msg := b.opts.Messages.DeleteFailed
		if !errors.Is(err, errEmptyResult) {
			msg = err.Error()
		}
		b.log.Warn("delete failed", "keys", keys, "error", err)
		b.ui.Notify(ctx, msg)
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	if res == "true" {
		res = b.opts.Messages.Deleted
	}
	b.ui.Notify(ctx, res)

	// The table may have been reseeded while the call was in flight.
	gone := make(model1.Rows, 0, len(rows))
	for _, r := range rows {
		if _, ok := b.linked(r.ID); ok {
			gone = append(gone, r)
		}
	}
	b.drop(gone)
	if h := b.getHooks(); h.OnDeleted != nil {
		for _, r := range gone {
			h.OnDeleted(ctx, r.Key, r)
		}
	}
	b.log.Debug("rows deleted", "keys", keys)

	return nil
}

func (b *Bridge) callDelete(ctx context.Context, keys []string, rows model1.Rows) (string, error) {
	h := b.getHooks()
	if h.CustomDelete != nil {
		return h.CustomDelete(ctx, keys, rows)
	}

	b.mx.RLock()
	d := b.deleter
	b.mx.RUnlock()
	if d == nil {
		return "", errNoDeleter
	}

	return d.Delete(ctx, keys)
}

// acquire marks rows as being deleted. It fails if any row already is.
func (b *Bridge) acquire(rows model1.Rows) bool {
	b.mx.Lock()
	defer b.mx.Unlock()

	for _, r := range rows {
		if _, ok := b.deleting[r.ID]; ok {
			return false
		}
	}
	for _, r := range rows {
		b.deleting[r.ID] = struct{}{}
	}
	return true
}

func (b *Bridge) release(rows model1.Rows) {
	b.mx.Lock()
	defer b.mx.Unlock()

	for _, r := range rows {
		delete(b.deleting, r.ID)
	}
}

// drop detaches rows from the store, then from the grid.
func (b *Bridge) drop(rows model1.Rows) {
	if len(rows) == 0 {
		return
	}
	ids := rows.IDs()
	for _, id := range ids {
		b.store.RemoveRow(id)
	}
	b.grid.Apply(model.Transaction{Remove: ids})
}

// Edit writes a cell value to a new row object, recomputes the row status,
// writes the value through to the store and redraws that row only.
func (b *Bridge) Edit(ctx context.Context, rowID, field string, value any) error {
	row, ok := b.linked(rowID)
	if !ok {
		return nil
	}
	if col, ok := b.grid.Header().Column(field); ok && col.ReadOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, field)
	}
	if !b.store.Accepts(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	b.mx.RLock()
	n := b.normalizer
	b.mx.RUnlock()
	if n != nil {
		value = n.Normalize(field, value)
	}

	next := row.Clone()
	next.Fields = row.Fields.With(field, value)
	next.Status = ComputeStatus(next)
	if !b.grid.Replace(next) {
		return nil
	}
	b.store.SetField(rowID, field, value)
	b.log.Debug("cell edited", "row_id", rowID, "key", next.Key, "field", field, "status", next.Status)

	if h := b.getHooks(); h.OnGridChanged != nil {
		h.OnGridChanged(ctx, next)
	}
	b.grid.RefreshRows(rowID)

	return nil
}

// Touch flags a persisted row as modified without changing a value. Custom
// editors whose value lives outside the grid use it.
func (b *Bridge) Touch(ctx context.Context, rowID, field string) error {
	row, ok := b.linked(rowID)
	if !ok {
		return nil
	}
	b.store.RegisterField(rowID, field, row.Value(field))
	if row.IsNew() || row.Status == model1.StatusModified {
		return nil
	}

	next := row.Clone()
	next.Status = model1.StatusModified
	if !b.grid.Replace(next) {
		return nil
	}
	if h := b.getHooks(); h.OnGridChanged != nil {
		h.OnGridChanged(ctx, next)
	}
	b.grid.RefreshRows(rowID)

	return nil
}
