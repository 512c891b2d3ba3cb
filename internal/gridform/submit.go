// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package gridform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gridform/gridform/internal/form"
	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/validate"
)

// Submitter validates the form store and hands clean values to the host.
type Submitter struct {
	grid      model.Grid
	store     *form.Store
	validator Validator
	focuser   Focuser
	ui        Interaction
	order     []string
	onSubmit  func(context.Context, []model1.Fields) error
	lastErrs  validate.Errors
	running   sync.Mutex
	busy      atomic.Bool
	log       *slog.Logger
	mx        sync.RWMutex
}

// NewSubmitter returns a new submitter. Order lists the fields in column
// order; it decides which error surfaces first within a row.
func NewSubmitter(g model.Grid, s *form.Store, v Validator, ui Interaction, order []string, log *slog.Logger) *Submitter {
	if log == nil {
		log = slog.Default()
	}
	if ui == nil {
		ui = silentInteraction{log: log}
	}

	return &Submitter{
		grid:      g,
		store:     s,
		validator: v,
		ui:        ui,
		order:     order,
		log:       log.With("component", "submitter"),
	}
}

// SetFocuser sets the cell focus target.
func (s *Submitter) SetFocuser(f Focuser) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.focuser = f
}

// SetHooks re-points the submit hook.
func (s *Submitter) SetHooks(h Hooks) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.onSubmit = h.OnSubmit
}

// Busy returns true while a submit is running.
func (s *Submitter) Busy() bool {
	return s.busy.Load()
}

// LastErrors returns every validation error of the last submit.
func (s *Submitter) LastErrors() validate.Errors {
	s.mx.RLock()
	defer s.mx.RUnlock()

	errs := make(validate.Errors, len(s.lastErrs))
	copy(errs, s.lastErrs)
	return errs
}

// Submit validates every row. On failure the first error is shown and
// focused and its validate.Errors is returned. On success the submit hook
// receives the form values and every row is re-baselined.
func (s *Submitter) Submit(ctx context.Context) error {
	if !s.running.TryLock() {
		return ErrBusy
	}
	s.busy.Store(true)
	defer func() {
		s.busy.Store(false)
		s.running.Unlock()
	}()

	errs := s.validate()
	s.mx.Lock()
	s.lastErrs = errs
	focuser, hook := s.focuser, s.onSubmit
	s.mx.Unlock()

	if fe, ok := errs.First(); ok {
		s.log.Debug("validation failed", "errors", len(errs), "row_id", fe.RowID, "field", fe.Field)
		s.ui.Notify(ctx, fe.Message)
		if focuser != nil {
			focuser.Focus(fe.RowID, fe.Field)
		}
		return errs
	}

	payload := s.store.CollectAll()
	if hook != nil {
		if err := hook(ctx, payload); err != nil {
			s.log.Warn("submit failed", "error", err)
			s.ui.Notify(ctx, err.Error())
			return fmt.Errorf("submit: %w", err)
		}
	}
	s.store.Rebaseline()
	s.rebaseline()
	s.log.Info("submitted", "rows", len(payload))

	return nil
}

func (s *Submitter) validate() validate.Errors {
	if s.validator == nil {
		return nil
	}
	dups := s.duplicates()
	var errs validate.Errors
	for _, e := range s.store.Entries() {
		errs = append(errs, s.validator.ValidateRow(e.RowID, e.Values, s.order)...)
		errs = append(errs, dups[e.RowID]...)
	}
	return errs
}

// duplicates runs the cross row rules, keyed by the failing row.
func (s *Submitter) duplicates() map[string]validate.Errors {
	u, ok := s.validator.(UniqueValidator)
	if !ok {
		return nil
	}
	rows := s.grid.Rows()
	vv := make([]validate.RowValues, 0, len(rows))
	for _, r := range rows {
		if f, ok := s.store.Row(r.ID); ok {
			vv = append(vv, validate.RowValues{RowID: r.ID, Values: f})
		}
	}
	errs := u.ValidateUnique(vv)
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]validate.Errors, len(errs))
	for _, fe := range errs {
		out[fe.RowID] = append(out[fe.RowID], fe)
	}
	return out
}

// rebaseline makes the current grid values the new original snapshots.
func (s *Submitter) rebaseline() {
	var ids []string
	for _, row := range s.grid.Rows() {
		if !row.Status.IsDirty() {
			continue
		}
		if p, err := row.Patch(); err == nil {
			s.log.Debug("row saved", "row_id", row.ID, "key", row.Key, "patch", p)
		}
		next := row.Clone()
		next.Original = next.Fields.Clone()
		next.Status = ComputeStatus(next)
		if s.grid.Replace(next) {
			ids = append(ids, row.ID)
		}
	}
	if len(ids) > 0 {
		s.grid.RefreshRows(ids...)
	}
}
