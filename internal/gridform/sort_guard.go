// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package gridform

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gridform/gridform/internal/model"
	"github.com/gridform/gridform/internal/model1"
)

// GuardState tracks whether the guard is undoing a rejected sort.
type GuardState int

const (
	// SortIdle waits for sort changes.
	SortIdle GuardState = iota

	// SortRestoring expects the echo of its own corrective sort.
	SortRestoring
)

func (s GuardState) String() string {
	if s == SortRestoring {
		return "restoring"
	}
	return "idle"
}

// SortGuard listens to grid sort changes and rolls them back while the grid
// holds unsaved rows.
type SortGuard struct {
	grid     model.Grid
	ui       Interaction
	message  string
	state    GuardState
	baseline model1.SortState
	onSort   func(context.Context, model1.SortState)
	ctx      context.Context
	verdict  error
	log      *slog.Logger
	mx       sync.RWMutex
}

var _ model.SortListener = (*SortGuard)(nil)

// NewSortGuard returns a guard listening on the given grid.
func NewSortGuard(g model.Grid, ui Interaction, msg string, log *slog.Logger) *SortGuard {
	if log == nil {
		log = slog.Default()
	}
	if ui == nil {
		ui = silentInteraction{log: log}
	}
	if msg == "" {
		msg = DefaultMessages().SortBlocked
	}
	sg := SortGuard{
		grid:    g,
		ui:      ui,
		message: msg,
		log:     log.With("component", "sort_guard"),
	}
	g.AddSortListener(&sg)

	return &sg
}

// Close detaches the guard from its grid.
func (s *SortGuard) Close() {
	s.grid.RemoveSortListener(s)
}

// SetHooks re-points the sort hook.
func (s *SortGuard) SetHooks(h Hooks) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.onSort = h.OnSort
}

// Baseline returns the last accepted sort state.
func (s *SortGuard) Baseline() model1.SortState {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.baseline.Clone()
}

// State returns the guard state.
func (s *SortGuard) State() GuardState {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.state
}

// Request sorts the grid and reports whether the guard let it through.
func (s *SortGuard) Request(ctx context.Context, state model1.SortState) error {
	s.mx.Lock()
	s.ctx, s.verdict = ctx, nil
	s.mx.Unlock()

	s.grid.SetSort(state)

	s.mx.Lock()
	defer s.mx.Unlock()
	err := s.verdict
	s.ctx, s.verdict = nil, nil

	return err
}

// GridSortChanged handles a grid sort change.
func (s *SortGuard) GridSortChanged(state model1.SortState) {
	s.mx.RLock()
	ctx := s.ctx
	s.mx.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	err := s.sortChanged(ctx, state)

	s.mx.Lock()
	s.verdict = err
	s.mx.Unlock()
}

func (s *SortGuard) sortChanged(ctx context.Context, state model1.SortState) error {
	s.mx.Lock()
	if s.state == SortRestoring {
		s.state = SortIdle
		s.mx.Unlock()
		s.log.Debug("corrective sort swallowed")
		return nil
	}
	s.mx.Unlock()

	if hasDirty(s.grid.Rendered()) {
		s.mx.Lock()
		s.state = SortRestoring
		baseline := s.baseline.Clone()
		s.mx.Unlock()

		s.log.Debug("sort rejected", "requested", state, "baseline", baseline)
		if !s.grid.RevertSort() {
			s.grid.SetSort(baseline)
		}

		// A grid that skips no-op sorts never echoes the reapplication.
		s.mx.Lock()
		s.state = SortIdle
		s.mx.Unlock()

		s.ui.Notify(ctx, s.message)
		return ErrSortRejected
	}

	s.mx.Lock()
	s.baseline = state.Clone()
	hook := s.onSort
	s.mx.Unlock()

	s.log.Debug("sort accepted", "state", state)
	if hook != nil {
		hook(ctx, state.Clone())
	}

	return nil
}
