// Package form holds the editable value of every field of every row, keyed
// by row identity. It is the source of truth for submission.
package form

import (
	"log/slog"
	"sync"

	"github.com/gridform/gridform/internal/model1"
)

// Listener observes bulk store changes.
type Listener interface {
	// StoreCleared fires once every entry was dropped and before any entry
	// of a reset is added back.
	StoreCleared()

	// StoreSeeded fires once a reset finished populating the store.
	StoreSeeded(count int)
}

// Entry is one row worth of form values.
type Entry struct {
	RowID    string
	Key      string
	Values   model1.Fields
	Baseline model1.Fields
}

func (e Entry) clone() Entry {
	return Entry{
		RowID:    e.RowID,
		Key:      e.Key,
		Values:   e.Values.Clone(),
		Baseline: e.Baseline.Clone(),
	}
}

// Store is an ordered rowID -> field -> value store.
type Store struct {
	order     []string
	entries   map[string]*Entry
	fields    map[string]struct{}
	listeners []Listener
	log       *slog.Logger
	mx        sync.RWMutex
}

// NewStore returns an empty store. When fields are given, only those field
// names are accepted; anything else is a display-only column.
func NewStore(fields ...string) *Store {
	s := Store{
		entries: make(map[string]*Entry),
		log:     slog.Default().With("component", "form"),
	}
	if len(fields) > 0 {
		s.fields = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			s.fields[f] = struct{}{}
		}
	}
	return &s
}

// SetLogger sets the store logger.
func (s *Store) SetLogger(l *slog.Logger) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.log = l
}

// AddListener registers a store listener.
func (s *Store) AddListener(l Listener) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.listeners = append(s.listeners, l)
}

// RemoveListener unregisters a store listener.
func (s *Store) RemoveListener(l Listener) {
	s.mx.Lock()
	defer s.mx.Unlock()

	for i, lis := range s.listeners {
		if lis == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Accepts reports whether field is a form field of this store.
func (s *Store) Accepts(field string) bool {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.accepts(field)
}

func (s *Store) accepts(field string) bool {
	if s.fields == nil {
		return true
	}
	_, ok := s.fields[field]
	return ok
}

// Reset drops every entry then seeds one entry per row. Listeners observe
// the cleared store before population starts.
func (s *Store) Reset(rows model1.Rows) {
	s.mx.Lock()
	s.order = s.order[:0]
	s.entries = make(map[string]*Entry, len(rows))
	s.mx.Unlock()

	for _, l := range s.snapListeners() {
		l.StoreCleared()
	}

	s.mx.Lock()
	for _, r := range rows {
		s.addLocked(r)
	}
	count := len(s.order)
	s.mx.Unlock()

	s.log.Debug("store reset", "rows", count)
	for _, l := range s.snapListeners() {
		l.StoreSeeded(count)
	}
}

// AddRow registers a row and all of its fields.
func (s *Store) AddRow(r model1.Row) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.addLocked(r)
}

func (s *Store) addLocked(r model1.Row) {
	if _, ok := s.entries[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	e := Entry{
		RowID:    r.ID,
		Key:      r.Key,
		Values:   make(model1.Fields, len(r.Fields)),
		Baseline: make(model1.Fields, len(r.Original)),
	}
	for k, v := range r.Fields {
		if s.accepts(k) {
			e.Values[k] = v
		}
	}
	for k, v := range r.Original {
		if s.accepts(k) {
			e.Baseline[k] = v
		}
	}
	s.entries[r.ID] = &e
}

// RegisterField connects a field to the store. Registering an already
// known field keeps its current value.
func (s *Store) RegisterField(rowID, field string, initial any) bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	e, ok := s.entries[rowID]
	if !ok || !s.accepts(field) {
		return false
	}
	if _, ok := e.Values[field]; !ok {
		e.Values[field] = initial
	}
	return true
}

// SetField overwrites one value.
func (s *Store) SetField(rowID, field string, value any) bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	e, ok := s.entries[rowID]
	if !ok || !s.accepts(field) {
		return false
	}
	e.Values[field] = value
	return true
}

// Field returns one value.
func (s *Store) Field(rowID, field string) (any, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	e, ok := s.entries[rowID]
	if !ok {
		return nil, false
	}
	v, ok := e.Values[field]
	return v, ok
}

// Row returns a copy of a row's values.
func (s *Store) Row(rowID string) (model1.Fields, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	e, ok := s.entries[rowID]
	if !ok {
		return nil, false
	}
	return e.Values.Clone(), true
}

// Baseline returns a copy of the values a row was last seeded or saved with.
func (s *Store) Baseline(rowID string) (model1.Fields, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	e, ok := s.entries[rowID]
	if !ok {
		return nil, false
	}
	return e.Baseline.Clone(), true
}

// Has returns true if the row is registered.
func (s *Store) Has(rowID string) bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	_, ok := s.entries[rowID]
	return ok
}

// RemoveRow detaches a row from the store.
func (s *Store) RemoveRow(rowID string) bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	if _, ok := s.entries[rowID]; !ok {
		return false
	}
	delete(s.entries, rowID)
	for i, id := range s.order {
		if id == rowID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the registered row identities in store order.
func (s *Store) IDs() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of registered rows.
func (s *Store) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return len(s.order)
}

// Entries returns a copy of every entry in store order.
func (s *Store) Entries() []Entry {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ee := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		ee = append(ee, s.entries[id].clone())
	}
	return ee
}

// CollectAll returns every row's business values in store order.
func (s *Store) CollectAll() []model1.Fields {
	s.mx.RLock()
	defer s.mx.RUnlock()

	out := make([]model1.Fields, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].Values.Clone())
	}
	return out
}

// Rebaseline makes the current values the new baseline of every row.
func (s *Store) Rebaseline() {
	s.mx.Lock()
	defer s.mx.Unlock()

	for _, e := range s.entries {
		e.Baseline = e.Values.Clone()
	}
}

func (s *Store) snapListeners() []Listener {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ll := make([]Listener, len(s.listeners))
	copy(ll, s.listeners)
	return ll
}
