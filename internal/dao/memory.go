package dao

import (
	"context"
	"sync"

	"github.com/gridform/gridform/internal/model1"
)

// Memory is a dataset held in memory.
type Memory struct {
	name    string
	records []model1.Record
	mx      sync.RWMutex
}

var _ Dataset = (*Memory)(nil)

// NewMemory returns a new in-memory dataset.
func NewMemory(name string, rr []model1.Record) *Memory {
	return &Memory{
		name:    name,
		records: assignKeys(rr),
	}
}

// Location returns the dataset address.
func (m *Memory) Location() string {
	return MemScheme + "://" + m.name
}

// Load returns every record.
func (m *Memory) Load(context.Context) ([]model1.Record, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()
	return cloneRecords(m.records), nil
}

// Save replaces the records.
func (m *Memory) Save(_ context.Context, rr []model1.Record) ([]model1.Record, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.records = assignKeys(rr)
	return cloneRecords(m.records), nil
}

// Delete removes records by key.
func (m *Memory) Delete(_ context.Context, keys []string) (string, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	var n int
	m.records, n = removeKeys(m.records, keys)
	return deletedMsg(n), nil
}
