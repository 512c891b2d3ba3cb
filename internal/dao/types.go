package dao

import (
	"context"

	"github.com/gridform/gridform/internal/model1"
)

// Document is the stored form of a dataset.
type Document struct {
	Table   string          `json:"table,omitempty" yaml:"table,omitempty"`
	Records []model1.Record `json:"records" yaml:"records"`
}

// Loader reads every record of a dataset.
type Loader interface {
	Load(ctx context.Context) ([]model1.Record, error)
}

// Saver writes records back. Records without a key get one assigned and
// the stored records are returned.
type Saver interface {
	Save(ctx context.Context, records []model1.Record) ([]model1.Record, error)
}

// Nuker deletes records by key. It returns a user message on success and
// an empty message when nothing was deleted.
type Nuker interface {
	Delete(ctx context.Context, keys []string) (string, error)
}

// Dataset is a keyed record source the table loads from and saves to.
type Dataset interface {
	Loader
	Saver
	Nuker

	// Location returns the dataset address.
	Location() string
}
