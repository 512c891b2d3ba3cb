package dao

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gridform/gridform/internal/model1"
)

// File is a dataset stored in a local YAML or JSON file.
type File struct {
	path  string
	codec Codec
	mx    sync.Mutex
}

var _ Dataset = (*File)(nil)

// NewFile returns a file dataset. The format follows the file extension.
func NewFile(path string) (*File, error) {
	c, err := CodecFor(path)
	if err != nil {
		return nil, err
	}

	return &File{path: path, codec: c}, nil
}

// Location returns the dataset address.
func (f *File) Location() string {
	return f.path
}

// Load reads every record. A missing file is an empty dataset.
func (f *File) Load(context.Context) ([]model1.Record, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// Save writes the records.
func (f *File) Save(_ context.Context, rr []model1.Record) ([]model1.Record, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	doc.Records = assignKeys(rr)
	if err := f.write(doc); err != nil {
		return nil, err
	}
	return cloneRecords(doc.Records), nil
}

// Delete removes records by key.
func (f *File) Delete(_ context.Context, keys []string) (string, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", err
	}
	var n int
	doc.Records, n = removeKeys(doc.Records, keys)
	if n == 0 {
		return "", nil
	}
	if err := f.write(doc); err != nil {
		return "", err
	}
	return deletedMsg(n), nil
}

func (f *File) read() (Document, error) {
	bb, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to read dataset %q: %w", f.path, err)
	}
	return f.codec.Decode(bb)
}

func (f *File) write(doc Document) error {
	bb, err := f.codec.Encode(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset dir: %w", err)
	}
	return os.WriteFile(f.path, bb, 0o600)
}
