package dao

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec converts a document to and from its stored bytes.
type Codec interface {
	Decode([]byte) (Document, error)
	Encode(Document) ([]byte, error)
}

// CodecFor picks a codec from a file extension.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	case ".json":
		return jsonCodec{}, nil
	}
	return nil, fmt.Errorf("unsupported dataset format: %q", path)
}

type yamlCodec struct{}

func (yamlCodec) Decode(bb []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(bb, &doc); err != nil {
		return Document{}, fmt.Errorf("yaml decode failed: %w", err)
	}
	return doc, nil
}

func (yamlCodec) Encode(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

type jsonCodec struct{}

func (jsonCodec) Decode(bb []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(bb, &doc); err != nil {
		return Document{}, fmt.Errorf("json decode failed: %w", err)
	}
	return doc, nil
}

func (jsonCodec) Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
