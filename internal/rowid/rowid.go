// Package rowid allocates opaque row identities. Identities carry no
// ordering or business meaning and are never reused.
package rowid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Allocator hands out row identities.
type Allocator interface {
	// Allocate returns a new identity.
	Allocate() string
}

// UUID allocates random version 4 UUIDs.
type UUID struct{}

// Allocate returns a new random UUID.
func (UUID) Allocate() string {
	return uuid.NewString()
}

// Sequence allocates predictable identities, for tests and fixtures.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewSequence returns a sequence allocator using the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// Allocate returns the next identity in the sequence.
func (s *Sequence) Allocate() string {
	return fmt.Sprintf("%s%d", s.Prefix, s.n.Add(1))
}
