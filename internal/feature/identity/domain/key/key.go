// Package key provides string conversion strategies for the generic entity key type.
//
// Stores receive a Converter explicitly; the key type only has to be comparable.
package key

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Converter round-trips a key through its string form.
type Converter[K comparable] interface {
	// ToString renders id in its canonical string form.
	ToString(id K) string
	// FromString parses s into a key.
	FromString(s string) (K, error)
}

// String is the identity strategy for string keys (UUIDs rendered as text by default).
type String struct{}

var _ Converter[string] = String{}

func (String) ToString(id string) string { return id }

func (String) FromString(s string) (string, error) { return s, nil }

// UUID converts uuid.UUID keys.
type UUID struct{}

var _ Converter[uuid.UUID] = UUID{}

func (UUID) ToString(id uuid.UUID) string { return id.String() }

func (UUID) FromString(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse uuid key %q: %w", s, err)
	}
	return id, nil
}

// Int64 converts int64 keys using base 10.
type Int64 struct{}

var _ Converter[int64] = Int64{}

func (Int64) ToString(id int64) string { return strconv.FormatInt(id, 10) }

func (Int64) FromString(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse int64 key %q: %w", s, err)
	}
	return id, nil
}
