package collection

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// BidirectionalMap is a set of (K, V) pairs with both projections unique:
// no two entries share a key, and no two entries share a value. On the
// wire it is two parallel vectors, "Keys" and "Values", written in key
// order for determinism; equality ignores insertion order.
type BidirectionalMap[K cmp.Ordered, V comparable] struct {
	forward map[K]V
	reverse map[V]K
}

// NewBidirectionalMap returns an empty map.
func NewBidirectionalMap[K cmp.Ordered, V comparable]() *BidirectionalMap[K, V] {
	return &BidirectionalMap[K, V]{forward: map[K]V{}, reverse: map[V]K{}}
}

// Set inserts or idempotently re-inserts (k, v). It fails if k or v is
// already paired with a different partner, which would break the
// both-projections-unique invariant.
func (m *BidirectionalMap[K, V]) Set(k K, v V) error {
	if existingV, ok := m.forward[k]; ok && existingV != v {
		return fmt.Errorf("%w: key already mapped to a different value", models.ErrInvalidInput)
	}
	if existingK, ok := m.reverse[v]; ok && existingK != k {
		return fmt.Errorf("%w: value already mapped to a different key", models.ErrInvalidInput)
	}
	m.forward[k] = v
	m.reverse[v] = k
	return nil
}

// Get returns the value paired with k.
func (m *BidirectionalMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.forward[k]
	return v, ok
}

// GetKey returns the key paired with v.
func (m *BidirectionalMap[K, V]) GetKey(v V) (K, bool) {
	k, ok := m.reverse[v]
	return k, ok
}

// Len returns the number of pairs.
func (m *BidirectionalMap[K, V]) Len() int { return len(m.forward) }

// Equals reports set equality of the two maps' pairs, ignoring insertion
// order.
func (m *BidirectionalMap[K, V]) Equals(other *BidirectionalMap[K, V]) bool {
	if len(m.forward) != len(other.forward) {
		return false
	}
	for k, v := range m.forward {
		if ov, ok := other.forward[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (m *BidirectionalMap[K, V]) sortedKeys() []K {
	keys := make([]K, 0, len(m.forward))
	for k := range m.forward {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Write emits Keys/Values as two parallel vector<T> fields under "Keys" and
// "Values", using the caller-supplied scalar kinds for K and V.
func (m *BidirectionalMap[K, V]) Write(w *binary.SectionWriter, keyScalar, valScalar models.ScalarKind) error {
	keys := m.sortedKeys()
	vals := make([]V, len(keys))
	for i, k := range keys {
		vals[i] = m.forward[k]
	}
	if err := WriteVector(w, "Keys", keyScalar, keys); err != nil {
		return err
	}
	return WriteVector(w, "Values", valScalar, vals)
}

// ReadBidirectionalMap decodes a map written by Write, re-inserting entries
// and re-checking the both-projections-unique invariant.
func ReadBidirectionalMap[K cmp.Ordered, V comparable](r *binary.SectionReader, keyScalar, valScalar models.ScalarKind) (*BidirectionalMap[K, V], error) {
	keys, err := ReadVector[K](r, "Keys", keyScalar)
	if err != nil {
		return nil, err
	}
	vals, err := ReadVector[V](r, "Values", valScalar)
	if err != nil {
		return nil, err
	}
	if len(keys) != len(vals) {
		return nil, fmt.Errorf("%w: Keys/Values length mismatch", models.ErrCorrupted)
	}
	m := NewBidirectionalMap[K, V]()
	for i := range keys {
		if err := m.Set(keys[i], vals[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}
