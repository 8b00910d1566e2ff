// Package collection implements the structured field types entities embed
// beyond a bare scalar: ordered sequences, sparse indexed vectors,
// bidirectional maps, directed graphs and keyed entity tables. Each type
// composes the closed scalar universe's Varying values (models.Varying)
// for its actual wire I/O and adds the shape's own
// uniqueness/ordering/reachability invariants on top.
package collection

import (
	"fmt"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// IndexedVector re-exports models.IndexedVector, the dense-values +
// sparse-index pair used for the indexed_vector container shapes of entity
// fields.
type IndexedVector[T comparable] = models.IndexedVector[T]

// ValidateIndexedVector checks that every index entry is in range and the
// value count does not exceed a 32-bit signed count.
func ValidateIndexedVector[T comparable](iv IndexedVector[T], v *models.Validator, context string) bool {
	ok := true
	if len(iv.Values) > (1<<31)-1 {
		v.Report(models.InvalidCount, context, "indexed vector exceeds 2^31-1 values")
		ok = false
	}
	for _, idx := range iv.Index {
		if idx < 0 || int(idx) >= len(iv.Values) {
			v.Report(models.InvalidValue, context, "index entry out of bounds")
			ok = false
		}
	}
	return ok
}

// WriteVector writes a required vector<T> field under key, for any scalar
// kind registered in the dispatch table (e.g. models.ScalarInt32 for
// vals []int32, models.ScalarString for []string, models.ScalarUUID for
// []models.UUIDBytes).
func WriteVector[T comparable](w *binary.SectionWriter, key string, scalar models.ScalarKind, vals []T) error {
	return models.SetData(scalar, models.ContainerVector, vals).Write(w, key)
}

// ReadVector reads a vector<T> field written by WriteVector.
func ReadVector[T comparable](r *binary.SectionReader, key string, scalar models.ScalarKind) ([]T, error) {
	v, err := models.ReadVarying(r, key)
	if err != nil {
		return nil, err
	}
	if err := expectKind(v, scalar, models.ContainerVector); err != nil {
		return nil, err
	}
	out, ok := models.Data[[]T](v)
	if !ok {
		return nil, fmt.Errorf("%w: %q decoded to an unexpected Go type", models.ErrCorrupted, key)
	}
	return out, nil
}

// expectKind asserts a decoded Varying carries the expected (scalar,
// container) pair, surfacing a wire-level mismatch as an error rather than
// letting a later type assertion fail silently.
func expectKind(v models.Varying, scalar models.ScalarKind, container models.ContainerKind) error {
	if v.ScalarKind() != scalar || v.ContainerKind() != container {
		return fmt.Errorf("%w: expected scalar 0x%02x/container 0x%02x, got 0x%02x/0x%02x",
			models.ErrCorrupted, scalar, container, v.ScalarKind(), v.ContainerKind())
	}
	return nil
}

// WriteOptionalVector writes an optional<vector<T>> field; nil vals writes
// the absent shortcut.
func WriteOptionalVector[T comparable](w *binary.SectionWriter, key string, scalar models.ScalarKind, vals []T) error {
	return models.SetData(scalar, models.ContainerOptionalVector, vals).Write(w, key)
}

// ReadOptionalVector reads an optional<vector<T>> field; a nil result means
// the field was absent.
func ReadOptionalVector[T comparable](r *binary.SectionReader, key string, scalar models.ScalarKind) ([]T, error) {
	v, err := models.ReadVarying(r, key)
	if err != nil {
		return nil, err
	}
	if err := expectKind(v, scalar, models.ContainerOptionalVector); err != nil {
		return nil, err
	}
	out, ok := models.Data[[]T](v)
	if !ok {
		return nil, fmt.Errorf("%w: %q decoded to an unexpected Go type", models.ErrCorrupted, key)
	}
	return out, nil
}
