package collection

import (
	"fmt"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// WriteIndexedVector writes a required indexed_vector<T> field.
func WriteIndexedVector[T comparable](w *binary.SectionWriter, key string, scalar models.ScalarKind, iv IndexedVector[T]) error {
	return models.SetData(scalar, models.ContainerIndexedVector, iv).Write(w, key)
}

// ReadIndexedVector reads an indexed_vector<T> field written by
// WriteIndexedVector.
func ReadIndexedVector[T comparable](r *binary.SectionReader, key string, scalar models.ScalarKind) (IndexedVector[T], error) {
	v, err := models.ReadVarying(r, key)
	if err != nil {
		return IndexedVector[T]{}, err
	}
	if err := expectKind(v, scalar, models.ContainerIndexedVector); err != nil {
		return IndexedVector[T]{}, err
	}
	out, ok := models.Data[IndexedVector[T]](v)
	if !ok {
		return IndexedVector[T]{}, fmt.Errorf("%w: %q decoded to an unexpected Go type", models.ErrCorrupted, key)
	}
	return out, nil
}

// WriteOptionalIndexedVector writes an optional<indexed_vector<T>> field;
// a nil iv writes the absent shortcut.
func WriteOptionalIndexedVector[T comparable](w *binary.SectionWriter, key string, scalar models.ScalarKind, iv *IndexedVector[T]) error {
	return models.SetData(scalar, models.ContainerOptionalIdxVector, iv).Write(w, key)
}

// ReadOptionalIndexedVector reads an optional<indexed_vector<T>> field; a
// nil result means the field was absent.
func ReadOptionalIndexedVector[T comparable](r *binary.SectionReader, key string, scalar models.ScalarKind) (*IndexedVector[T], error) {
	v, err := models.ReadVarying(r, key)
	if err != nil {
		return nil, err
	}
	if err := expectKind(v, scalar, models.ContainerOptionalIdxVector); err != nil {
		return nil, err
	}
	out, ok := models.Data[*IndexedVector[T]](v)
	if !ok {
		return nil, fmt.Errorf("%w: %q decoded to an unexpected Go type", models.ErrCorrupted, key)
	}
	return out, nil
}
