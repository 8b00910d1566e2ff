package collection

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// ItemTable is a K -> Entity mapping with owned entries. Entries of a
// single, caller-known entity type are written as a parallel "IDs" vector
// and "Entities" sections-array; a null section denotes an absent value
// for that key.
type ItemTable[K cmp.Ordered] struct {
	ZeroKeysAllowed     bool
	NullEntitiesAllowed bool

	entries map[K]models.Entity
}

// NewItemTable returns an empty table with the given key/null policy.
func NewItemTable[K cmp.Ordered](zeroKeysAllowed, nullEntitiesAllowed bool) *ItemTable[K] {
	return &ItemTable[K]{
		ZeroKeysAllowed:     zeroKeysAllowed,
		NullEntitiesAllowed: nullEntitiesAllowed,
		entries:             map[K]models.Entity{},
	}
}

// Set inserts or replaces the entity owned under k. A nil entity is only
// accepted when NullEntitiesAllowed.
func (t *ItemTable[K]) Set(k K, e models.Entity) error {
	if e == nil && !t.NullEntitiesAllowed {
		return fmt.Errorf("%w: null entity not allowed for key %v", models.ErrInvalidInput, k)
	}
	var zero K
	if k == zero && !t.ZeroKeysAllowed {
		return fmt.Errorf("%w: zero-valued key not allowed", models.ErrInvalidInput)
	}
	t.entries[k] = e
	return nil
}

// Get returns the entity owned under k.
func (t *ItemTable[K]) Get(k K) (models.Entity, bool) {
	e, ok := t.entries[k]
	return e, ok
}

// Len returns the number of keys in the table.
func (t *ItemTable[K]) Len() int { return len(t.entries) }

func (t *ItemTable[K]) sortedKeys() []K {
	keys := make([]K, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Validate checks the key/null discipline declared by ZeroKeysAllowed and
// NullEntitiesAllowed, plus recursively validates every non-null entity.
func (t *ItemTable[K]) Validate(v *models.Validator, context string) bool {
	ok := true
	var zero K
	for k, e := range t.entries {
		if e == nil {
			if !t.NullEntitiesAllowed {
				v.Report(models.NullNotAllowed, context, fmt.Sprintf("entry %v is null", k))
				ok = false
			}
			continue
		}
		if k == zero && !t.ZeroKeysAllowed {
			v.Report(models.InvalidValue, context, "zero-valued key present")
			ok = false
		}
		if !e.Validate(v) {
			ok = false
		}
	}
	return ok
}

// Write emits "IDs" (a vector<K>) and "Entities" (a sections-array), key
// order sorted for determinism.
func (t *ItemTable[K]) Write(w *binary.SectionWriter, idsKey, entitiesKey string, idScalar models.ScalarKind) error {
	keys := t.sortedKeys()
	if err := WriteVector(w, idsKey, idScalar, keys); err != nil {
		return err
	}
	arr, err := w.BeginSectionArray(entitiesKey, len(keys))
	if err != nil {
		return err
	}
	for i, k := range keys {
		e := t.entries[k]
		if e == nil {
			if err := arr.WriteNullElement(i); err != nil {
				return err
			}
			continue
		}
		child, err := arr.BeginElement(i)
		if err != nil {
			return err
		}
		if err := e.Write(child); err != nil {
			return err
		}
		if err := arr.EndElement(i, child); err != nil {
			return err
		}
	}
	return w.EndArray(arr)
}

// ReadItemTable decodes a table written by Write. factory constructs a
// fresh, empty entity of the table's single known entity type for each
// non-null slot.
func ReadItemTable[K cmp.Ordered](r *binary.SectionReader, idsKey, entitiesKey string, idScalar models.ScalarKind, factory models.Factory, zeroKeysAllowed, nullEntitiesAllowed bool) (*ItemTable[K], error) {
	keys, err := ReadVector[K](r, idsKey, idScalar)
	if err != nil {
		return nil, err
	}
	arr, err := r.BeginSectionArray(entitiesKey)
	if err != nil {
		return nil, err
	}
	if arr.Count() != len(keys) {
		return nil, fmt.Errorf("%w: %s/%s length mismatch (%d ids, %d entities)", models.ErrCorrupted, idsKey, entitiesKey, len(keys), arr.Count())
	}
	t := NewItemTable[K](zeroKeysAllowed, nullEntitiesAllowed)
	for i, k := range keys {
		child, isNull, err := arr.BeginElement(i)
		if err != nil {
			return nil, err
		}
		if isNull {
			if err := arr.EndElement(i, nil); err != nil {
				return nil, err
			}
			if err := t.Set(k, nil); err != nil {
				return nil, err
			}
			continue
		}
		e := factory()
		if err := e.Read(child); err != nil {
			return nil, err
		}
		if err := arr.EndElement(i, child); err != nil {
			return nil, err
		}
		if err := t.Set(k, e); err != nil {
			return nil, err
		}
	}
	if err := r.EndArray(arr); err != nil {
		return nil, err
	}
	return t, nil
}
