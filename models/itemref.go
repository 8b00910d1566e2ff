package models

import (
	"github.com/google/uuid"

	"github.com/cooolrik/pds-go/storage/binary"
)

// ItemRef is an opaque 128-bit identifier for objects nested within an
// entity. No external construction from raw bytes is permitted by public
// API: the zero value is the null reference, and the only way to mint a
// non-null value is NewItemRef.
type ItemRef struct {
	id [16]byte
}

// NewItemRef mints a fresh, library-generated ItemRef.
func NewItemRef() ItemRef {
	return ItemRef{id: uuid.New()}
}

// itemRefFromRaw constructs an ItemRef from raw bytes; unexported so only
// the package's own reader (EntityReader-equivalent decode path) can use it,
// matching the original's "private raw-construction restricted to a friend
// reader" discipline.
func itemRefFromRaw(b [16]byte) ItemRef { return ItemRef{id: b} }

// NullItemRef is the zero-valued reference, less than all minted values.
var NullItemRef = ItemRef{}

// InfItemRef and SupItemRef are sentinels for half-open range queries over
// ordered sets of item references ([Inf, Sup) spans everything valid).
var (
	InfItemRef = ItemRef{id: [16]byte{}}
	SupItemRef = ItemRef{id: func() [16]byte { var b [16]byte; for i := range b { b[i] = 0xff }; return b }()}
)

func (r ItemRef) IsNull() bool { return r == NullItemRef }

// Compare returns -1, 0, or 1 per the natural byte-lexicographic order of
// the underlying 16 bytes (the total order required for [Inf, Sup) lookups).
func (r ItemRef) Compare(other ItemRef) int {
	for i := 0; i < 16; i++ {
		if r.id[i] != other.id[i] {
			if r.id[i] < other.id[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (r ItemRef) String() string { return binary.FormatUUID(r.id) }

func (r ItemRef) Bytes() [16]byte { return r.id }

// Write emits the reference as a raw UUID block (never byte-swapped).
func (r ItemRef) Write(w *binary.SectionWriter, key string) error {
	return w.WriteUUID(key, r.id)
}

// ReadItemRef reads a raw UUID block into a library-minted reference value.
func ReadItemRef(r *binary.SectionReader, key string) (ItemRef, error) {
	b, err := r.ReadUUID(key)
	if err != nil {
		return ItemRef{}, err
	}
	return itemRefFromRaw(b), nil
}
