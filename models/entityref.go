package models

import (
	"crypto/sha256"

	"github.com/cooolrik/pds-go/storage/binary"
)

// EntityRef is a 256-bit content hash addressing an on-disk artifact.
// Unlike ItemRef, it is constructible from any hash.
type EntityRef struct {
	hash [32]byte
}

// NullEntityRef is the all-zero reference.
var NullEntityRef = EntityRef{}

// InfEntityRef and SupEntityRef are sentinels for half-open range queries.
var (
	InfEntityRef = EntityRef{hash: [32]byte{}}
	SupEntityRef = EntityRef{hash: func() [32]byte { var b [32]byte; for i := range b { b[i] = 0xff }; return b }()}
)

// EntityRefFromHash constructs a reference from a raw 256-bit digest, e.g.
// the SHA-256 of a serialized artifact's bytes.
func EntityRefFromHash(h [32]byte) EntityRef { return EntityRef{hash: h} }

// EntityRefFromBytes computes the reference as the SHA-256 digest of b.
func EntityRefFromBytes(b []byte) EntityRef {
	return EntityRef{hash: sha256.Sum256(b)}
}

func (r EntityRef) IsNull() bool { return r == NullEntityRef }

func (r EntityRef) Compare(other EntityRef) int {
	for i := 0; i < 32; i++ {
		if r.hash[i] != other.hash[i] {
			if r.hash[i] < other.hash[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Hex returns the 64-lowercase-hex-char filename stem for this reference.
func (r EntityRef) Hex() string { return binary.FormatHash(r.hash) }

func (r EntityRef) String() string { return r.Hex() }

func (r EntityRef) Bytes() [32]byte { return r.hash }

func (r EntityRef) Write(w *binary.SectionWriter, key string) error {
	return w.WriteHash(key, r.hash)
}

func ReadEntityRef(r *binary.SectionReader, key string) (EntityRef, error) {
	b, err := r.ReadHash(key)
	if err != nil {
		return EntityRef{}, err
	}
	return EntityRef{hash: b}, nil
}
