package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

type stubEntity struct{ n int }

func (e *stubEntity) TypeTag() string                { return "stub" }
func (e *stubEntity) Clear()                         { e.n = 0 }
func (e *stubEntity) DeepCopyFrom(src models.Entity) { e.n = src.(*stubEntity).n }
func (e *stubEntity) Equals(other models.Entity) bool {
	o, ok := other.(*stubEntity)
	return ok && o.n == e.n
}
func (e *stubEntity) Write(w *binary.SectionWriter) error { return w.WriteInt32("N", int32(e.n)) }
func (e *stubEntity) Read(r *binary.SectionReader) error {
	v, err := r.ReadInt32("N")
	if err != nil {
		return err
	}
	e.n = int(v)
	return nil
}
func (e *stubEntity) Validate(v *models.Validator) bool { return true }

func TestInternFirstTimeVersusExisting(t *testing.T) {
	c := New()
	var hash [32]byte
	hash[0] = 1

	h1, existed := c.Intern(hash, &stubEntity{n: 1})
	require.False(t, existed)
	require.Equal(t, 1, c.Len())

	h2, existed := c.Intern(hash, &stubEntity{n: 2})
	require.True(t, existed)
	require.Same(t, h1.Entity(), h2.Entity()) // the first-interned entity wins
}

func TestLookupMissReturnsFalse(t *testing.T) {
	c := New()
	var hash [32]byte
	_, ok := c.Lookup(hash)
	require.False(t, ok)
}

func TestUnloadNonReferencedEntitiesEvictsOnlyUnreferenced(t *testing.T) {
	c := New()
	var hashA, hashB [32]byte
	hashA[0], hashB[0] = 1, 2

	handleA, _ := c.Intern(hashA, &stubEntity{n: 1})
	handleB, _ := c.Intern(hashB, &stubEntity{n: 2})
	handleB.Release() // caller doesn't want to retain hashB, same as AddEntity's pattern

	// hashB has no outstanding Handle beyond the cache's own retention;
	// hashA's handleA keeps it pinned.
	c.UnloadNonReferencedEntities()
	require.Equal(t, 1, c.Len())

	handleA.Release()
	c.UnloadNonReferencedEntities()
	require.Equal(t, 0, c.Len())
}

// TestConcurrentLookupKeepsExactlyOneEntry models scenario S6: many
// concurrent lookups of the same hash must not create duplicate entries.
func TestConcurrentLookupKeepsExactlyOneEntry(t *testing.T) {
	c := New()
	var hash [32]byte
	hash[0] = 9
	c.Intern(hash, &stubEntity{n: 1})

	var wg sync.WaitGroup
	handles := make([]*Handle, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, ok := c.Lookup(hash)
			require.True(t, ok)
			handles[i] = h
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, c.Len())
	for _, h := range handles {
		h.Release()
	}
}
