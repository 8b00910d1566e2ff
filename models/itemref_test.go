package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/storage/binary"
)

func TestItemRefNullAndOrdering(t *testing.T) {
	require.True(t, NullItemRef.IsNull())
	require.Equal(t, -1, InfItemRef.Compare(SupItemRef))

	a := NewItemRef()
	b := NewItemRef()
	require.False(t, a.IsNull())
	require.NotEqual(t, a, b)
}

func TestItemRefWriteReadRoundTrip(t *testing.T) {
	ref := NewItemRef()
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, ref.Write(sw, "id"))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	got, err := ReadItemRef(sr, "id")
	require.NoError(t, err)
	require.Equal(t, ref, got)
}
