package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSectionRoundTripScalarsAndSubsection(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	require.NoError(t, sw.WriteInt32("id", 7))
	require.NoError(t, sw.WriteString("name", "widget"))

	child, err := sw.BeginSubsection("nested")
	require.NoError(t, err)
	require.NoError(t, child.WriteBool("flag", true))
	require.NoError(t, sw.EndSubsection(child))

	require.NoError(t, sw.WriteUInt64("big", 1<<40))

	r := NewReadStream(w.Bytes(), false)
	sr := NewSectionReader(r, r.Size())
	id, err := sr.ReadInt32("id")
	require.NoError(t, err)
	require.EqualValues(t, 7, id)

	name, err := sr.ReadString("name")
	require.NoError(t, err)
	require.Equal(t, "widget", name)

	childR, isNull, err := sr.BeginSubsection("nested", true)
	require.NoError(t, err)
	require.False(t, isNull)
	flag, err := childR.ReadBool("flag")
	require.NoError(t, err)
	require.True(t, flag)
	require.NoError(t, sr.EndSubsection(childR))

	big, err := sr.ReadUInt64("big")
	require.NoError(t, err)
	require.EqualValues(t, 1<<40, big)
}

func TestSectionActiveChildBlocksParentWrites(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	_, err := sw.BeginSubsection("child")
	require.NoError(t, err)

	err = sw.WriteInt32("x", 1)
	require.ErrorIs(t, err, ErrSectionProtocol)
}

func TestNullSubsectionShortcut(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	require.NoError(t, sw.WriteNullSubsection("absent"))

	r := NewReadStream(w.Bytes(), false)
	sr := NewSectionReader(r, r.Size())
	child, isNull, err := sr.BeginSubsection("absent", true)
	require.NoError(t, err)
	require.True(t, isNull)
	require.Nil(t, child)
}

func TestNullSubsectionRejectedWhenNotAllowed(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	require.NoError(t, sw.WriteNullSubsection("absent"))

	r := NewReadStream(w.Bytes(), false)
	sr := NewSectionReader(r, r.Size())
	_, _, err := sr.BeginSubsection("absent", false)
	require.ErrorIs(t, err, ErrSectionProtocol)
}

func TestSectionsArrayTraversal(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	arr, err := sw.BeginSectionArray("items", 3)
	require.NoError(t, err)

	el0, err := arr.BeginElement(0)
	require.NoError(t, err)
	require.NoError(t, el0.WriteInt32("v", 1))
	require.NoError(t, arr.EndElement(0, el0))

	require.NoError(t, arr.WriteNullElement(1))

	el2, err := arr.BeginElement(2)
	require.NoError(t, err)
	require.NoError(t, el2.WriteInt32("v", 3))
	require.NoError(t, arr.EndElement(2, el2))

	require.NoError(t, sw.EndArray(arr))

	r := NewReadStream(w.Bytes(), false)
	sr := NewSectionReader(r, r.Size())
	ar, err := sr.BeginSectionArray("items")
	require.NoError(t, err)
	require.Equal(t, 3, ar.Count())

	c0, isNull, err := ar.BeginElement(0)
	require.NoError(t, err)
	require.False(t, isNull)
	v0, err := c0.ReadInt32("v")
	require.NoError(t, err)
	require.EqualValues(t, 1, v0)
	require.NoError(t, ar.EndElement(0, c0))

	c1, isNull, err := ar.BeginElement(1)
	require.NoError(t, err)
	require.True(t, isNull)
	require.Nil(t, c1)
	require.NoError(t, ar.EndElement(1, c1))

	c2, isNull, err := ar.BeginElement(2)
	require.NoError(t, err)
	require.False(t, isNull)
	v2, err := c2.ReadInt32("v")
	require.NoError(t, err)
	require.EqualValues(t, 3, v2)
	require.NoError(t, ar.EndElement(2, c2))

	require.NoError(t, sr.EndArray(ar))
}

// TestSectionsArrayOutOfOrderRejected covers the strict sequential
// traversal invariant: BeginElement(i) must equal the next expected index.
func TestSectionsArrayOutOfOrderRejected(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	arr, err := sw.BeginSectionArray("items", 2)
	require.NoError(t, err)

	_, err = arr.BeginElement(1)
	require.ErrorIs(t, err, ErrSectionProtocol)
}

func TestEndArrayRejectsIncompleteTraversal(t *testing.T) {
	w := NewWriteStream(0, false)
	sw := NewSectionWriter(w)
	arr, err := sw.BeginSectionArray("items", 2)
	require.NoError(t, err)
	require.NoError(t, arr.WriteNullElement(0))

	err = sw.EndArray(arr)
	require.ErrorIs(t, err, ErrSectionProtocol)
}
