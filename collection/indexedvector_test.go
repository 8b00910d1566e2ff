package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

func TestIndexedVectorRoundTrip(t *testing.T) {
	iv := IndexedVector[int32]{Values: []int32{10, 20}, Index: []int32{1, 4}}
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, WriteIndexedVector(sw, "iv", models.ScalarInt32, iv))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	out, err := ReadIndexedVector[int32](sr, "iv", models.ScalarInt32)
	require.NoError(t, err)
	require.Equal(t, iv.Values, out.Values)
	require.Equal(t, iv.Index, out.Index)
}

func TestIndexedVectorEmptyRoundTrip(t *testing.T) {
	iv := IndexedVector[int32]{}
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, WriteIndexedVector(sw, "iv", models.ScalarInt32, iv))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	out, err := ReadIndexedVector[int32](sr, "iv", models.ScalarInt32)
	require.NoError(t, err)
	require.Empty(t, out.Values)
	require.Empty(t, out.Index)
}

func TestOptionalIndexedVectorAbsentAndPresent(t *testing.T) {
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, WriteOptionalIndexedVector[int32](sw, "a", models.ScalarInt32, nil))
	iv := &IndexedVector[int32]{Values: []int32{5}, Index: []int32{0}}
	require.NoError(t, WriteOptionalIndexedVector(sw, "b", models.ScalarInt32, iv))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	gotA, err := ReadOptionalIndexedVector[int32](sr, "a", models.ScalarInt32)
	require.NoError(t, err)
	require.Nil(t, gotA)

	gotB, err := ReadOptionalIndexedVector[int32](sr, "b", models.ScalarInt32)
	require.NoError(t, err)
	require.NotNil(t, gotB)
	require.Equal(t, iv.Values, gotB.Values)
}
