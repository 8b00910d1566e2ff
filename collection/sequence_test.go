package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

func TestVectorRoundTrip(t *testing.T) {
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, WriteVector(sw, "v", models.ScalarInt32, []int32{1, 2, 3}))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	out, err := ReadVector[int32](sr, "v", models.ScalarInt32)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, out)
}

func TestOptionalVectorAbsentRoundTrip(t *testing.T) {
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, WriteOptionalVector[int32](sw, "v", models.ScalarInt32, nil))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	out, err := ReadOptionalVector[int32](sr, "v", models.ScalarInt32)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestReadVectorRejectsScalarKindMismatch(t *testing.T) {
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, WriteVector(sw, "v", models.ScalarInt32, []int32{1}))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	_, err := ReadVector[float32](sr, "v", models.ScalarFloat)
	require.ErrorIs(t, err, models.ErrCorrupted)
}

func TestValidateIndexedVectorRejectsOutOfBoundsIndex(t *testing.T) {
	var v models.Validator
	iv := IndexedVector[int32]{Values: []int32{1, 2}, Index: []int32{0, 5}}
	ok := ValidateIndexedVector(iv, &v, "Field")
	require.False(t, ok)
	require.True(t, v.HasKind(models.InvalidValue))
}

func TestValidateIndexedVectorEmptyIsValid(t *testing.T) {
	var v models.Validator
	iv := IndexedVector[int32]{}
	ok := ValidateIndexedVector(iv, &v, "Field")
	require.True(t, ok)
	require.True(t, v.Ok())
}
