package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/storage/binary"
)

func roundTripVarying(t *testing.T, v Varying) Varying {
	t.Helper()
	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, v.Write(sw, "v"))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	got, err := ReadVarying(sr, "v")
	require.NoError(t, err)
	return got
}

func TestVaryingSingleScalarRoundTrip(t *testing.T) {
	v := SetData(ScalarInt32, ContainerSingle, int32(42))
	got := roundTripVarying(t, v)
	require.Equal(t, ScalarInt32, got.ScalarKind())
	require.Equal(t, ContainerSingle, got.ContainerKind())
	out, ok := Data[int32](got)
	require.True(t, ok)
	require.EqualValues(t, 42, out)
	require.True(t, v.Equals(got))
}

func TestVaryingOptionalScalarAbsent(t *testing.T) {
	v := SetData[*int32](ScalarInt32, ContainerOptional, nil)
	got := roundTripVarying(t, v)
	out, ok := Data[*int32](got)
	require.True(t, ok)
	require.Nil(t, out)
}

func TestVaryingOptionalScalarPresent(t *testing.T) {
	n := int32(7)
	v := SetData(ScalarInt32, ContainerOptional, &n)
	got := roundTripVarying(t, v)
	out, ok := Data[*int32](got)
	require.True(t, ok)
	require.NotNil(t, out)
	require.EqualValues(t, 7, *out)
}

func TestVaryingVectorRoundTrip(t *testing.T) {
	v := SetData(ScalarFloat, ContainerVector, []float32{1, 2, 3.5})
	got := roundTripVarying(t, v)
	out, ok := Data[[]float32](got)
	require.True(t, ok)
	require.Equal(t, []float32{1, 2, 3.5}, out)
}

func TestVaryingOptionalVectorAbsent(t *testing.T) {
	v := SetData[[]float32](ScalarFloat, ContainerOptionalVector, nil)
	got := roundTripVarying(t, v)
	out, ok := Data[[]float32](got)
	require.True(t, ok)
	require.Nil(t, out)
}

func TestVaryingIndexedVectorRoundTrip(t *testing.T) {
	iv := IndexedVector[int32]{Values: []int32{9, 8}, Index: []int32{2, 5}}
	v := SetData(ScalarInt32, ContainerIndexedVector, iv)
	got := roundTripVarying(t, v)
	out, ok := Data[IndexedVector[int32]](got)
	require.True(t, ok)
	require.Equal(t, iv.Values, out.Values)
	require.Equal(t, iv.Index, out.Index)
}

func TestVaryingStringVectorRoundTrip(t *testing.T) {
	v := SetData(ScalarString, ContainerVector, []string{"a", "", "ccc"})
	got := roundTripVarying(t, v)
	out, ok := Data[[]string](got)
	require.True(t, ok)
	require.Equal(t, []string{"a", "", "ccc"}, out)
}

func TestVaryingCopyIsIndependent(t *testing.T) {
	v := SetData(ScalarInt32, ContainerVector, []int32{1, 2, 3})
	cp := v.Copy()
	original, _ := Data[[]int32](v)
	original[0] = 99
	copied, _ := Data[[]int32](cp)
	require.EqualValues(t, 1, copied[0])
}

func TestVaryingUnregisteredPairErrors(t *testing.T) {
	_, err := NewVarying(ScalarString, ContainerIndexedVector+0x7f)
	require.Error(t, err)
}
