package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayPreambleRoundTripDenseNoIndex(t *testing.T) {
	vals := []int32{10, 20, 30}
	w := NewWriteStream(0, false)
	start, err := BeginArrayBlock(w, ArrayTag(TagInt32), "v", 4, uint64(len(vals)), nil)
	require.NoError(t, err)
	PackInt32s(w, vals)
	require.NoError(t, EndLargeBlock(w, start))

	r := NewReadStream(w.Bytes(), false)
	noIndex := false
	pre, err := ReadArrayPreamble(r, ArrayTag(TagInt32), "v", &noIndex)
	require.NoError(t, err)
	require.False(t, pre.HasIndex)
	require.EqualValues(t, 3, pre.ItemCount)

	out, err := UnpackInt32s(r, int(pre.ItemCount))
	require.NoError(t, err)
	require.Equal(t, vals, out)
}

func TestArrayPreambleSparseIndex(t *testing.T) {
	index := []int32{0, 3, 7}
	vals := []int32{1, 2, 3}
	w := NewWriteStream(0, false)
	start, err := BeginArrayBlock(w, ArrayTag(TagInt32), "iv", 4, uint64(len(vals)), index)
	require.NoError(t, err)
	PackInt32s(w, vals)
	require.NoError(t, EndLargeBlock(w, start))

	r := NewReadStream(w.Bytes(), false)
	wantIndex := true
	pre, err := ReadArrayPreamble(r, ArrayTag(TagInt32), "iv", &wantIndex)
	require.NoError(t, err)
	require.True(t, pre.HasIndex)
	require.Equal(t, index, pre.Index)

	out, err := UnpackInt32s(r, int(pre.ItemCount))
	require.NoError(t, err)
	require.Equal(t, vals, out)
}

// TestArrayIndexPresenceMismatch checks that the reader demands an index
// iff the on-disk flags advertise one.
func TestArrayIndexPresenceMismatch(t *testing.T) {
	w := NewWriteStream(0, false)
	start, err := BeginArrayBlock(w, ArrayTag(TagInt32), "v", 4, 1, nil)
	require.NoError(t, err)
	PackInt32s(w, []int32{1})
	require.NoError(t, EndLargeBlock(w, start))

	r := NewReadStream(w.Bytes(), false)
	wantIndex := true
	_, err = ReadArrayPreamble(r, ArrayTag(TagInt32), "v", &wantIndex)
	require.ErrorIs(t, err, ErrSectionProtocol)
}

func TestBoolArrayPacksEightPerByte(t *testing.T) {
	// Length 7 leaves the final byte's high bit unset (boundary case).
	vals := []bool{true, false, true, false, true, false, true}
	w := NewWriteStream(0, false)
	PackBoolArray(w, vals)
	require.Equal(t, 1, w.Size())
	require.Equal(t, byte(0b01010101), w.Bytes()[0]) // bits 0,2,4,6 set; bit 7 unset (only 7 elements)

	r := NewReadStream(w.Bytes(), false)
	out, err := UnpackBoolArray(r, len(vals))
	require.NoError(t, err)
	require.Equal(t, vals, out)
}

func TestStringArrayRoundTrip(t *testing.T) {
	vals := []string{"alpha", "", "gamma"}
	w := NewWriteStream(0, false)
	require.NoError(t, WriteStringArray(w, "strs", vals, nil))

	r := NewReadStream(w.Bytes(), false)
	noIndex := false
	out, idx, err := ReadStringArray(r, "strs", &noIndex)
	require.NoError(t, err)
	require.Nil(t, idx)
	require.Equal(t, vals, out)
}

func TestReservedIndexWidthBitRejected(t *testing.T) {
	w := NewWriteStream(0, false)
	start, err := BeginLargeBlock(w, ArrayTag(TagInt32), "v")
	require.NoError(t, err)
	w.WriteU16(flagIndex64Bit)
	w.WriteU64(0)
	require.NoError(t, EndLargeBlock(w, start))

	r := NewReadStream(w.Bytes(), false)
	_, err = ReadArrayPreamble(r, ArrayTag(TagInt32), "v", nil)
	require.ErrorIs(t, err, ErrUnsupportedIndexWidth)
}
