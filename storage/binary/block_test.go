package binary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmallBlockRoundTrip(t *testing.T) {
	w := NewWriteStream(0, false)
	require.NoError(t, WriteSmallBlock(w, TagInt32, "x", []byte{1, 2, 3, 4}))

	r := NewReadStream(w.Bytes(), false)
	tag, size, err := ReadSmallBlockTagSize(r, TagInt32)
	require.NoError(t, err)
	require.Equal(t, byte(TagInt32), tag)
	require.Equal(t, 5, size) // 4-byte payload + 1-byte key

	payload, err := r.ReadBytes(4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, payload)

	key, err := ReadSmallBlockKey(r, size, 4, "x")
	require.NoError(t, err)
	require.Equal(t, "x", key)
}

func TestSmallBlockKeyLengthBoundary(t *testing.T) {
	// A 40-byte key is permitted (MaxKeyLen).
	key40 := strings.Repeat("k", MaxKeyLen)
	w := NewWriteStream(0, false)
	require.NoError(t, WriteSmallBlock(w, TagBool, key40, []byte{1}))

	// A 41-byte key is rejected.
	key41 := strings.Repeat("k", MaxKeyLen+1)
	w2 := NewWriteStream(0, false)
	err := WriteSmallBlock(w2, TagBool, key41, []byte{1})
	require.ErrorIs(t, err, ErrInvalidKeyLength)

	// A zero-length key is permitted.
	w3 := NewWriteStream(0, false)
	require.NoError(t, WriteSmallBlock(w3, TagBool, "", []byte{1}))
}

func TestLargeBlockCanaryRewrite(t *testing.T) {
	w := NewWriteStream(0, false)
	start, err := BeginLargeBlock(w, TagString, "name")
	require.NoError(t, err)
	w.WriteU64(5)
	w.WriteBytes([]byte("hello"))
	require.NoError(t, EndLargeBlock(w, start))

	r := NewReadStream(w.Bytes(), false)
	hdr, err := ReadLargeBlockHeader(r, TagString, "name")
	require.NoError(t, err)
	require.Equal(t, "name", hdr.Key)
	require.Equal(t, 8+5, hdr.PayloadLen) // u64 char_count + 5 bytes
}

func TestLargeBlockZeroPayloadIsNullShortcut(t *testing.T) {
	w := NewWriteStream(0, false)
	start, err := BeginLargeBlock(w, TagSubsection, "child")
	require.NoError(t, err)
	require.NoError(t, EndLargeBlock(w, start))

	r := NewReadStream(w.Bytes(), false)
	hdr, err := ReadLargeBlockHeader(r, TagSubsection, "child")
	require.NoError(t, err)
	require.Equal(t, 0, hdr.PayloadLen)
}

func TestStringBlockRoundTrip(t *testing.T) {
	w := NewWriteStream(0, false)
	require.NoError(t, WriteStringBlock(w, "s", "hello, world"))

	r := NewReadStream(w.Bytes(), false)
	got, err := ReadStringBlock(r, "s")
	require.NoError(t, err)
	require.Equal(t, "hello, world", got)
}

func TestStringBlockEmbeddedNUL(t *testing.T) {
	value := "a\x00b\x00c"
	w := NewWriteStream(0, false)
	require.NoError(t, WriteStringBlock(w, "s", value))

	r := NewReadStream(w.Bytes(), false)
	got, err := ReadStringBlock(r, "s")
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestReadSmallBlockKeyMismatch(t *testing.T) {
	w := NewWriteStream(0, false)
	require.NoError(t, WriteSmallBlock(w, TagBool, "expected", []byte{1}))

	r := NewReadStream(w.Bytes(), false)
	_, size, err := ReadSmallBlockTagSize(r, TagBool)
	require.NoError(t, err)
	_, err = r.ReadBytes(1)
	require.NoError(t, err)
	_, err = ReadSmallBlockKey(r, size, 1, "other")
	require.ErrorIs(t, err, ErrSectionProtocol)
}
