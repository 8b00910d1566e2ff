package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadStreamRoundTrip(t *testing.T) {
	w := NewWriteStream(0, false)
	w.WriteBool(true)
	w.WriteI32(42)
	w.WriteU64(1<<63 | 7)
	w.WriteFloat32(3.5)
	w.WriteFloat64(-2.25)

	r := NewReadStream(w.Bytes(), false)
	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	i, err := r.ReadI32()
	require.NoError(t, err)
	require.EqualValues(t, 42, i)

	u, err := r.ReadU64()
	require.NoError(t, err)
	require.EqualValues(t, 1<<63|7, u)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, -2.25, f64)
}

// TestFlipByteOrderMismatch exercises scenario S1: a writer with
// flip_byte_order=true encodes int32 42 as big-endian bytes; a reader that
// does not also flip decodes those same bytes as 0x2A000000.
func TestFlipByteOrderMismatch(t *testing.T) {
	w := NewWriteStream(0, true)
	w.WriteI32(42)

	r := NewReadStream(w.Bytes(), false)
	v, err := r.ReadI32()
	require.NoError(t, err)
	require.EqualValues(t, 0x2A000000, v)

	// A reader that matches the writer's flip setting recovers the value.
	r2 := NewReadStream(w.Bytes(), true)
	v2, err := r2.ReadI32()
	require.NoError(t, err)
	require.EqualValues(t, 42, v2)
}

func TestWriteStreamGrowsGeometrically(t *testing.T) {
	w := NewWriteStream(1, false)
	for i := 0; i < 1000; i++ {
		w.WriteU8(byte(i))
	}
	require.Equal(t, 1000, w.Size())
	for i := 0; i < 1000; i++ {
		require.Equal(t, byte(i), w.Bytes()[i])
	}
}

func TestReadStreamShortRead(t *testing.T) {
	r := NewReadStream([]byte{1, 2}, false)
	_, err := r.ReadU32()
	require.ErrorIs(t, err, ErrShortRead)
}

func TestPooledWriteStreamClose(t *testing.T) {
	w := NewPooledWriteStream(false)
	w.WriteU8(9)
	require.Equal(t, 1, w.Size())
	w.Close()
}
