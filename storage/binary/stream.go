// Package binary implements the self-describing binary wire format: byte
// streams with optional endian swap, keyed small/large blocks, typed scalar
// and array values, and nested sections. It has no knowledge of entities or
// the store; it is purely a codec layer consumed by models and collection.
package binary

import (
	"math"

	"github.com/cooolrik/pds-go/storage/pools"
)

// DefaultInitialCapacity is the write stream's default initial reservation,
// per spec: "default ~64 MiB, doubling on overflow".
const DefaultInitialCapacity = 64 * 1024 * 1024

// WriteStream is an appendable byte buffer with geometric growth. It owns
// its backing buffer; a stream made by NewPooledWriteStream releases that
// buffer back to the pool on Close, while Close does nothing for one made by
// NewWriteStream.
//
// Streams are single-threaded: a single WriteStream is owned exclusively by
// one serialization pass.
type WriteStream struct {
	buf           []byte
	pos           int
	flipByteOrder bool
	pooled        bool
}

// NewWriteStream allocates a write stream with the given initial capacity.
// capacity <= 0 selects DefaultInitialCapacity.
func NewWriteStream(capacity int, flipByteOrder bool) *WriteStream {
	if capacity <= 0 {
		capacity = DefaultInitialCapacity
	}
	return &WriteStream{
		buf:           make([]byte, 0, capacity),
		flipByteOrder: flipByteOrder,
	}
}

// NewPooledWriteStream obtains its backing buffer from storage/pools rather
// than allocating fresh; Close returns the buffer to the pool.
func NewPooledWriteStream(flipByteOrder bool) *WriteStream {
	buf := pools.GetLargeBuffer()
	return &WriteStream{
		buf:           buf.Bytes()[:0],
		flipByteOrder: flipByteOrder,
		pooled:        true,
	}
}

// Close releases the backing buffer back to the pool, if pooled. The stream
// must not be used after Close.
func (w *WriteStream) Close() {
	if w.pooled {
		pools.PutRawBuffer(w.buf)
		w.buf = nil
		w.pooled = false
	}
}

func (w *WriteStream) Position() int { return w.pos }
func (w *WriteStream) Size() int     { return len(w.buf) }
func (w *WriteStream) FlipByteOrder() bool { return w.flipByteOrder }

// Bytes returns the written byte slice. The caller must not retain it past
// the stream's lifetime when the stream is pooled.
func (w *WriteStream) Bytes() []byte { return w.buf }

// SetPosition moves the write cursor, growing the buffer with zero bytes if
// seeking past the current end.
func (w *WriteStream) SetPosition(pos int) {
	if pos > len(w.buf) {
		w.grow(pos)
		w.buf = w.buf[:pos]
	}
	w.pos = pos
}

// grow ensures capacity for at least n bytes total, doubling geometrically.
func (w *WriteStream) grow(n int) {
	if cap(w.buf) >= n {
		return
	}
	newCap := cap(w.buf)
	if newCap == 0 {
		newCap = DefaultInitialCapacity
	}
	for newCap < n {
		newCap *= 2
	}
	grown := make([]byte, len(w.buf), newCap)
	copy(grown, w.buf)
	w.buf = grown
}

// WriteBytes writes raw bytes at the current position, overwriting existing
// bytes or extending the buffer, and advances the cursor.
func (w *WriteStream) WriteBytes(p []byte) {
	end := w.pos + len(p)
	w.grow(end)
	if end > len(w.buf) {
		w.buf = w.buf[:end]
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
}

func (w *WriteStream) WriteU8(v uint8) {
	w.WriteBytes([]byte{v})
}

func (w *WriteStream) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

func (w *WriteStream) WriteU16(v uint16) {
	if w.flipByteOrder {
		v = swapU16(v)
	}
	w.WriteBytes([]byte{byte(v), byte(v >> 8)})
}

func (w *WriteStream) WriteU32(v uint32) {
	if w.flipByteOrder {
		v = swapU32(v)
	}
	w.WriteBytes([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (w *WriteStream) WriteU64(v uint64) {
	if w.flipByteOrder {
		v = swapU64(v)
	}
	w.WriteBytes([]byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	})
}

func (w *WriteStream) WriteI8(v int8)   { w.WriteU8(uint8(v)) }
func (w *WriteStream) WriteI16(v int16) { w.WriteU16(uint16(v)) }
func (w *WriteStream) WriteI32(v int32) { w.WriteU32(uint32(v)) }
func (w *WriteStream) WriteI64(v int64) { w.WriteU64(uint64(v)) }

func (w *WriteStream) WriteFloat32(v float32) { w.WriteU32(math.Float32bits(v)) }
func (w *WriteStream) WriteFloat64(v float64) { w.WriteU64(math.Float64bits(v)) }

// WriteUUID writes a 16-byte UUID raw, in its canonical big-endian byte
// order; UUIDs are never subject to flip_byte_order.
func (w *WriteStream) WriteUUID(v [16]byte) { w.WriteBytes(v[:]) }

// WriteHash writes a 32-byte hash raw; never subject to flip_byte_order.
func (w *WriteStream) WriteHash(v [32]byte) { w.WriteBytes(v[:]) }

// ReadStream is a borrowed, read-only view over a byte range. It never
// owns or releases the underlying slice.
type ReadStream struct {
	data          []byte
	pos           int
	flipByteOrder bool
}

// NewReadStream wraps data (not copied) for sequential reading.
func NewReadStream(data []byte, flipByteOrder bool) *ReadStream {
	return &ReadStream{data: data, flipByteOrder: flipByteOrder}
}

func (r *ReadStream) Position() int        { return r.pos }
func (r *ReadStream) Size() int            { return len(r.data) }
func (r *ReadStream) FlipByteOrder() bool  { return r.flipByteOrder }
func (r *ReadStream) Remaining() int       { return len(r.data) - r.pos }

// Peek returns the byte at the current position without advancing, or 0 if
// at or past end of stream.
func (r *ReadStream) Peek() byte {
	if r.pos >= len(r.data) {
		return 0
	}
	return r.data[r.pos]
}

// SetPosition moves the read cursor; it is an error to seek past the end of
// the stream's data (unlike WriteStream, a ReadStream cannot grow).
func (r *ReadStream) SetPosition(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return ErrShortRead
	}
	r.pos = pos
	return nil
}

// ReadBytes reads n bytes, returning fewer than n (a short read, count
// reflects bytes actually consumed) if the stream runs out of data; higher
// layers treat short reads as errors.
func (r *ReadStream) ReadBytes(n int) ([]byte, error) {
	avail := len(r.data) - r.pos
	if avail < 0 {
		avail = 0
	}
	count := n
	if count > avail {
		count = avail
	}
	out := r.data[r.pos : r.pos+count]
	r.pos += count
	if count < n {
		return out, ErrShortRead
	}
	return out, nil
}

func (r *ReadStream) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ReadStream) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

func (r *ReadStream) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	v := uint16(b[0]) | uint16(b[1])<<8
	if r.flipByteOrder {
		v = swapU16(v)
	}
	return v, nil
}

func (r *ReadStream) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	if r.flipByteOrder {
		v = swapU32(v)
	}
	return v, nil
}

func (r *ReadStream) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	v := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	if r.flipByteOrder {
		v = swapU64(v)
	}
	return v, nil
}

func (r *ReadStream) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}
func (r *ReadStream) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}
func (r *ReadStream) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}
func (r *ReadStream) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *ReadStream) ReadFloat32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

func (r *ReadStream) ReadFloat64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// ReadUUID reads a raw 16-byte UUID, never byte-swapped.
func (r *ReadStream) ReadUUID() ([16]byte, error) {
	var out [16]byte
	b, err := r.ReadBytes(16)
	copy(out[:], b)
	return out, err
}

// ReadHash reads a raw 32-byte hash, never byte-swapped.
func (r *ReadStream) ReadHash() ([32]byte, error) {
	var out [32]byte
	b, err := r.ReadBytes(32)
	copy(out[:], b)
	return out, err
}
