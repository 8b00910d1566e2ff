package binary

import (
	"fmt"

)

// Value type tags. The small-block tags below occupy 0x01-0x13 (models
// allocates the remaining fixed-size scalar tags from 0x14 on) and the
// array forms of each set bit 0x40; Subsection/
// ArraySubsection/String/ArrayString occupy the high range. Values are
// pinned to a fixed ValueType enum so on-disk data remains stable across versions.
const (
	TagBool       = 0x01
	TagInt8       = 0x02
	TagUInt8      = 0x03
	TagInt16      = 0x04
	TagUInt16     = 0x05
	TagInt32      = 0x06
	TagUInt32     = 0x07
	TagInt64      = 0x08
	TagUInt64     = 0x09
	TagFloat      = 0x0a
	TagDouble     = 0x0b
	TagVec2       = 0x0c
	TagVec3       = 0x0d
	TagVec4       = 0x0e
	TagIVec2      = 0x0f
	TagIVec3      = 0x10
	TagIVec4      = 0x11
	TagUUID       = 0x12
	TagHash       = 0x13

	arrayTagBit = 0x40

	TagSubsection      = 0xd0
	TagArraySubsection = 0xd1
	TagString          = 0xe0
	TagArrayString     = 0xe1
)

// ArrayTag returns the array-form tag for a given small-block scalar tag.
func ArrayTag(scalarTag byte) byte { return scalarTag | arrayTagBit }

// IsLargeBlockTag reports whether tag belongs to the large-block range
// (tag >= 0x40).
func IsLargeBlockTag(tag byte) bool { return tag >= arrayTagBit }

// WriteSmallBlock writes a small block: tag, block_size (payload+key),
// payload, then key bytes. payload + len(key) must be <= 255.
func WriteSmallBlock(w *WriteStream, tag byte, key string, payload []byte) error {
	if len(key) > MaxKeyLen {
		return ErrInvalidKeyLength
	}
	size := len(payload) + len(key)
	if size > 255 {
		return fmt.Errorf("small block payload+key %d exceeds 255 bytes", size)
	}
	w.WriteU8(tag)
	w.WriteU8(uint8(size))
	w.WriteBytes(payload)
	w.WriteBytes([]byte(key))
	return nil
}

// WriteSmallBlockStreamed writes a small block whose payload is emitted by
// writePayload using the stream's own typed writes (so multi-byte
// components are subject to the stream's flip_byte_order flag) rather than
// being pre-packed into a []byte. payloadLen must equal the exact number of
// bytes writePayload will write.
func WriteSmallBlockStreamed(w *WriteStream, tag byte, key string, payloadLen int, writePayload func()) error {
	if len(key) > MaxKeyLen {
		return ErrInvalidKeyLength
	}
	size := payloadLen + len(key)
	if size > 255 {
		return fmt.Errorf("small block payload+key %d exceeds 255 bytes", size)
	}
	w.WriteU8(tag)
	w.WriteU8(uint8(size))
	writePayload()
	w.WriteBytes([]byte(key))
	return nil
}

// ReadSmallBlockStreamed reads a small block's tag/size, invokes
// readPayload to consume exactly payloadLen bytes via the stream's own
// typed reads, then reads and validates the key.
func ReadSmallBlockStreamed(r *ReadStream, tag byte, key string, payloadLen int, readPayload func() error) error {
	_, size, err := ReadSmallBlockTagSize(r, tag)
	if err != nil {
		return err
	}
	if size < payloadLen {
		return ErrInvalidKeyLength
	}
	if err := readPayload(); err != nil {
		return err
	}
	_, err = ReadSmallBlockKey(r, size, payloadLen, key)
	return err
}

// largeBlockFixedHeader is the byte count of a large block's fixed header
// fields (tag, block_size, key_len), not counting the variable-length key.
const largeBlockFixedHeader = 1 + 8 + 1 // tag + u64 size + key_len

// BeginLargeBlock writes the tag, a canary block_size placeholder, key_len
// and key bytes, and returns the stream offset of the block_size field so
// the caller can rewrite it via EndLargeBlock once the payload is known.
func BeginLargeBlock(w *WriteStream, tag byte, key string) (headerStart int, err error) {
	if len(key) > MaxKeyLen {
		return 0, ErrInvalidKeyLength
	}
	w.WriteU8(tag)
	sizeFieldPos := w.Position()
	w.WriteU64(0xFFFFFFFFFFFFFFFF) // canary sentinel, rewritten on close
	w.WriteU8(uint8(len(key)))
	w.WriteBytes([]byte(key))
	return sizeFieldPos, nil
}

// EndLargeBlock rewrites the block_size placeholder at headerStart with the
// number of bytes written since the field. Writing reserves the block_size
// slot as a canary; closing verifies the stream advanced past headerStart.
func EndLargeBlock(w *WriteStream, headerStart int) error {
	end := w.Position()
	if end <= headerStart {
		return ErrSectionProtocol
	}
	size := uint64(end - headerStart - 8) // bytes following the size field
	saved := w.pos
	w.SetPosition(headerStart)
	w.WriteU64(size)
	w.pos = saved
	return nil
}

// ReadSmallBlockTagSize reads a small block's tag and block_size (the
// combined payload+key byte count). expectedTag == 0 disables the tag
// check (used by dynamic dispatch, which reads the tag itself to decide
// which reader to invoke).
func ReadSmallBlockTagSize(r *ReadStream, expectedTag byte) (tag byte, size int, err error) {
	tag, err = r.ReadU8()
	if err != nil {
		return 0, 0, err
	}
	if expectedTag != 0 && tag != expectedTag {
		return 0, 0, fmt.Errorf("%w: expected tag 0x%02x got 0x%02x", ErrSectionProtocol, expectedTag, tag)
	}
	sz, err := r.ReadU8()
	if err != nil {
		return 0, 0, err
	}
	return tag, int(sz), nil
}

// ReadSmallBlockKey reads the key bytes following a fixed-size payload that
// has already been consumed, validating the implicit key length
// (size - payloadLen) and, if expectedKey is non-empty, key identity.
func ReadSmallBlockKey(r *ReadStream, size, payloadLen int, expectedKey string) (string, error) {
	keyLen := size - payloadLen
	if keyLen < 0 || keyLen > MaxKeyLen {
		return "", ErrInvalidKeyLength
	}
	keyBytes, err := r.ReadBytes(keyLen)
	if err != nil {
		return "", err
	}
	key := string(keyBytes)
	if expectedKey != "" && key != expectedKey {
		return "", fmt.Errorf("%w: expected key %q got %q", ErrSectionProtocol, expectedKey, key)
	}
	return key, nil
}

// LargeBlockHeader is the parsed header of a large block.
type LargeBlockHeader struct {
	Tag        byte
	PayloadLen int
	Key        string
}

// ReadLargeBlockHeader reads tag, block_size, key_len and key, validating
// key length and, if expectedKey is non-empty, key identity.
func ReadLargeBlockHeader(r *ReadStream, expectedTag byte, expectedKey string) (LargeBlockHeader, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return LargeBlockHeader{}, err
	}
	if expectedTag != 0 && tag != expectedTag {
		return LargeBlockHeader{}, fmt.Errorf("%w: expected tag 0x%02x got 0x%02x", ErrSectionProtocol, expectedTag, tag)
	}
	size, err := r.ReadU64()
	if err != nil {
		return LargeBlockHeader{}, err
	}
	keyLen, err := r.ReadU8()
	if err != nil {
		return LargeBlockHeader{}, err
	}
	if int(keyLen) > MaxKeyLen {
		return LargeBlockHeader{}, ErrInvalidKeyLength
	}
	keyBytes, err := r.ReadBytes(int(keyLen))
	if err != nil {
		return LargeBlockHeader{}, err
	}
	key := string(keyBytes)
	if expectedKey != "" && key != expectedKey {
		return LargeBlockHeader{}, fmt.Errorf("%w: expected key %q got %q", ErrSectionProtocol, expectedKey, key)
	}
	payloadLen := int(size) - 1 - int(keyLen) // size counts key_len + key + payload
	if payloadLen < 0 || r.Position()+payloadLen > r.Size() {
		return LargeBlockHeader{}, fmt.Errorf("%w: declared block size out of stream bounds", ErrSectionProtocol)
	}
	return LargeBlockHeader{Tag: tag, PayloadLen: payloadLen, Key: key}, nil
}
