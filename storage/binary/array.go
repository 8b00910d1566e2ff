package binary

import (
	"fmt"

)

const (
	flagHasIndex      = 0x0100
	flagIndex64Bit    = 0x0200 // reserved; must stay zero until a 64-bit sparse index format ships
	elemByteSizeMask  = 0x00ff
)

// ArrayPreamble is the parsed preamble of an array large block:
// array_flags, item_count, and the optional sparse index.
type ArrayPreamble struct {
	ElemByteSize uint8
	HasIndex     bool
	ItemCount    uint64
	Index        []int32
}

// BeginArrayBlock opens a large block for an array value and writes the
// array_flags/item_count/optional-index preamble. The caller writes the
// packed payload afterward and must call EndLargeBlock(w, headerStart).
func BeginArrayBlock(w *WriteStream, tag byte, key string, elemByteSize uint8, itemCount uint64, index []int32) (headerStart int, err error) {
	headerStart, err = BeginLargeBlock(w, tag, key)
	if err != nil {
		return 0, err
	}
	flags := uint16(elemByteSize) & elemByteSizeMask
	if index != nil {
		flags |= flagHasIndex
	}
	w.WriteU16(flags)
	w.WriteU64(itemCount)
	if index != nil {
		w.WriteU64(uint64(len(index)))
		for _, idx := range index {
			w.WriteI32(idx)
		}
	}
	return headerStart, nil
}

// ReadArrayPreamble reads the outer large-block header plus the array
// preamble, leaving the reader positioned at the start of the packed
// payload. wantIndex, if non-nil, asserts the on-disk has_index flag
// matches *wantIndex: the reader demands an index iff the on-disk flags
// advertise one, failing on mismatch.
func ReadArrayPreamble(r *ReadStream, tag byte, key string, wantIndex *bool) (ArrayPreamble, error) {
	if _, err := ReadLargeBlockHeader(r, tag, key); err != nil {
		return ArrayPreamble{}, err
	}
	return readArrayPreambleBody(r, wantIndex)
}

// readArrayPreambleBody reads array_flags/item_count/optional-index assuming
// the large-block header (tag/size/key) has already been consumed. Split out
// of ReadArrayPreamble so callers that must inspect the header first (to
// detect the null-array shortcut, e.g. SectionReader.ReadScalarArray) can
// reuse the same decoding without re-reading the header.
func readArrayPreambleBody(r *ReadStream, wantIndex *bool) (ArrayPreamble, error) {
	flags, err := r.ReadU16()
	if err != nil {
		return ArrayPreamble{}, err
	}
	if flags&flagIndex64Bit != 0 {
		return ArrayPreamble{}, ErrUnsupportedIndexWidth
	}
	hasIndex := flags&flagHasIndex != 0
	if wantIndex != nil && hasIndex != *wantIndex {
		return ArrayPreamble{}, fmt.Errorf("%w: array index presence mismatch", ErrSectionProtocol)
	}
	itemCount, err := r.ReadU64()
	if err != nil {
		return ArrayPreamble{}, err
	}
	pre := ArrayPreamble{
		ElemByteSize: uint8(flags & elemByteSizeMask),
		HasIndex:     hasIndex,
		ItemCount:    itemCount,
	}
	if hasIndex {
		indexCount, err := r.ReadU64()
		if err != nil {
			return pre, err
		}
		idx := make([]int32, indexCount)
		for i := range idx {
			v, err := r.ReadI32()
			if err != nil {
				return pre, err
			}
			idx[i] = v
		}
		pre.Index = idx
	}
	return pre, nil
}

// PackBoolArray packs bools 8-per-byte, little-endian within the byte; a
// length-7 array leaves the final byte's high bit 0.
func PackBoolArray(w *WriteStream, vals []bool) {
	for i := 0; i < len(vals); i += 8 {
		var b byte
		for j := 0; j < 8 && i+j < len(vals); j++ {
			if vals[i+j] {
				b |= 1 << uint(j)
			}
		}
		w.WriteU8(b)
	}
}

// UnpackBoolArray reads n packed bools.
func UnpackBoolArray(r *ReadStream, n int) ([]bool, error) {
	out := make([]bool, n)
	nBytes := (n + 7) / 8
	raw, err := r.ReadBytes(nBytes)
	if err != nil {
		return out, err
	}
	for i := 0; i < n; i++ {
		out[i] = raw[i/8]&(1<<uint(i%8)) != 0
	}
	return out, nil
}

// WriteStringArray emits a string array: per-element u64 length + UTF-8
// bytes, following the common array preamble with elemByteSize 0 (elements
// are variable-size).
func WriteStringArray(w *WriteStream, key string, vals []string, index []int32) error {
	start, err := BeginArrayBlock(w, ArrayTag(TagString), key, 0, uint64(len(vals)), index)
	if err != nil {
		return err
	}
	for _, s := range vals {
		w.WriteU64(uint64(len(s)))
		w.WriteBytes([]byte(s))
	}
	return EndLargeBlock(w, start)
}

// ReadStringArray reads a string array written by WriteStringArray.
func ReadStringArray(r *ReadStream, key string, wantIndex *bool) ([]string, []int32, error) {
	if _, err := ReadLargeBlockHeader(r, ArrayTag(TagString), key); err != nil {
		return nil, nil, err
	}
	return readStringArrayBody(r, wantIndex)
}

// readStringArrayBody reads array_flags/item_count/optional-index plus the
// packed per-element length-prefixed strings, assuming the large-block
// header has already been consumed. Split out so SectionReader can detect
// the null-array shortcut (zero-byte payload) before committing to this
// read, the same way readArrayPreambleBody serves ReadArrayPreamble.
func readStringArrayBody(r *ReadStream, wantIndex *bool) ([]string, []int32, error) {
	pre, err := readArrayPreambleBody(r, wantIndex)
	if err != nil {
		return nil, nil, err
	}
	out := make([]string, pre.ItemCount)
	for i := range out {
		n, err := r.ReadU64()
		if err != nil {
			return out, pre.Index, err
		}
		b, err := r.ReadBytes(int(n))
		if err != nil {
			return out, pre.Index, err
		}
		out[i] = string(b)
	}
	return out, pre.Index, nil
}
