package binary

import (
	"fmt"

)

// SectionReader is the read-side counterpart of SectionWriter, enforcing
// the same single-active-subsection and array-traversal discipline on
// decode.
type SectionReader struct {
	r            *ReadStream
	activeChild  bool
	bodyEnd      int // absolute stream position where this section's payload ends
	parent       *SectionReader
	arrayParent  *SectionArrayReader
}

// NewSectionReader wraps a stream positioned at the start of a top-level
// section body; bodyEnd should be r.Size() for a whole-buffer read.
func NewSectionReader(r *ReadStream, bodyEnd int) *SectionReader {
	return &SectionReader{r: r, bodyEnd: bodyEnd}
}

func (s *SectionReader) checkIdle() error {
	if s.activeChild {
		return fmt.Errorf("%w: parent section has an active subsection open", ErrSectionProtocol)
	}
	return nil
}

func (s *SectionReader) ReadBool(key string) (bool, error) {
	if err := s.checkIdle(); err != nil {
		return false, err
	}
	payload, err := ReadScalarBlock(s.r, TagBool, key, 1)
	if err != nil {
		return false, err
	}
	return payload[0] != 0, nil
}

func (s *SectionReader) ReadInt32(key string) (int32, error) {
	if err := s.checkIdle(); err != nil {
		return 0, err
	}
	payload, err := ReadScalarBlock(s.r, TagInt32, key, 4)
	if err != nil {
		return 0, err
	}
	v := uint32(payload[0]) | uint32(payload[1])<<8 | uint32(payload[2])<<16 | uint32(payload[3])<<24
	if s.r.flipByteOrder {
		v = swapU32(v)
	}
	return int32(v), nil
}

func (s *SectionReader) ReadUInt64(key string) (uint64, error) {
	if err := s.checkIdle(); err != nil {
		return 0, err
	}
	payload, err := ReadScalarBlock(s.r, TagUInt64, key, 8)
	if err != nil {
		return 0, err
	}
	v := uint64(payload[0]) | uint64(payload[1])<<8 | uint64(payload[2])<<16 | uint64(payload[3])<<24 |
		uint64(payload[4])<<32 | uint64(payload[5])<<40 | uint64(payload[6])<<48 | uint64(payload[7])<<56
	if s.r.flipByteOrder {
		v = swapU64(v)
	}
	return v, nil
}

func (s *SectionReader) ReadString(key string) (string, error) {
	if err := s.checkIdle(); err != nil {
		return "", err
	}
	return ReadStringBlock(s.r, key)
}

func (s *SectionReader) ReadHash(key string) ([32]byte, error) {
	var out [32]byte
	if err := s.checkIdle(); err != nil {
		return out, err
	}
	payload, err := ReadScalarBlock(s.r, TagHash, key, 32)
	if err != nil {
		return out, err
	}
	copy(out[:], payload)
	return out, nil
}

func (s *SectionReader) ReadUUID(key string) ([16]byte, error) {
	var out [16]byte
	if err := s.checkIdle(); err != nil {
		return out, err
	}
	payload, err := ReadScalarBlock(s.r, TagUUID, key, 16)
	if err != nil {
		return out, err
	}
	copy(out[:], payload)
	return out, nil
}

// BeginSubsection opens and returns a reader scoped to the named child
// subsection's body, or (nil, true, nil) if the on-disk frame is the null
// section shortcut and allowNull is true.
func (s *SectionReader) BeginSubsection(key string, allowNull bool) (child *SectionReader, isNull bool, err error) {
	if err := s.checkIdle(); err != nil {
		return nil, false, err
	}
	hdr, err := ReadLargeBlockHeader(s.r, TagSubsection, key)
	if err != nil {
		return nil, false, err
	}
	if hdr.PayloadLen == 0 {
		if !allowNull {
			return nil, false, fmt.Errorf("%w: null subsection %q not permitted here", ErrSectionProtocol, key)
		}
		return nil, true, nil
	}
	s.activeChild = true
	bodyEnd := s.r.Position() + hdr.PayloadLen
	return &SectionReader{r: s.r, bodyEnd: bodyEnd, parent: s}, false, nil
}

// EndSubsection closes a child opened by BeginSubsection, asserting it was
// fully consumed and restoring the parent to idle.
func (s *SectionReader) EndSubsection(child *SectionReader) error {
	if child.parent != s || !s.activeChild {
		return fmt.Errorf("%w: EndSubsection called out of order", ErrSectionProtocol)
	}
	if err := child.checkIdle(); err != nil {
		return err
	}
	if s.r.Position() != child.bodyEnd {
		return fmt.Errorf("%w: subsection body not fully consumed (at %d, expected %d)", ErrSectionProtocol, s.r.Position(), child.bodyEnd)
	}
	s.activeChild = false
	return nil
}

// SectionArrayReader is the read-side counterpart of SectionArrayWriter,
// enforcing begin_array -> {begin_element(i) -> ... -> end_element(i)} ->
// end_array with i covering [0, count) strictly increasing by one.
type SectionArrayReader struct {
	r      *ReadStream
	count  int
	next   int
	parent *SectionReader
}

// BeginSectionArray opens a sections-array under key and returns its
// declared element count.
func (s *SectionReader) BeginSectionArray(key string) (*SectionArrayReader, error) {
	if err := s.checkIdle(); err != nil {
		return nil, err
	}
	pre, err := ReadArrayPreamble(s.r, TagArraySubsection, key, nil)
	if err != nil {
		return nil, err
	}
	s.activeChild = true
	return &SectionArrayReader{r: s.r, count: int(pre.ItemCount), parent: s}, nil
}

func (a *SectionArrayReader) Count() int { return a.count }

// BeginElement opens slot i (must equal the next expected index), or
// returns (nil, true, nil) if the slot is the null-section shortcut.
func (a *SectionArrayReader) BeginElement(i int) (child *SectionReader, isNull bool, err error) {
	if i != a.next || i >= a.count {
		return nil, false, fmt.Errorf("%w: BeginElement(%d) out of sequence (expected %d of %d)", ErrSectionProtocol, i, a.next, a.count)
	}
	hdr, err := ReadLargeBlockHeader(a.r, TagSubsection, "")
	if err != nil {
		return nil, false, err
	}
	if hdr.PayloadLen == 0 {
		return nil, true, nil
	}
	bodyEnd := a.r.Position() + hdr.PayloadLen
	return &SectionReader{r: a.r, bodyEnd: bodyEnd, arrayParent: a}, false, nil
}

// EndElement closes slot i opened by BeginElement and advances the cursor.
func (a *SectionArrayReader) EndElement(i int, child *SectionReader) error {
	if i != a.next {
		return fmt.Errorf("%w: EndElement(%d) out of sequence", ErrSectionProtocol, i)
	}
	if child != nil {
		if err := child.checkIdle(); err != nil {
			return err
		}
		if a.r.Position() != child.bodyEnd {
			return fmt.Errorf("%w: element %d body not fully consumed", ErrSectionProtocol, i)
		}
	}
	a.next++
	return nil
}

// EndArray closes the array, asserting every slot in [0, count) was visited.
func (s *SectionReader) EndArray(a *SectionArrayReader) error {
	if a.parent != s || a.next != a.count {
		return fmt.Errorf("%w: EndArray before all %d elements read (got %d)", ErrSectionProtocol, a.count, a.next)
	}
	s.activeChild = false
	return nil
}
