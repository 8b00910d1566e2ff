package binary

import (
	"fmt"

)

// SectionWriter frames a sequence of keyed blocks (an entity body, or a
// nested subsection's body) onto a shared WriteStream. At most one child
// subsection may be open at a time -- a single-slot "active subsection" on
// each cursor -- and writes through the parent are refused while a child
// is open.
type SectionWriter struct {
	w           *WriteStream
	activeChild bool

	// headerStart/parent/arrayParent are set when this SectionWriter is a
	// child produced by BeginSubsection/BeginElement; nil/zero for a
	// top-level writer constructed by NewSectionWriter.
	headerStart int
	parent      *SectionWriter
	arrayParent *SectionArrayWriter
}

// NewSectionWriter wraps a stream for emitting a top-level section body.
func NewSectionWriter(w *WriteStream) *SectionWriter {
	return &SectionWriter{w: w}
}

func (s *SectionWriter) checkIdle() error {
	if s.activeChild {
		return fmt.Errorf("%w: parent section has an active subsection open", ErrSectionProtocol)
	}
	return nil
}

func (s *SectionWriter) WriteBool(key string, v bool) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	b := byte(0)
	if v {
		b = 1
	}
	return WriteScalarBlock(s.w, TagBool, key, []byte{b})
}

func (s *SectionWriter) WriteInt32(key string, v int32) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteScalarBlock(s.w, TagInt32, key, encodeU32(s.w.flipByteOrder, uint32(v)))
}

func (s *SectionWriter) WriteUInt64(key string, v uint64) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteScalarBlock(s.w, TagUInt64, key, encodeU64(s.w.flipByteOrder, v))
}

func (s *SectionWriter) WriteString(key, v string) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteStringBlock(s.w, key, v)
}

func (s *SectionWriter) WriteHash(key string, v [32]byte) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteScalarBlock(s.w, TagHash, key, v[:])
}

func (s *SectionWriter) WriteUUID(key string, v [16]byte) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteScalarBlock(s.w, TagUUID, key, v[:])
}

// BeginSubsection opens a nested section under key, marking this writer
// busy until EndSubsection is called on the returned child.
func (s *SectionWriter) BeginSubsection(key string) (*SectionWriter, error) {
	if err := s.checkIdle(); err != nil {
		return nil, err
	}
	start, err := BeginLargeBlock(s.w, TagSubsection, key)
	if err != nil {
		return nil, err
	}
	s.activeChild = true
	return &SectionWriter{w: s.w, headerStart: start, parent: s}, nil
}

// EndSubsection closes a child opened by BeginSubsection, restoring the
// parent to an idle state.
func (s *SectionWriter) EndSubsection(child *SectionWriter) error {
	if child.parent != s || !s.activeChild {
		return fmt.Errorf("%w: EndSubsection called out of order", ErrSectionProtocol)
	}
	if err := child.checkIdle(); err != nil {
		return err
	}
	if err := EndLargeBlock(s.w, child.headerStart); err != nil {
		return err
	}
	s.activeChild = false
	return nil
}

// WriteNullSubsection writes the "null section" shortcut: a Subsection
// frame with a zero-byte payload.
func (s *SectionWriter) WriteNullSubsection(key string) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	start, err := BeginLargeBlock(s.w, TagSubsection, key)
	if err != nil {
		return err
	}
	return EndLargeBlock(s.w, start)
}

// SectionArrayWriter emits a sections-array: a count-prefixed, size-prefixed
// sequence of child sections.
type SectionArrayWriter struct {
	w           *WriteStream
	headerStart int
	count       int
	next        int
	parent      *SectionWriter
}

// BeginSectionArray opens a sections-array of count slots under key.
func (s *SectionWriter) BeginSectionArray(key string, count int) (*SectionArrayWriter, error) {
	if err := s.checkIdle(); err != nil {
		return nil, err
	}
	start, err := BeginArrayBlock(s.w, TagArraySubsection, key, 0, uint64(count), nil)
	if err != nil {
		return nil, err
	}
	s.activeChild = true
	return &SectionArrayWriter{w: s.w, headerStart: start, count: count, parent: s}, nil
}

// BeginElement opens slot i (must equal the next expected index) and
// returns a writer for its body.
func (a *SectionArrayWriter) BeginElement(i int) (*SectionWriter, error) {
	if i != a.next || i >= a.count {
		return nil, fmt.Errorf("%w: BeginElement(%d) out of sequence (expected %d of %d)", ErrSectionProtocol, i, a.next, a.count)
	}
	start, err := BeginLargeBlock(a.w, TagSubsection, "")
	if err != nil {
		return nil, err
	}
	return &SectionWriter{w: a.w, headerStart: start, arrayParent: a}, nil
}

// EndElement closes slot i opened by BeginElement.
func (a *SectionArrayWriter) EndElement(i int, child *SectionWriter) error {
	if child.arrayParent != a || i != a.next {
		return fmt.Errorf("%w: EndElement(%d) out of sequence", ErrSectionProtocol, i)
	}
	if err := child.checkIdle(); err != nil {
		return err
	}
	if err := EndLargeBlock(a.w, child.headerStart); err != nil {
		return err
	}
	a.next++
	return nil
}

// WriteNullElement writes slot i as a null child (section_size = 0).
func (a *SectionArrayWriter) WriteNullElement(i int) error {
	if i != a.next || i >= a.count {
		return fmt.Errorf("%w: WriteNullElement(%d) out of sequence", ErrSectionProtocol, i)
	}
	start, err := BeginLargeBlock(a.w, TagSubsection, "")
	if err != nil {
		return err
	}
	if err := EndLargeBlock(a.w, start); err != nil {
		return err
	}
	a.next++
	return nil
}

// EndArray closes the sections-array; all count slots must have been
// written via BeginElement/EndElement or WriteNullElement.
func (s *SectionWriter) EndArray(a *SectionArrayWriter) error {
	if a.parent != s || a.next != a.count {
		return fmt.Errorf("%w: EndArray before all %d elements written (got %d)", ErrSectionProtocol, a.count, a.next)
	}
	if err := EndLargeBlock(s.w, a.headerStart); err != nil {
		return err
	}
	s.activeChild = false
	return nil
}
