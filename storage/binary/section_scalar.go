package binary

// WriteScalar writes a fixed-size single-value block whose payload is
// produced by writePayload via the stream's own typed writes. Used by the
// generic scalar dispatch table in package models to cover scalar kinds
// this file's hand-written WriteBool/WriteInt32/... methods don't enumerate
// (vectors, matrices, the quaternion, every integer width).
func (s *SectionWriter) WriteScalar(tag byte, key string, payloadLen int, writePayload func(w *WriteStream)) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteSmallBlockStreamed(s.w, tag, key, payloadLen, func() { writePayload(s.w) })
}

// WriteScalarArray writes a dense or sparse-indexed array of fixed-size
// scalar values; writeElements emits itemCount elements in order via the
// stream's own typed writes.
func (s *SectionWriter) WriteScalarArray(tag byte, key string, elemByteSize uint8, itemCount uint64, index []int32, writeElements func(w *WriteStream)) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	start, err := BeginArrayBlock(s.w, ArrayTag(tag), key, elemByteSize, itemCount, index)
	if err != nil {
		return err
	}
	writeElements(s.w)
	return EndLargeBlock(s.w, start)
}

// WriteNullArray writes the "absent" shortcut for an optional array
// container: an array large block with a zero-byte payload, mirroring
// WriteNullSubsection's treatment of optional subsections.
func (s *SectionWriter) WriteNullArray(tag byte, key string) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	start, err := BeginLargeBlock(s.w, ArrayTag(tag), key)
	if err != nil {
		return err
	}
	return EndLargeBlock(s.w, start)
}

// WriteStringArray writes a dense or sparse-indexed array of strings under
// key. Strings get their own block tag pair (TagString/TagArrayString)
// rather than ArrayTag(TagString), so this does not go through
// WriteScalarArray.
func (s *SectionWriter) WriteStringArray(key string, vals []string, index []int32) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return WriteStringArray(s.w, key, vals, index)
}

// WriteNullStringArray writes the "absent" shortcut for an optional string
// array container.
func (s *SectionWriter) WriteNullStringArray(key string) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	start, err := BeginLargeBlock(s.w, TagArrayString, key)
	if err != nil {
		return err
	}
	return EndLargeBlock(s.w, start)
}

// ReadScalar reads a fixed-size single-value block, handing the payload
// bytes to readPayload via the stream's own typed reads.
func (s *SectionReader) ReadScalar(tag byte, key string, payloadLen int, readPayload func(r *ReadStream) error) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	return ReadSmallBlockStreamed(s.r, tag, key, payloadLen, func() error { return readPayload(s.r) })
}

// ReadScalarArray reads an array large block's preamble and, unless it is
// the null-array shortcut, invokes readElements to consume pre.ItemCount
// elements. isNull reports the null-array shortcut, in which case
// readElements is not called.
func (s *SectionReader) ReadScalarArray(tag byte, key string, wantIndex *bool, readElements func(r *ReadStream, pre ArrayPreamble) error) (pre ArrayPreamble, isNull bool, err error) {
	if err := s.checkIdle(); err != nil {
		return ArrayPreamble{}, false, err
	}
	hdr, err := ReadLargeBlockHeader(s.r, ArrayTag(tag), key)
	if err != nil {
		return ArrayPreamble{}, false, err
	}
	if hdr.PayloadLen == 0 {
		return ArrayPreamble{}, true, nil
	}
	pre, err = readArrayPreambleBody(s.r, wantIndex)
	if err != nil {
		return pre, false, err
	}
	if err := readElements(s.r, pre); err != nil {
		return pre, false, err
	}
	return pre, false, nil
}

// ReadStringArray reads a string array, or detects the null-array shortcut
// (isNull true, vals/index nil).
func (s *SectionReader) ReadStringArray(key string, wantIndex *bool) (vals []string, index []int32, isNull bool, err error) {
	if err := s.checkIdle(); err != nil {
		return nil, nil, false, err
	}
	hdr, err := ReadLargeBlockHeader(s.r, TagArrayString, key)
	if err != nil {
		return nil, nil, false, err
	}
	if hdr.PayloadLen == 0 {
		return nil, nil, true, nil
	}
	vals, index, err = readStringArrayBody(s.r, wantIndex)
	return vals, index, false, err
}
