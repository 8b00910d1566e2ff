package binary


// This file provides the mechanical byte-packing primitives the value
// codec is built from: packing/unpacking homogeneous runs of fixed-size
// components (used for scalars, vectors, matrices and quaternions alike,
// since all of them are "N components of the same underlying numeric
// type") plus the two block-framed leaf encodings (scalar, string) that
// models.Varying's dispatch table calls.

// PackFloat32s appends n little/flip-ordered float32 components to w.
func PackFloat32s(w *WriteStream, vals []float32) {
	for _, v := range vals {
		w.WriteFloat32(v)
	}
}

func UnpackFloat32s(r *ReadStream, n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := r.ReadFloat32()
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func PackFloat64s(w *WriteStream, vals []float64) {
	for _, v := range vals {
		w.WriteFloat64(v)
	}
}

func UnpackFloat64s(r *ReadStream, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := r.ReadFloat64()
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func PackInt32s(w *WriteStream, vals []int32) {
	for _, v := range vals {
		w.WriteI32(v)
	}
}

func UnpackInt32s(r *ReadStream, n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := r.ReadI32()
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func PackUInt32s(w *WriteStream, vals []uint32) {
	for _, v := range vals {
		w.WriteU32(v)
	}
}

func UnpackUInt32s(r *ReadStream, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := r.ReadU32()
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// WriteScalarBlock frames a fixed-size scalar payload as a small block:
// scalars and small aggregates are always small-block encoded since
// payload + key never exceeds 255 bytes for any scalar kind in the closed
// universe.
func WriteScalarBlock(w *WriteStream, tag byte, key string, payload []byte) error {
	return WriteSmallBlock(w, tag, key, payload)
}

// ReadScalarBlock reads a small block's header and payload for a
// fixed-size scalar kind, validating the key.
func ReadScalarBlock(r *ReadStream, tag byte, key string, payloadLen int) ([]byte, error) {
	_, size, err := ReadSmallBlockTagSize(r, tag)
	if err != nil {
		return nil, err
	}
	if size < payloadLen {
		return nil, ErrInvalidKeyLength
	}
	payload, err := r.ReadBytes(payloadLen)
	if err != nil {
		return nil, err
	}
	if _, err := ReadSmallBlockKey(r, size, payloadLen, key); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteStringBlock frames a UTF-8 string as a large block: u64 char_count
// followed by the raw UTF-8 bytes.
func WriteStringBlock(w *WriteStream, key, value string) error {
	start, err := BeginLargeBlock(w, TagString, key)
	if err != nil {
		return err
	}
	w.WriteU64(uint64(len(value)))
	w.WriteBytes([]byte(value))
	return EndLargeBlock(w, start)
}

// ReadStringBlock reads a string large block.
func ReadStringBlock(r *ReadStream, key string) (string, error) {
	hdr, err := ReadLargeBlockHeader(r, TagString, key)
	if err != nil {
		return "", err
	}
	charCount, err := r.ReadU64()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(charCount))
	if err != nil {
		return "", err
	}
	_ = hdr
	return string(b), nil
}
