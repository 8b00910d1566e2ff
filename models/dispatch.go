package models

import "github.com/cooolrik/pds-go/storage/binary"

// IndexedVector pairs a dense value slice with a sparse i32 index, the wire
// shape of the indexed-vector container kinds. Index carries one entry per
// logical slot; Values holds only the present ones.
type IndexedVector[T comparable] struct {
	Values []T
	Index  []int32
}

func (a IndexedVector[T]) equals(b IndexedVector[T]) bool {
	if len(a.Values) != len(b.Values) || len(a.Index) != len(b.Index) {
		return false
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			return false
		}
	}
	for i := range a.Index {
		if a.Index[i] != b.Index[i] {
			return false
		}
	}
	return true
}

func (a IndexedVector[T]) copy() IndexedVector[T] {
	out := IndexedVector[T]{}
	if a.Values != nil {
		out.Values = append([]T(nil), a.Values...)
	}
	if a.Index != nil {
		out.Index = append([]int32(nil), a.Index...)
	}
	return out
}

// Ops is the erased, per-(scalar,container) pair of operations the Varying
// wrapper dispatches to. Built once per scalar kind via buildContainerOps and
// assembled into dispatchTable at package init.
type Ops struct {
	// Zero returns the container's zero-valued handle (e.g. nil for a
	// pointer or slice handle, the zero T for a single).
	Zero func() any
	// Write emits the handle's wire representation under key.
	Write func(w *binary.SectionWriter, key string, handle any) error
	// Read decodes a handle of this shape from key.
	Read func(r *binary.SectionReader, key string) (any, error)
	// Equal reports structural equality between two handles of this shape.
	Equal func(a, b any) bool
	// Copy returns an independent deep copy of handle.
	Copy func(handle any) any
}

// dispatchKey identifies one (scalar kind, container kind) pair.
type dispatchKey struct {
	scalar    ScalarKind
	container ContainerKind
}

var dispatchTable = map[dispatchKey]Ops{}

func registerScalar[T comparable](kind ScalarKind, codec scalarCodec[T]) {
	for container, ops := range buildContainerOps(codec) {
		dispatchTable[dispatchKey{scalar: kind, container: container}] = ops
	}
}

func init() {
	registerScalar(ScalarBool, boolCodec)
	registerScalar(ScalarInt8, int8Codec)
	registerScalar(ScalarUInt8, uint8Codec)
	registerScalar(ScalarInt16, int16Codec)
	registerScalar(ScalarUInt16, uint16Codec)
	registerScalar(ScalarInt32, int32Codec)
	registerScalar(ScalarUInt32, uint32Codec)
	registerScalar(ScalarInt64, int64Codec)
	registerScalar(ScalarUInt64, uint64Codec)
	registerScalar(ScalarFloat, floatCodec)
	registerScalar(ScalarDouble, doubleCodec)
	registerScalar(ScalarVec2, vec2Codec)
	registerScalar(ScalarVec3, vec3Codec)
	registerScalar(ScalarVec4, vec4Codec)
	registerScalar(ScalarIVec2, ivec2Codec)
	registerScalar(ScalarIVec3, ivec3Codec)
	registerScalar(ScalarIVec4, ivec4Codec)
	registerScalar(ScalarUVec2, uvec2Codec)
	registerScalar(ScalarUVec3, uvec3Codec)
	registerScalar(ScalarUVec4, uvec4Codec)
	registerScalar(ScalarMat2, mat2Codec)
	registerScalar(ScalarMat3, mat3Codec)
	registerScalar(ScalarMat4, mat4Codec)
	registerScalar(ScalarMatD2, matD2Codec)
	registerScalar(ScalarMatD3, matD3Codec)
	registerScalar(ScalarMatD4, matD4Codec)
	registerScalar(ScalarQuaternion, quaternionCodec)
	registerScalar(ScalarUUID, uuidCodec)
	registerScalar(ScalarHash, hashCodec)
	registerStringOps()
}

// buildContainerOps builds the six container-shape Ops for one scalar
// codec. All six shapes are expressed once, generically, here; only the
// leaf read/write of a single T value differs per scalar kind (via codec).
func buildContainerOps[T comparable](codec scalarCodec[T]) map[ContainerKind]Ops {
	tag := codec.Tag()
	size := uint8(codec.PayloadLen())

	writeOne := func(w *binary.SectionWriter, key string, v T) error {
		return w.WriteScalar(tag, key, codec.PayloadLen(), func(w *binary.WriteStream) { codec.WriteValue(w, v) })
	}
	readOne := func(r *binary.SectionReader, key string) (T, error) {
		var out T
		err := r.ReadScalar(tag, key, codec.PayloadLen(), func(r *binary.ReadStream) error {
			v, err := codec.ReadValue(r)
			out = v
			return err
		})
		return out, err
	}

	const dataKey = "Data"
	falseIdx := false
	trueIdx := true

	single := Ops{
		Zero: func() any { var z T; return z },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			return writeOne(w, key, h.(T))
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			return readOne(r, key)
		},
		Equal: func(a, b any) bool { return a.(T) == b.(T) },
		Copy:  func(h any) any { return h },
	}

	optional := Ops{
		Zero: func() any { return (*T)(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			v, _ := h.(*T)
			if v == nil {
				return w.WriteNullSubsection(key)
			}
			child, err := w.BeginSubsection(key)
			if err != nil {
				return err
			}
			if err := writeOne(child, dataKey, *v); err != nil {
				return err
			}
			return w.EndSubsection(child)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			child, isNull, err := r.BeginSubsection(key, true)
			if err != nil {
				return (*T)(nil), err
			}
			if isNull {
				return (*T)(nil), nil
			}
			v, err := readOne(child, dataKey)
			if err != nil {
				return (*T)(nil), err
			}
			if err := r.EndSubsection(child); err != nil {
				return (*T)(nil), err
			}
			return &v, nil
		},
		Equal: func(a, b any) bool {
			pa, pb := a.(*T), b.(*T)
			if pa == nil || pb == nil {
				return pa == pb
			}
			return *pa == *pb
		},
		Copy: func(h any) any {
			p, _ := h.(*T)
			if p == nil {
				return (*T)(nil)
			}
			v := *p
			return &v
		},
	}

	writeVector := func(w *binary.SectionWriter, key string, vals []T, index []int32) error {
		return w.WriteScalarArray(tag, key, size, uint64(len(vals)), index, func(w *binary.WriteStream) {
			for _, v := range vals {
				codec.WriteValue(w, v)
			}
		})
	}
	readVector := func(r *binary.SectionReader, key string, wantIndex *bool) ([]T, []int32, bool, error) {
		var out []T
		pre, isNull, err := r.ReadScalarArray(tag, key, wantIndex, func(r *binary.ReadStream, pre binary.ArrayPreamble) error {
			out = make([]T, pre.ItemCount)
			for i := range out {
				v, err := codec.ReadValue(r)
				if err != nil {
					return err
				}
				out[i] = v
			}
			return nil
		})
		return out, pre.Index, isNull, err
	}
	sliceEqual := func(a, b []T) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	vector := Ops{
		Zero: func() any { return []T(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			return writeVector(w, key, h.([]T), nil)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			out, _, _, err := readVector(r, key, &falseIdx)
			return out, err
		},
		Equal: func(a, b any) bool { return sliceEqual(a.([]T), b.([]T)) },
		Copy: func(h any) any {
			v := h.([]T)
			if v == nil {
				return []T(nil)
			}
			return append([]T(nil), v...)
		},
	}

	optionalVector := Ops{
		Zero: func() any { return []T(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			v, _ := h.([]T)
			if v == nil {
				return w.WriteNullArray(tag, key)
			}
			return writeVector(w, key, v, nil)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			out, _, isNull, err := readVector(r, key, &falseIdx)
			if isNull {
				return []T(nil), err
			}
			return out, err
		},
		Equal: func(a, b any) bool { return sliceEqual(a.([]T), b.([]T)) },
		Copy: func(h any) any {
			v := h.([]T)
			if v == nil {
				return []T(nil)
			}
			return append([]T(nil), v...)
		},
	}

	indexedVector := Ops{
		Zero: func() any { return IndexedVector[T]{} },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			iv := h.(IndexedVector[T])
			index := iv.Index
			if index == nil {
				index = []int32{}
			}
			return writeVector(w, key, iv.Values, index)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			out, index, _, err := readVector(r, key, &trueIdx)
			return IndexedVector[T]{Values: out, Index: index}, err
		},
		Equal: func(a, b any) bool { return a.(IndexedVector[T]).equals(b.(IndexedVector[T])) },
		Copy:  func(h any) any { return h.(IndexedVector[T]).copy() },
	}

	optionalIndexedVector := Ops{
		Zero: func() any { return (*IndexedVector[T])(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			iv, _ := h.(*IndexedVector[T])
			if iv == nil {
				return w.WriteNullArray(tag, key)
			}
			index := iv.Index
			if index == nil {
				index = []int32{}
			}
			return writeVector(w, key, iv.Values, index)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			out, index, isNull, err := readVector(r, key, &trueIdx)
			if isNull {
				return (*IndexedVector[T])(nil), err
			}
			return &IndexedVector[T]{Values: out, Index: index}, err
		},
		Equal: func(a, b any) bool {
			pa, pb := a.(*IndexedVector[T]), b.(*IndexedVector[T])
			if pa == nil || pb == nil {
				return pa == pb
			}
			return pa.equals(*pb)
		},
		Copy: func(h any) any {
			p, _ := h.(*IndexedVector[T])
			if p == nil {
				return (*IndexedVector[T])(nil)
			}
			c := p.copy()
			return &c
		},
	}

	return map[ContainerKind]Ops{
		ContainerSingle:            single,
		ContainerOptional:          optional,
		ContainerVector:            vector,
		ContainerOptionalVector:    optionalVector,
		ContainerIndexedVector:     indexedVector,
		ContainerOptionalIdxVector: optionalIndexedVector,
	}
}
