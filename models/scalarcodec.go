package models

import "github.com/cooolrik/pds-go/storage/binary"

// scalarCodec is the fixed-size leaf codec for one scalar kind: how to
// write/read exactly one value of Go type T to/from a stream, and how many
// bytes that takes. The container-shape logic in dispatch.go is generic
// over this interface, so "single/optional/vector/indexed_vector" are
// implemented once and specialized per scalar kind by supplying a codec.
type scalarCodec[T comparable] interface {
	Tag() byte
	PayloadLen() int
	WriteValue(w *binary.WriteStream, v T)
	ReadValue(r *binary.ReadStream) (T, error)
}

// primitiveCodec adapts a pair of stream read/write closures into a
// scalarCodec, used for every fixed-size scalar kind (plain numerics,
// vectors, matrices, the quaternion, UUID and HASH).
type primitiveCodec[T comparable] struct {
	tag   byte
	size  int
	write func(w *binary.WriteStream, v T)
	read  func(r *binary.ReadStream) (T, error)
}

func (c primitiveCodec[T]) Tag() byte                               { return c.tag }
func (c primitiveCodec[T]) PayloadLen() int                         { return c.size }
func (c primitiveCodec[T]) WriteValue(w *binary.WriteStream, v T)   { c.write(w, v) }
func (c primitiveCodec[T]) ReadValue(r *binary.ReadStream) (T, error) { return c.read(r) }

var boolCodec = primitiveCodec[bool]{
	tag: binary.TagBool, size: 1,
	write: func(w *binary.WriteStream, v bool) { w.WriteBool(v) },
	read:  func(r *binary.ReadStream) (bool, error) { return r.ReadBool() },
}

var int8Codec = primitiveCodec[int8]{
	tag: binary.TagInt8, size: 1,
	write: func(w *binary.WriteStream, v int8) { w.WriteI8(v) },
	read:  func(r *binary.ReadStream) (int8, error) { return r.ReadI8() },
}

var uint8Codec = primitiveCodec[uint8]{
	tag: binary.TagUInt8, size: 1,
	write: func(w *binary.WriteStream, v uint8) { w.WriteU8(v) },
	read:  func(r *binary.ReadStream) (uint8, error) { return r.ReadU8() },
}

var int16Codec = primitiveCodec[int16]{
	tag: binary.TagInt16, size: 2,
	write: func(w *binary.WriteStream, v int16) { w.WriteI16(v) },
	read:  func(r *binary.ReadStream) (int16, error) { return r.ReadI16() },
}

var uint16Codec = primitiveCodec[uint16]{
	tag: binary.TagUInt16, size: 2,
	write: func(w *binary.WriteStream, v uint16) { w.WriteU16(v) },
	read:  func(r *binary.ReadStream) (uint16, error) { return r.ReadU16() },
}

var int32Codec = primitiveCodec[int32]{
	tag: binary.TagInt32, size: 4,
	write: func(w *binary.WriteStream, v int32) { w.WriteI32(v) },
	read:  func(r *binary.ReadStream) (int32, error) { return r.ReadI32() },
}

var uint32Codec = primitiveCodec[uint32]{
	tag: binary.TagUInt32, size: 4,
	write: func(w *binary.WriteStream, v uint32) { w.WriteU32(v) },
	read:  func(r *binary.ReadStream) (uint32, error) { return r.ReadU32() },
}

var int64Codec = primitiveCodec[int64]{
	tag: binary.TagInt64, size: 8,
	write: func(w *binary.WriteStream, v int64) { w.WriteI64(v) },
	read:  func(r *binary.ReadStream) (int64, error) { return r.ReadI64() },
}

var uint64Codec = primitiveCodec[uint64]{
	tag: binary.TagUInt64, size: 8,
	write: func(w *binary.WriteStream, v uint64) { w.WriteU64(v) },
	read:  func(r *binary.ReadStream) (uint64, error) { return r.ReadU64() },
}

var floatCodec = primitiveCodec[float32]{
	tag: binary.TagFloat, size: 4,
	write: func(w *binary.WriteStream, v float32) { w.WriteFloat32(v) },
	read:  func(r *binary.ReadStream) (float32, error) { return r.ReadFloat32() },
}

var doubleCodec = primitiveCodec[float64]{
	tag: binary.TagDouble, size: 8,
	write: func(w *binary.WriteStream, v float64) { w.WriteFloat64(v) },
	read:  func(r *binary.ReadStream) (float64, error) { return r.ReadFloat64() },
}

var uuidCodec = primitiveCodec[UUIDBytes]{
	tag: binary.TagUUID, size: 16,
	write: func(w *binary.WriteStream, v UUIDBytes) { w.WriteUUID(v) },
	read:  func(r *binary.ReadStream) (UUIDBytes, error) { return r.ReadUUID() },
}

var hashCodec = primitiveCodec[HashBytes]{
	tag: binary.TagHash, size: 32,
	write: func(w *binary.WriteStream, v HashBytes) { w.WriteHash(v) },
	read:  func(r *binary.ReadStream) (HashBytes, error) { return r.ReadHash() },
}

// writeFloats/readFloats and writeInts/readInts/writeUints/readUints/
// writeDoubles/readDoubles factor the "N components of the same underlying
// numeric type" pattern shared by every vector, matrix and the quaternion.

func writeFloatsInto(w *binary.WriteStream, v []float32) {
	for _, c := range v {
		w.WriteFloat32(c)
	}
}
func readFloatsInto(r *binary.ReadStream, out []float32) error {
	for i := range out {
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func writeDoublesInto(w *binary.WriteStream, v []float64) {
	for _, c := range v {
		w.WriteFloat64(c)
	}
}
func readDoublesInto(r *binary.ReadStream, out []float64) error {
	for i := range out {
		v, err := r.ReadFloat64()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func writeInt32sInto(w *binary.WriteStream, v []int32) {
	for _, c := range v {
		w.WriteI32(c)
	}
}
func readInt32sInto(r *binary.ReadStream, out []int32) error {
	for i := range out {
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func writeUint32sInto(w *binary.WriteStream, v []uint32) {
	for _, c := range v {
		w.WriteU32(c)
	}
}
func readUint32sInto(r *binary.ReadStream, out []uint32) error {
	for i := range out {
		v, err := r.ReadU32()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

var vec2Codec = primitiveCodec[Vec2]{tag: binary.TagVec2, size: 4 * 2,
	write: func(w *binary.WriteStream, v Vec2) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Vec2, error) {
		var out Vec2
		err := readFloatsInto(r, out[:])
		return out, err
	},
}

var vec3Codec = primitiveCodec[Vec3]{tag: binary.TagVec3, size: 4 * 3,
	write: func(w *binary.WriteStream, v Vec3) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Vec3, error) {
		var out Vec3
		err := readFloatsInto(r, out[:])
		return out, err
	},
}

var vec4Codec = primitiveCodec[Vec4]{tag: binary.TagVec4, size: 4 * 4,
	write: func(w *binary.WriteStream, v Vec4) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Vec4, error) {
		var out Vec4
		err := readFloatsInto(r, out[:])
		return out, err
	},
}

var ivec2Codec = primitiveCodec[IVec2]{tag: binary.TagIVec2, size: 4 * 2,
	write: func(w *binary.WriteStream, v IVec2) { writeInt32sInto(w, v[:]) },
	read: func(r *binary.ReadStream) (IVec2, error) {
		var out IVec2
		err := readInt32sInto(r, out[:])
		return out, err
	},
}

var ivec3Codec = primitiveCodec[IVec3]{tag: binary.TagIVec3, size: 4 * 3,
	write: func(w *binary.WriteStream, v IVec3) { writeInt32sInto(w, v[:]) },
	read: func(r *binary.ReadStream) (IVec3, error) {
		var out IVec3
		err := readInt32sInto(r, out[:])
		return out, err
	},
}

var ivec4Codec = primitiveCodec[IVec4]{tag: binary.TagIVec4, size: 4 * 4,
	write: func(w *binary.WriteStream, v IVec4) { writeInt32sInto(w, v[:]) },
	read: func(r *binary.ReadStream) (IVec4, error) {
		var out IVec4
		err := readInt32sInto(r, out[:])
		return out, err
	},
}

// uvec2/3/4, the matrices and the quaternion get their own tags, allocated
// contiguously after TagHash so they do not collide with TagUUID/TagHash.
const (
	tagUVec2 = binary.TagHash + 1
	tagUVec3 = binary.TagHash + 2
	tagUVec4 = binary.TagHash + 3
	tagMat2  = binary.TagHash + 4
	tagMat3  = binary.TagHash + 5
	tagMat4  = binary.TagHash + 6
	tagMatD2 = binary.TagHash + 7
	tagMatD3 = binary.TagHash + 8
	tagMatD4 = binary.TagHash + 9
	tagQuat  = binary.TagHash + 10
)

var uvec2Codec = primitiveCodec[UVec2]{tag: tagUVec2, size: 4 * 2,
	write: func(w *binary.WriteStream, v UVec2) { writeUint32sInto(w, v[:]) },
	read: func(r *binary.ReadStream) (UVec2, error) {
		var out UVec2
		err := readUint32sInto(r, out[:])
		return out, err
	},
}

var uvec3Codec = primitiveCodec[UVec3]{tag: tagUVec3, size: 4 * 3,
	write: func(w *binary.WriteStream, v UVec3) { writeUint32sInto(w, v[:]) },
	read: func(r *binary.ReadStream) (UVec3, error) {
		var out UVec3
		err := readUint32sInto(r, out[:])
		return out, err
	},
}

var uvec4Codec = primitiveCodec[UVec4]{tag: tagUVec4, size: 4 * 4,
	write: func(w *binary.WriteStream, v UVec4) { writeUint32sInto(w, v[:]) },
	read: func(r *binary.ReadStream) (UVec4, error) {
		var out UVec4
		err := readUint32sInto(r, out[:])
		return out, err
	},
}

var mat2Codec = primitiveCodec[Mat2]{tag: tagMat2, size: 4 * 4,
	write: func(w *binary.WriteStream, v Mat2) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Mat2, error) {
		var out Mat2
		err := readFloatsInto(r, out[:])
		return out, err
	},
}

var mat3Codec = primitiveCodec[Mat3]{tag: tagMat3, size: 4 * 9,
	write: func(w *binary.WriteStream, v Mat3) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Mat3, error) {
		var out Mat3
		err := readFloatsInto(r, out[:])
		return out, err
	},
}

var mat4Codec = primitiveCodec[Mat4]{tag: tagMat4, size: 4 * 16,
	write: func(w *binary.WriteStream, v Mat4) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Mat4, error) {
		var out Mat4
		err := readFloatsInto(r, out[:])
		return out, err
	},
}

var matD2Codec = primitiveCodec[MatD2]{tag: tagMatD2, size: 8 * 4,
	write: func(w *binary.WriteStream, v MatD2) { writeDoublesInto(w, v[:]) },
	read: func(r *binary.ReadStream) (MatD2, error) {
		var out MatD2
		err := readDoublesInto(r, out[:])
		return out, err
	},
}

var matD3Codec = primitiveCodec[MatD3]{tag: tagMatD3, size: 8 * 9,
	write: func(w *binary.WriteStream, v MatD3) { writeDoublesInto(w, v[:]) },
	read: func(r *binary.ReadStream) (MatD3, error) {
		var out MatD3
		err := readDoublesInto(r, out[:])
		return out, err
	},
}

var matD4Codec = primitiveCodec[MatD4]{tag: tagMatD4, size: 8 * 16,
	write: func(w *binary.WriteStream, v MatD4) { writeDoublesInto(w, v[:]) },
	read: func(r *binary.ReadStream) (MatD4, error) {
		var out MatD4
		err := readDoublesInto(r, out[:])
		return out, err
	},
}

var quaternionCodec = primitiveCodec[Quaternion]{tag: tagQuat, size: 4 * 4,
	write: func(w *binary.WriteStream, v Quaternion) { writeFloatsInto(w, v[:]) },
	read: func(r *binary.ReadStream) (Quaternion, error) {
		var out Quaternion
		err := readFloatsInto(r, out[:])
		return out, err
	},
}
