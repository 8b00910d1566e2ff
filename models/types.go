// Package models defines the closed scalar/container type universe, the
// entity operation contract, and the reference types (item_ref, entity_ref)
// that the rest of pds-go builds on.
package models

// Fixed-component scalar value types. Vectors, matrices and the quaternion
// are plain fixed-size arrays of their natural component type so the
// dispatch table can treat them uniformly as "N components of type X".
type (
	Vec2  = [2]float32
	Vec3  = [3]float32
	Vec4  = [4]float32
	IVec2 = [2]int32
	IVec3 = [3]int32
	IVec4 = [4]int32
	UVec2 = [2]uint32
	UVec3 = [3]uint32
	UVec4 = [4]uint32
	Mat2  = [4]float32
	Mat3  = [9]float32
	Mat4  = [16]float32
	MatD2 = [4]float64
	MatD3 = [9]float64
	MatD4 = [16]float64
	Quaternion = [4]float32
	UUIDBytes  = [16]byte
	HashBytes  = [32]byte
)

// ScalarKind enumerates the closed set of scalar value types recognized by
// the codec. Values run on in declaration order from 0x01; ScalarBool
// through ScalarIVec4 coincide with storage/binary's single-value block
// tags, the later kinds do not (e.g. ScalarUUID is 0x1c, TagUUID is 0x12).
// A Varying writes this value, not the block tag.
type ScalarKind uint8

const (
	ScalarBool ScalarKind = 0x01 + iota
	ScalarInt8
	ScalarUInt8
	ScalarInt16
	ScalarUInt16
	ScalarInt32
	ScalarUInt32
	ScalarInt64
	ScalarUInt64
	ScalarFloat
	ScalarDouble
	ScalarVec2
	ScalarVec3
	ScalarVec4
	ScalarIVec2
	ScalarIVec3
	ScalarIVec4
	ScalarUVec2
	ScalarUVec3
	ScalarUVec4
	ScalarMat2
	ScalarMat3
	ScalarMat4
	ScalarMatD2
	ScalarMatD3
	ScalarMatD4
	ScalarQuaternion
	ScalarUUID
	ScalarHash
)

// String-valued scalars use dedicated block tags (0xe0/0xe1) rather than the
// small-block numeric range; ScalarString is a synthetic member of the
// universe for dispatch-table purposes only.
const ScalarString ScalarKind = 0xe0

// componentSize returns the encoded byte size of one component of the
// scalar's natural representation. The array codec does not use it: its
// array_flags low byte carries the whole element size (the scalar codec's
// PayloadLen).
func (s ScalarKind) componentSize() int {
	switch s {
	case ScalarBool, ScalarInt8, ScalarUInt8:
		return 1
	case ScalarInt16, ScalarUInt16:
		return 2
	case ScalarInt32, ScalarUInt32, ScalarFloat:
		return 4
	case ScalarInt64, ScalarUInt64, ScalarDouble:
		return 8
	case ScalarVec2, ScalarIVec2, ScalarUVec2:
		return 4
	case ScalarVec3, ScalarIVec3, ScalarUVec3:
		return 4
	case ScalarVec4, ScalarIVec4, ScalarUVec4:
		return 4
	case ScalarMat2, ScalarMat3, ScalarMat4, ScalarQuaternion:
		return 4
	case ScalarMatD2, ScalarMatD3, ScalarMatD4:
		return 8
	case ScalarUUID:
		return 16
	case ScalarHash:
		return 32
	default:
		return 0
	}
}

// componentCount returns the number of scalar components packed per element
// (e.g. 3 for Vec3, 9 for Mat3, 4 for Quaternion). Single-component scalars
// return 1.
func (s ScalarKind) componentCount() int {
	switch s {
	case ScalarVec2, ScalarIVec2, ScalarUVec2:
		return 2
	case ScalarVec3, ScalarIVec3, ScalarUVec3:
		return 3
	case ScalarVec4, ScalarIVec4, ScalarUVec4, ScalarQuaternion:
		return 4
	case ScalarMat2:
		return 4
	case ScalarMat3:
		return 9
	case ScalarMat4:
		return 16
	case ScalarMatD2:
		return 4
	case ScalarMatD3:
		return 9
	case ScalarMatD4:
		return 16
	default:
		return 1
	}
}

// ContainerKind enumerates the six container shapes a scalar may appear in,
// matching the original container_type_index values exactly.
type ContainerKind uint8

const (
	ContainerSingle            ContainerKind = 0x00
	ContainerOptional          ContainerKind = 0x01
	ContainerVector            ContainerKind = 0x10
	ContainerOptionalVector    ContainerKind = 0x11
	ContainerIndexedVector     ContainerKind = 0x20
	ContainerOptionalIdxVector ContainerKind = 0x21
)

// Status mirrors the handler-boundary status codes of the original
// implementation. Operational code in this module prefers idiomatic Go
// errors (models/errors.go's sentinels); Status exists so callers that
// need the original numeric contract can carry it in a StatusErr (see
// NewStatusErr) and recover it with errors.As.
type Status int32

const (
	StatusOk                   Status = 0
	StatusAlreadyExists        Status = 1
	StatusUndefined            Status = -1
	StatusInvalidParam         Status = -2
	StatusNotInitialized       Status = -3
	StatusAlreadyInitialized   Status = -4
	StatusCantAllocate         Status = -5
	StatusCantOpen             Status = -6
	StatusCantRead             Status = -7
	StatusCorrupted            Status = -8
	StatusInvalid              Status = -9
	StatusCantWrite            Status = -10
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusAlreadyExists:
		return "AlreadyExists"
	case StatusUndefined:
		return "EUndefined"
	case StatusInvalidParam:
		return "EParam"
	case StatusNotInitialized:
		return "ENotInitialized"
	case StatusAlreadyInitialized:
		return "EAlreadyInitialized"
	case StatusCantAllocate:
		return "ECantAllocate"
	case StatusCantOpen:
		return "ECantOpen"
	case StatusCantRead:
		return "ECantRead"
	case StatusCorrupted:
		return "ECorrupted"
	case StatusInvalid:
		return "EInvalid"
	case StatusCantWrite:
		return "ECantWrite"
	default:
		return "EUnknown"
	}
}
