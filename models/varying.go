package models

import (
	"fmt"

	"github.com/cooolrik/pds-go/storage/binary"
)

// Varying holds one dynamically-typed value from the closed (ScalarKind,
// ContainerKind) universe. The wire form is self-describing: a subsection
// carrying the two kind tags followed by the payload under "Data", so a
// reader can dispatch without prior schema knowledge -- the same contract
// entities rely on when decoding a field they only know by key.
type Varying struct {
	scalar    ScalarKind
	container ContainerKind
	handle    any
}

// NewVarying constructs a zero-valued Varying for the given (scalar,
// container) pair, failing if that combination has no registered codec.
func NewVarying(scalar ScalarKind, container ContainerKind) (Varying, error) {
	ops, err := opsFor(scalar, container)
	if err != nil {
		return Varying{}, err
	}
	return Varying{scalar: scalar, container: container, handle: ops.Zero()}, nil
}

func opsFor(scalar ScalarKind, container ContainerKind) (Ops, error) {
	ops, ok := dispatchTable[dispatchKey{scalar: scalar, container: container}]
	if !ok {
		return Ops{}, fmt.Errorf("%w: no codec registered for scalar 0x%02x / container 0x%02x", ErrInvalidInput, scalar, container)
	}
	return ops, nil
}

// ScalarKind reports the value's scalar kind.
func (v Varying) ScalarKind() ScalarKind { return v.scalar }

// ContainerKind reports the value's container shape.
func (v Varying) ContainerKind() ContainerKind { return v.container }

// Clear resets the value to its container's zero handle (absent for
// optional/pointer shapes, empty for vectors, zero value for single).
func (v *Varying) Clear() {
	ops, err := opsFor(v.scalar, v.container)
	if err != nil {
		return
	}
	v.handle = ops.Zero()
}

// Equals reports whether v and other carry the same (scalar, container)
// pair and structurally equal handles.
func (v Varying) Equals(other Varying) bool {
	if v.scalar != other.scalar || v.container != other.container {
		return false
	}
	ops, err := opsFor(v.scalar, v.container)
	if err != nil {
		return false
	}
	return ops.Equal(v.handle, other.handle)
}

// Copy returns an independent deep copy of v.
func (v Varying) Copy() Varying {
	ops, err := opsFor(v.scalar, v.container)
	if err != nil {
		return v
	}
	return Varying{scalar: v.scalar, container: v.container, handle: ops.Copy(v.handle)}
}

// Write emits v under key as a subsection carrying the scalar/container
// kind tags followed by the payload under "Data".
func (v Varying) Write(w *binary.SectionWriter, key string) error {
	ops, err := opsFor(v.scalar, v.container)
	if err != nil {
		return err
	}
	child, err := w.BeginSubsection(key)
	if err != nil {
		return err
	}
	if err := child.WriteInt32("ScalarKind", int32(v.scalar)); err != nil {
		return err
	}
	if err := child.WriteInt32("ContainerKind", int32(v.container)); err != nil {
		return err
	}
	if err := ops.Write(child, "Data", v.handle); err != nil {
		return err
	}
	return w.EndSubsection(child)
}

// ReadVarying decodes a value written by Varying.Write.
func ReadVarying(r *binary.SectionReader, key string) (Varying, error) {
	child, _, err := r.BeginSubsection(key, false)
	if err != nil {
		return Varying{}, err
	}
	rawScalar, err := child.ReadInt32("ScalarKind")
	if err != nil {
		return Varying{}, err
	}
	rawContainer, err := child.ReadInt32("ContainerKind")
	if err != nil {
		return Varying{}, err
	}
	scalar, container := ScalarKind(rawScalar), ContainerKind(rawContainer)
	ops, err := opsFor(scalar, container)
	if err != nil {
		return Varying{}, err
	}
	handle, err := ops.Read(child, "Data")
	if err != nil {
		return Varying{}, err
	}
	if err := r.EndSubsection(child); err != nil {
		return Varying{}, err
	}
	return Varying{scalar: scalar, container: container, handle: handle}, nil
}

// Data retrieves v's handle as T, reporting false if the Varying does not
// currently hold a value of that Go type (i.e. the caller guessed the
// wrong container shape or scalar kind).
func Data[T any](v Varying) (T, bool) {
	t, ok := v.handle.(T)
	return t, ok
}

// SetData replaces v's handle with val and retags v to (scalar, container),
// the typed constructor callers use once they know both the Go value and
// which member of the closed universe it represents.
func SetData[T any](scalar ScalarKind, container ContainerKind, val T) Varying {
	return Varying{scalar: scalar, container: container, handle: val}
}
