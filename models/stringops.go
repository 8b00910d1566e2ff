package models

import "github.com/cooolrik/pds-go/storage/binary"

// registerStringOps wires the UTF-8 string scalar kind into dispatchTable.
// Strings are variable-length, so they can't share scalarCodec[T]'s
// fixed-PayloadLen leaf shape; they get their own dedicated block tags
// (storage/binary's TagString/TagArrayString) and are wired by hand here,
// mirroring buildContainerOps's six shapes one-for-one.
func registerStringOps() {
	const dataKey = "Data"
	falseIdx := false
	trueIdx := true

	single := Ops{
		Zero: func() any { return "" },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			return w.WriteString(key, h.(string))
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			return r.ReadString(key)
		},
		Equal: func(a, b any) bool { return a.(string) == b.(string) },
		Copy:  func(h any) any { return h },
	}

	optional := Ops{
		Zero: func() any { return (*string)(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			v, _ := h.(*string)
			if v == nil {
				return w.WriteNullSubsection(key)
			}
			child, err := w.BeginSubsection(key)
			if err != nil {
				return err
			}
			if err := child.WriteString(dataKey, *v); err != nil {
				return err
			}
			return w.EndSubsection(child)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			child, isNull, err := r.BeginSubsection(key, true)
			if err != nil {
				return (*string)(nil), err
			}
			if isNull {
				return (*string)(nil), nil
			}
			v, err := child.ReadString(dataKey)
			if err != nil {
				return (*string)(nil), err
			}
			if err := r.EndSubsection(child); err != nil {
				return (*string)(nil), err
			}
			return &v, nil
		},
		Equal: func(a, b any) bool {
			pa, pb := a.(*string), b.(*string)
			if pa == nil || pb == nil {
				return pa == pb
			}
			return *pa == *pb
		},
		Copy: func(h any) any {
			p, _ := h.(*string)
			if p == nil {
				return (*string)(nil)
			}
			v := *p
			return &v
		},
	}

	sliceEqual := func(a, b []string) bool {
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
		Zero: func() any { return []string(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			return w.WriteStringArray(key, h.([]string), nil)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			vals, _, _, err := r.ReadStringArray(key, &falseIdx)
			return vals, err
		},
		Equal: func(a, b any) bool { return sliceEqual(a.([]string), b.([]string)) },
		Copy: func(h any) any {
			v := h.([]string)
			if v == nil {
				return []string(nil)
			}
			return append([]string(nil), v...)
		},
	}

	optionalVector := Ops{
		Zero: func() any { return []string(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			v, _ := h.([]string)
			if v == nil {
				return w.WriteNullStringArray(key)
			}
			return w.WriteStringArray(key, v, nil)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			vals, _, isNull, err := r.ReadStringArray(key, &falseIdx)
			if isNull {
				return []string(nil), err
			}
			return vals, err
		},
		Equal: func(a, b any) bool { return sliceEqual(a.([]string), b.([]string)) },
		Copy: func(h any) any {
			v := h.([]string)
			if v == nil {
				return []string(nil)
			}
			return append([]string(nil), v...)
		},
	}

	indexedVector := Ops{
		Zero: func() any { return IndexedVector[string]{} },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			iv := h.(IndexedVector[string])
			index := iv.Index
			if index == nil {
				index = []int32{}
			}
			return w.WriteStringArray(key, iv.Values, index)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			vals, index, _, err := r.ReadStringArray(key, &trueIdx)
			return IndexedVector[string]{Values: vals, Index: index}, err
		},
		Equal: func(a, b any) bool { return a.(IndexedVector[string]).equals(b.(IndexedVector[string])) },
		Copy:  func(h any) any { return h.(IndexedVector[string]).copy() },
	}

	optionalIndexedVector := Ops{
		Zero: func() any { return (*IndexedVector[string])(nil) },
		Write: func(w *binary.SectionWriter, key string, h any) error {
			iv, _ := h.(*IndexedVector[string])
			if iv == nil {
				return w.WriteNullStringArray(key)
			}
			index := iv.Index
			if index == nil {
				index = []int32{}
			}
			return w.WriteStringArray(key, iv.Values, index)
		},
		Read: func(r *binary.SectionReader, key string) (any, error) {
			vals, index, isNull, err := r.ReadStringArray(key, &trueIdx)
			if isNull {
				return (*IndexedVector[string])(nil), err
			}
			return &IndexedVector[string]{Values: vals, Index: index}, err
		},
		Equal: func(a, b any) bool {
			pa, pb := a.(*IndexedVector[string]), b.(*IndexedVector[string])
			if pa == nil || pb == nil {
				return pa == pb
			}
			return pa.equals(*pb)
		},
		Copy: func(h any) any {
			p, _ := h.(*IndexedVector[string])
			if p == nil {
				return (*IndexedVector[string])(nil)
			}
			c := p.copy()
			return &c
		},
	}

	dispatchTable[dispatchKey{scalar: ScalarString, container: ContainerSingle}] = single
	dispatchTable[dispatchKey{scalar: ScalarString, container: ContainerOptional}] = optional
	dispatchTable[dispatchKey{scalar: ScalarString, container: ContainerVector}] = vector
	dispatchTable[dispatchKey{scalar: ScalarString, container: ContainerOptionalVector}] = optionalVector
	dispatchTable[dispatchKey{scalar: ScalarString, container: ContainerIndexedVector}] = indexedVector
	dispatchTable[dispatchKey{scalar: ScalarString, container: ContainerOptionalIdxVector}] = optionalIndexedVector
}
