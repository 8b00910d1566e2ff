package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// labelEntity is a minimal models.Entity used only to exercise ItemTable's
// owned-entity traversal.
type labelEntity struct {
	Label string
}

func (e *labelEntity) TypeTag() string { return "label" }
func (e *labelEntity) Clear()          { e.Label = "" }
func (e *labelEntity) DeepCopyFrom(src models.Entity) {
	if src == nil {
		e.Clear()
		return
	}
	e.Label = src.(*labelEntity).Label
}
func (e *labelEntity) Equals(other models.Entity) bool {
	o, ok := other.(*labelEntity)
	return ok && o.Label == e.Label
}
func (e *labelEntity) Write(w *binary.SectionWriter) error { return w.WriteString("Label", e.Label) }
func (e *labelEntity) Read(r *binary.SectionReader) error {
	v, err := r.ReadString("Label")
	if err != nil {
		return err
	}
	e.Label = v
	return nil
}
func (e *labelEntity) Validate(v *models.Validator) bool { return true }

func TestItemTableSetEnforcesFlags(t *testing.T) {
	tbl := NewItemTable[int32](false, false)
	err := tbl.Set(0, &labelEntity{Label: "x"})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	err = tbl.Set(1, nil)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	require.NoError(t, tbl.Set(1, &labelEntity{Label: "ok"}))
	e, ok := tbl.Get(1)
	require.True(t, ok)
	require.Equal(t, "ok", e.(*labelEntity).Label)
}

func TestItemTableRoundTripWithNullEntries(t *testing.T) {
	tbl := NewItemTable[int32](false, true)
	require.NoError(t, tbl.Set(1, &labelEntity{Label: "one"}))
	require.NoError(t, tbl.Set(2, nil))
	require.NoError(t, tbl.Set(3, &labelEntity{Label: "three"}))

	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, tbl.Write(sw, "IDs", "Entities", models.ScalarInt32))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	factory := func() models.Entity { return &labelEntity{} }
	got, err := ReadItemTable[int32](sr, "IDs", "Entities", models.ScalarInt32, factory, false, true)
	require.NoError(t, err)

	e1, ok := got.Get(1)
	require.True(t, ok)
	require.Equal(t, "one", e1.(*labelEntity).Label)

	e2, ok := got.Get(2)
	require.True(t, ok)
	require.Nil(t, e2)

	require.Equal(t, 3, got.Len())
}

func TestItemTableValidateAcceptsPermittedNullEntry(t *testing.T) {
	tbl := NewItemTable[int32](false, true)
	require.NoError(t, tbl.Set(1, nil))
	var v models.Validator
	require.True(t, tbl.Validate(&v, "tbl"))
}
