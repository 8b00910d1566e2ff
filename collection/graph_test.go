package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

func TestGraphSuccessorsAreSortedAndDeduped(t *testing.T) {
	g := NewGraph[int32](GraphShape{})
	g.AddEdge(1, 3)
	g.AddEdge(1, 2)
	g.AddEdge(1, 2) // duplicate, no-op

	require.Equal(t, []int32{2, 3}, g.Successors(1))
}

func TestGraphAcyclicValidation(t *testing.T) {
	g := NewGraph[int32](GraphShape{Acyclic: true})
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	var v models.Validator
	require.True(t, g.Validate(&v, "g"))

	g.AddEdge(3, 1) // closes a cycle
	var v2 models.Validator
	require.False(t, g.Validate(&v2, "g"))
	require.True(t, v2.HasKind(models.InvalidSetup))
}

func TestGraphSingleRootValidation(t *testing.T) {
	g := NewGraph[int32](GraphShape{SingleRoot: true})
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	var v models.Validator
	require.True(t, g.Validate(&v, "g"))

	g.AddEdge(4, 2) // now two source vertices: 1 and 4
	var v2 models.Validator
	require.False(t, g.Validate(&v2, "g"))
}

func TestGraphRootedValidation(t *testing.T) {
	g := NewGraph[int32](GraphShape{Rooted: true})
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddRoot(1)
	var v models.Validator
	require.True(t, g.Validate(&v, "g"))

	// An additional vertex with an incoming edge but no path from Roots.
	g.AddEdge(9, 10)
	var v2 models.Validator
	require.False(t, g.Validate(&v2, "g"))
}

func TestGraphRoundTrip(t *testing.T) {
	g := NewGraph[int32](GraphShape{Acyclic: true})
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddRoot(1)

	w := binary.NewWriteStream(0, false)
	sw := binary.NewSectionWriter(w)
	require.NoError(t, g.Write(sw, models.ScalarInt32))

	r := binary.NewReadStream(w.Bytes(), false)
	sr := binary.NewSectionReader(r, r.Size())
	got, err := ReadGraph[int32](sr, models.ScalarInt32, GraphShape{Acyclic: true})
	require.NoError(t, err)
	require.Equal(t, g.Successors(1), got.Successors(1))
	require.Equal(t, g.Successors(2), got.Successors(2))
	require.Equal(t, g.Vertices(), got.Vertices())
}
