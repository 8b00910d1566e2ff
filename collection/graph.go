package collection

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// GraphShape selects which shape invariants a Graph asserts: zero or more
// of acyclic / rooted / single-root.
type GraphShape struct {
	Acyclic    bool
	Rooted     bool
	SingleRoot bool
}

// Graph is a directed graph of unique (from, to) edges plus a declared
// Roots set. Edges are kept as a (vertex -> sorted list<vertex>) adjacency
// map rather than a literal ordered pair set; the observable ordering
// (successors of v enumerate in ascending order) and equality contracts
// are preserved.
type Graph[V cmp.Ordered] struct {
	Shape     GraphShape
	adjacency map[V][]V // sorted targets per source vertex
	roots     map[V]bool
}

// NewGraph returns an empty graph asserting shape.
func NewGraph[V cmp.Ordered](shape GraphShape) *Graph[V] {
	return &Graph[V]{Shape: shape, adjacency: map[V][]V{}, roots: map[V]bool{}}
}

// AddEdge inserts (from, to); a duplicate edge is a no-op.
func (g *Graph[V]) AddEdge(from, to V) {
	targets := g.adjacency[from]
	i, found := slices.BinarySearch(targets, to)
	if found {
		return
	}
	g.adjacency[from] = slices.Insert(targets, i, to)
	if _, ok := g.adjacency[to]; !ok {
		g.adjacency[to] = nil // to is a vertex even if it has no out-edges of its own
	}
}

// AddRoot declares v a root vertex.
func (g *Graph[V]) AddRoot(v V) { g.roots[v] = true }

// Successors returns v's targets in ascending order, emulating a
// half-open range lookup `[(v, inf), (v, sup))` over the edge set.
func (g *Graph[V]) Successors(v V) []V { return g.adjacency[v] }

// Vertices returns every vertex that appears as an edge endpoint, in
// ascending order.
func (g *Graph[V]) Vertices() []V {
	seen := map[V]bool{}
	for from, targets := range g.adjacency {
		seen[from] = true
		for _, to := range targets {
			seen[to] = true
		}
	}
	out := make([]V, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func (g *Graph[V]) inDegree() map[V]int {
	deg := map[V]int{}
	for v := range g.adjacency {
		if _, ok := deg[v]; !ok {
			deg[v] = 0
		}
	}
	for _, targets := range g.adjacency {
		for _, to := range targets {
			deg[to]++
		}
	}
	return deg
}

func (g *Graph[V]) sourceVertices() []V {
	deg := g.inDegree()
	var out []V
	for v, d := range deg {
		if d == 0 {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// Validate checks the declared shape flags against the graph's actual
// structure.
func (g *Graph[V]) Validate(v *models.Validator, context string) bool {
	ok := true
	if g.Shape.Acyclic {
		if cyc := g.findCycle(); cyc {
			v.Report(models.InvalidSetup, context, "graph contains a directed cycle")
			ok = false
		}
	}
	sources := g.sourceVertices()
	if g.Shape.SingleRoot {
		if len(sources) != 1 {
			v.Report(models.InvalidSetup, context, fmt.Sprintf("expected exactly one source vertex, found %d", len(sources)))
			ok = false
		}
	}
	if g.Shape.Rooted {
		declared := make([]V, 0, len(g.roots))
		for r := range g.roots {
			declared = append(declared, r)
		}
		slices.Sort(declared)
		if !slices.Equal(declared, sources) {
			v.Report(models.InvalidSetup, context, "declared Roots does not equal the set of source vertices")
			ok = false
		}
		if !g.allReachableFromRoots() {
			v.Report(models.InvalidSetup, context, "a vertex with an incoming edge is unreachable from Roots")
			ok = false
		}
	}
	return ok
}

// findCycle runs iterative DFS from each unvisited vertex, reporting
// whether any directed cycle exists -- a gray vertex reachable from
// itself via a back edge currently on the stack.
func (g *Graph[V]) findCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[V]int{}
	for _, v := range g.Vertices() {
		if color[v] != white {
			continue
		}
		type frame struct {
			v   V
			idx int
		}
		stack := []frame{{v: v}}
		color[v] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			targets := g.adjacency[top.v]
			if top.idx < len(targets) {
				next := targets[top.idx]
				top.idx++
				switch color[next] {
				case white:
					color[next] = gray
					stack = append(stack, frame{v: next})
				case gray:
					return true
				}
			} else {
				color[top.v] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	return false
}

func (g *Graph[V]) allReachableFromRoots() bool {
	visited := map[V]bool{}
	queue := make([]V, 0, len(g.roots))
	for r := range g.roots {
		if !visited[r] {
			visited[r] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, to := range g.adjacency[v] {
			if !visited[to] {
				visited[to] = true
				queue = append(queue, to)
			}
		}
	}
	for _, v := range g.Vertices() {
		if !visited[v] {
			return false
		}
	}
	return true
}

// Write emits Roots as a vector<V>, then Edges as a flat vector<V> of
// interleaved (from, to) endpoints.
func (g *Graph[V]) Write(w *binary.SectionWriter, vertexScalar models.ScalarKind) error {
	roots := make([]V, 0, len(g.roots))
	for r := range g.roots {
		roots = append(roots, r)
	}
	slices.Sort(roots)
	if err := WriteVector(w, "Roots", vertexScalar, roots); err != nil {
		return err
	}
	var flat []V
	for _, from := range g.Vertices() {
		for _, to := range g.adjacency[from] {
			flat = append(flat, from, to)
		}
	}
	return WriteVector(w, "Edges", vertexScalar, flat)
}

// ReadGraph decodes a graph written by Write, asserting the given shape.
func ReadGraph[V cmp.Ordered](r *binary.SectionReader, vertexScalar models.ScalarKind, shape GraphShape) (*Graph[V], error) {
	roots, err := ReadVector[V](r, "Roots", vertexScalar)
	if err != nil {
		return nil, err
	}
	flat, err := ReadVector[V](r, "Edges", vertexScalar)
	if err != nil {
		return nil, err
	}
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: Edges has an odd endpoint count", models.ErrCorrupted)
	}
	g := NewGraph[V](shape)
	for _, r := range roots {
		g.AddRoot(r)
	}
	for i := 0; i < len(flat); i += 2 {
		g.AddEdge(flat[i], flat[i+1])
	}
	return g, nil
}
