package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

func buildTestGraph() *Graph {
	return Build(&domain.ArchitectureDiagram{
		Nodes: []domain.ComponentNode{
			{ID: "a", Label: "A"},
			{ID: "b", Label: "B"},
			{ID: "c", Label: "C"},
		},
		Edges: []domain.Connection{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "a", Target: "c"},
			{ID: "e3", Source: "b", Target: "c"},
			{ID: "e4", Source: "c", Target: "ghost"},
		},
	})
}

func TestNodeLookup(t *testing.T) {
	g := buildTestGraph()

	n, ok := g.Node("b")
	require.True(t, ok)
	assert.Equal(t, "B", n.Label)

	_, ok = g.Node("ghost")
	assert.False(t, ok)
	assert.True(t, g.HasNode("a"))
	assert.False(t, g.HasNode("ghost"))
}

func TestEdgeAdjacency(t *testing.T) {
	g := buildTestGraph()

	out := g.OutEdges("a")
	require.Len(t, out, 2)
	assert.Equal(t, "e1", out[0].ID, "diagram order preserved")
	assert.Equal(t, "e2", out[1].ID)

	in := g.InEdges("c")
	require.Len(t, in, 2)
	assert.Equal(t, "e2", in[0].ID)
	assert.Equal(t, "e3", in[1].ID)

	assert.Equal(t, []string{"b", "c"}, g.Successors("a"))
	assert.Nil(t, g.Successors("ghost"))
}

func TestDegree(t *testing.T) {
	g := buildTestGraph()
	assert.Equal(t, 2, g.Degree("a"))
	assert.Equal(t, 2, g.Degree("b"))
	assert.Equal(t, 3, g.Degree("c"))
	assert.Equal(t, 1, g.Degree("ghost"), "dangling edges still count")
}

func TestDanglingEdgesAreKept(t *testing.T) {
	g := buildTestGraph()
	require.Len(t, g.Edges(), 4)
	assert.Equal(t, "ghost", g.Edges()[3].Target)
	assert.False(t, g.HasNode("ghost"))
}

func TestParallelEdges(t *testing.T) {
	g := Build(&domain.ArchitectureDiagram{
		Nodes: []domain.ComponentNode{{ID: "a"}, {ID: "b"}},
		Edges: []domain.Connection{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "a", Target: "b"},
		},
	})
	assert.Equal(t, []string{"b", "b"}, g.Successors("a"))
	assert.Equal(t, 2, g.Degree("b"))
}
