// Package graph builds the queryable in-memory model the DRC rules run
// against. Nodes live in a flat array; everything else references them by
// index so ownership stays trivial.
package graph

import "github.com/socforge/drc-backend/internal/drc/domain"

// Graph is one immutable snapshot of a diagram. Built once per analysis
// call, read by every rule group, never mutated.
type Graph struct {
	nodes []domain.ComponentNode
	edges []domain.Connection

	index map[string]int   // node ID -> index into nodes
	out   map[string][]int // node ID -> indexes into edges (as source)
	in    map[string][]int // node ID -> indexes into edges (as target)
}

// Build constructs the graph snapshot. Edges referencing unknown nodes are
// kept as-is: the connectivity rules report them, so dropping them here
// would hide violations.
func Build(d *domain.ArchitectureDiagram) *Graph {
	g := &Graph{
		nodes: d.Nodes,
		edges: d.Edges,
		index: make(map[string]int, len(d.Nodes)),
		out:   make(map[string][]int),
		in:    make(map[string][]int),
	}
	for i, n := range d.Nodes {
		g.index[n.ID] = i
	}
	for i, e := range d.Edges {
		g.out[e.Source] = append(g.out[e.Source], i)
		g.in[e.Target] = append(g.in[e.Target], i)
	}
	return g
}

// Nodes returns the flat node array in diagram order.
func (g *Graph) Nodes() []domain.ComponentNode { return g.nodes }

// Edges returns the edge array in diagram order.
func (g *Graph) Edges() []domain.Connection { return g.edges }

// Node looks up a node by ID.
func (g *Graph) Node(id string) (domain.ComponentNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return domain.ComponentNode{}, false
	}
	return g.nodes[i], true
}

// HasNode reports whether an ID resolves to a node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// OutEdges returns the edges leaving a node, in diagram order.
func (g *Graph) OutEdges(id string) []domain.Connection {
	return g.edgesAt(g.out[id])
}

// InEdges returns the edges entering a node, in diagram order.
func (g *Graph) InEdges(id string) []domain.Connection {
	return g.edgesAt(g.in[id])
}

// Degree returns the total number of edges touching a node.
func (g *Graph) Degree(id string) int {
	return len(g.out[id]) + len(g.in[id])
}

// Successors returns the target node IDs of a node's outgoing edges,
// including duplicates when parallel edges exist.
func (g *Graph) Successors(id string) []string {
	idxs := g.out[id]
	if len(idxs) == 0 {
		return nil
	}
	succ := make([]string, 0, len(idxs))
	for _, i := range idxs {
		succ = append(succ, g.edges[i].Target)
	}
	return succ
}

func (g *Graph) edgesAt(idxs []int) []domain.Connection {
	if len(idxs) == 0 {
		return nil
	}
	out := make([]domain.Connection, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.edges[i])
	}
	return out
}
