package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

func TestCycleDetection(t *testing.T) {
	t.Run("two node cycle reported exactly once", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{node("a", "A"), node("b", "B")},
			Edges: []domain.Connection{edge("e1", "a", "b"), edge("e2", "b", "a")},
		}
		got := byRuleID(runRule(Topology{}, d, Options{}), "DRC-TOPO-001")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityCritical, got[0].Severity)
		assert.ElementsMatch(t, []string{"a", "b"}, got[0].AffectedComponents)
		assert.Equal(t, "A → B → A", got[0].Location)
	})

	t.Run("dag reports no cycles", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{
				node("a", "A"), node("b", "B"), node("c", "C"), node("d", "D"), node("e", "E"),
			},
			Edges: []domain.Connection{
				edge("e1", "a", "b"), edge("e2", "a", "c"),
				edge("e3", "b", "d"), edge("e4", "c", "d"), edge("e5", "d", "e"),
			},
		}
		assert.Empty(t, byRuleID(runRule(Topology{}, d, Options{}), "DRC-TOPO-001"))
	})

	t.Run("disjoint cycles are both reported", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{
				node("a", "A"), node("b", "B"), node("c", "C"),
				node("x", "X"), node("y", "Y"), node("z", "Z"),
			},
			Edges: []domain.Connection{
				edge("e1", "a", "b"), edge("e2", "b", "c"), edge("e3", "c", "a"),
				edge("e4", "x", "y"), edge("e5", "y", "z"), edge("e6", "z", "x"),
			},
		}
		got := byRuleID(runRule(Topology{}, d, Options{}), "DRC-TOPO-001")
		require.Len(t, got, 2)
	})

	t.Run("self loop is a cycle", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{node("a", "A")},
			Edges: []domain.Connection{edge("e1", "a", "a")},
		}
		got := byRuleID(runRule(Topology{}, d, Options{}), "DRC-TOPO-001")
		require.Len(t, got, 1)
	})
}

func TestIsolatedComponents(t *testing.T) {
	d := &domain.ArchitectureDiagram{
		Nodes: []domain.ComponentNode{node("a", "A"), node("b", "B"), node("c", "Lonely")},
		Edges: []domain.Connection{edge("e1", "a", "b")},
	}
	got := byRuleID(runRule(Topology{}, d, Options{}), "DRC-TOPO-002")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"c"}, got[0].AffectedComponents)
}

func TestInterconnectFanLimit(t *testing.T) {
	build := func(fanOut int) *domain.ArchitectureDiagram {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{{ID: "xbar", Label: "Main Crossbar", Category: "interconnect"}},
		}
		for i := 0; i < fanOut; i++ {
			id := fmt.Sprintf("t%d", i)
			d.Nodes = append(d.Nodes, node(id, "T"+id))
			d.Edges = append(d.Edges, edge("e"+id, "xbar", id))
		}
		return d
	}

	t.Run("within limit is clean", func(t *testing.T) {
		assert.Empty(t, byRuleID(runRule(Topology{}, build(16), Options{}), "DRC-TOPO-003"))
	})

	t.Run("over limit reports exact counts", func(t *testing.T) {
		got := byRuleID(runRule(Topology{}, build(17), Options{}), "DRC-TOPO-003")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityWarning, got[0].Severity)
		assert.Contains(t, got[0].Description, "fan-out 17")
	})

	t.Run("non interconnect nodes are exempt", func(t *testing.T) {
		d := build(17)
		d.Nodes[0].Label = "CPU Cluster"
		d.Nodes[0].Category = "compute"
		assert.Empty(t, byRuleID(runRule(Topology{}, d, Options{}), "DRC-TOPO-003"))
	})
}
