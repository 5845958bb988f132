package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

func TestClockDomainCrossing(t *testing.T) {
	withSpeed := func(iface domain.ComponentInterface, speed string) domain.ComponentInterface {
		iface.Speed = speed
		return iface
	}

	t.Run("different speeds are flagged", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{
				node("cpu", "CPU", withSpeed(axiIface("m0", domain.DirectionMaster, 64), "800 MHz")),
				node("per", "Peripheral", withSpeed(axiIface("s0", domain.DirectionSlave, 64), "100 MHz")),
			},
			Edges: []domain.Connection{edge("e1", "cpu", "per")},
		}
		got := byRuleID(runRule(Performance{}, d, Options{}), "DRC-PERF-001")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityWarning, got[0].Severity)
		assert.Contains(t, got[0].Description, "800 MHz")
		assert.Contains(t, got[0].Description, "100 MHz")
	})

	t.Run("same speed or missing speed is clean", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{
			Nodes: []domain.ComponentNode{
				node("cpu", "CPU", withSpeed(axiIface("m0", domain.DirectionMaster, 64), "800 MHz")),
				node("mem", "Memory", withSpeed(axiIface("s0", domain.DirectionSlave, 64), "800 MHz")),
				node("dbg", "Debug", axiIface("s1", domain.DirectionSlave, 32)),
			},
			Edges: []domain.Connection{edge("e1", "cpu", "mem"), edge("e2", "cpu", "dbg")},
		}
		assert.Empty(t, byRuleID(runRule(Performance{}, d, Options{}), "DRC-PERF-001"))
	})
}

// chain builds n0 -> n1 -> ... -> n(k); n0 owns a master interface so path
// enumeration starts there.
func chain(hops int) *domain.ArchitectureDiagram {
	d := &domain.ArchitectureDiagram{}
	for i := 0; i <= hops; i++ {
		id := fmt.Sprintf("n%d", i)
		n := node(id, fmt.Sprintf("N%d", i))
		if i == 0 {
			n.Interfaces = []domain.ComponentInterface{axiIface("m0", domain.DirectionMaster, 64)}
		}
		d.Nodes = append(d.Nodes, n)
	}
	for i := 0; i < hops; i++ {
		d.Edges = append(d.Edges, edge(fmt.Sprintf("e%d", i), fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1)))
	}
	return d
}

func TestLongConnectionPath(t *testing.T) {
	t.Run("five hop complete path is reported", func(t *testing.T) {
		got := byRuleID(runRule(Performance{}, chain(5), Options{}), "DRC-PERF-002")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityInfo, got[0].Severity)
		assert.Equal(t, "N0 → N1 → N2 → N3 → N4 → N5", got[0].Location)
		assert.Equal(t, 5, got[0].Details["hops"])
	})

	t.Run("four hops is fine", func(t *testing.T) {
		assert.Empty(t, byRuleID(runRule(Performance{}, chain(4), Options{}), "DRC-PERF-002"))
	})

	t.Run("branching reports every long path", func(t *testing.T) {
		d := chain(5)
		// second arm: n4 also feeds an alternate terminal
		d.Nodes = append(d.Nodes, node("alt", "Alt"))
		d.Edges = append(d.Edges, edge("ealt", "n4", "alt"))
		got := byRuleID(runRule(Performance{}, d, Options{}), "DRC-PERF-002")
		require.Len(t, got, 2)
	})
}
