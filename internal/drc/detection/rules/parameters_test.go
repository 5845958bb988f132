package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

func TestComponentLabelRequired(t *testing.T) {
	d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
		{ID: "node-1"},
		{ID: "node-2", Label: "CPU"},
	}}
	got := byRuleID(runRule(ParameterValidity{}, d, Options{}), "DRC-PARAM-001")
	require.Len(t, got, 1)
	assert.Equal(t, domain.SeverityCritical, got[0].Severity)
	assert.Equal(t, []string{"node-1"}, got[0].AffectedComponents)
}

func TestDataWidthValidity(t *testing.T) {
	t.Run("missing data width is critical", func(t *testing.T) {
		iface := domain.ComponentInterface{ID: "m0", Name: "m0", Direction: domain.DirectionMaster}
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{node("cpu", "CPU", iface)}}
		got := byRuleID(runRule(ParameterValidity{}, d, Options{}), "DRC-PARAM-002")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityCritical, got[0].Severity)
	})

	t.Run("non numeric data width echoes the value", func(t *testing.T) {
		iface := domain.ComponentInterface{ID: "m0", Name: "m0", Direction: domain.DirectionMaster, DataWidthRaw: "wide"}
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{node("cpu", "CPU", iface)}}
		got := byRuleID(runRule(ParameterValidity{}, d, Options{}), "DRC-PARAM-002")
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Description, `"wide"`)
	})

	t.Run("unusual width is a warning only", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			node("cpu", "CPU", axiIface("m0", domain.DirectionMaster, 48)),
		}}
		got := runRule(ParameterValidity{}, d, Options{})
		require.Len(t, got, 1)
		assert.Equal(t, "DRC-PARAM-003", got[0].RuleID)
		assert.Equal(t, domain.SeverityWarning, got[0].Severity)
	})

	t.Run("canonical widths are clean", func(t *testing.T) {
		for _, w := range []int{8, 16, 32, 64, 128, 256, 512, 1024, 2048} {
			d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
				node("cpu", "CPU", axiIface("m0", domain.DirectionMaster, w)),
			}}
			assert.Empty(t, runRule(ParameterValidity{}, d, Options{}), "width %d", w)
		}
	})
}
