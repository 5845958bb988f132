package rules

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

func addrNode(id, label, base, size string) domain.ComponentNode {
	return domain.ComponentNode{ID: id, Label: label, TargetAddrBase: base, TargetAddrSpace: size}
}

func TestAddressOverlap(t *testing.T) {
	t.Run("overlapping ranges are critical", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x1000", "4KB"),
			addrNode("b", "Flash", "0x1800", "4KB"),
		}}
		got := byRuleID(runRule(AddressSpace{}, d, Options{}), "DRC-ADDR-001")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityCritical, got[0].Severity)
		assert.ElementsMatch(t, []string{"a", "b"}, got[0].AffectedComponents)
	})

	t.Run("adjacent ranges are clean", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x1000", "4KB"),
			addrNode("b", "Flash", "0x2000", "4KB"),
		}}
		assert.Empty(t, byRuleID(runRule(AddressSpace{}, d, Options{}), "DRC-ADDR-001"))
	})

	t.Run("nodes without an address pair are excluded", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x1000", "4KB"),
			{ID: "b", Label: "CPU"},
			{ID: "c", Label: "Broken", TargetAddrBase: "0x2000", TargetAddrSpace: "not-a-size"},
		}}
		assert.Empty(t, runRule(AddressSpace{}, d, Options{ReservedRanges: []ReservedRange{}}))
	})

	t.Run("big ranges do not overflow", func(t *testing.T) {
		// two 4TB regions at the top of a 64-bit map
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "HBM0", "0xFFFFF00000000000", "4TB"),
			addrNode("b", "HBM1", "0xFFFFF00000000000", "4TB"),
		}}
		got := byRuleID(runRule(AddressSpace{}, d, Options{ReservedRanges: []ReservedRange{}}), "DRC-ADDR-001")
		require.Len(t, got, 1)
	})
}

func TestAddressAlignment(t *testing.T) {
	t.Run("unaligned base is a warning", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x1800", "4KB"),
		}}
		got := byRuleID(runRule(AddressSpace{}, d, Options{}), "DRC-ADDR-002")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityWarning, got[0].Severity)
	})

	t.Run("aligned base is clean", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x2000", "4KB"),
		}}
		assert.Empty(t, byRuleID(runRule(AddressSpace{}, d, Options{}), "DRC-ADDR-002"))
	})
}

func TestReservedRanges(t *testing.T) {
	t.Run("boot ROM overlap is info", func(t *testing.T) {
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x0", "1MB"),
		}}
		got := byRuleID(runRule(AddressSpace{}, d, Options{}), "DRC-ADDR-003")
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityInfo, got[0].Severity)
		assert.Contains(t, got[0].Description, "Boot ROM")
	})

	t.Run("table is configurable", func(t *testing.T) {
		custom := []ReservedRange{{
			Name: "Debug APB",
			Base: big.NewInt(0x80000000),
			End:  big.NewInt(0x8000FFFF),
		}}
		d := &domain.ArchitectureDiagram{Nodes: []domain.ComponentNode{
			addrNode("a", "SRAM", "0x0", "1MB"),
			addrNode("b", "Trace", "0x80000000", "4KB"),
		}}
		got := byRuleID(runRule(AddressSpace{}, d, Options{ReservedRanges: custom}), "DRC-ADDR-003")
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Description, "Debug APB")
	})
}
