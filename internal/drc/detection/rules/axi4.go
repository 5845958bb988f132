package rules

import (
	"fmt"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// AXI4Parameters checks width, ID and clock parameters across every edge
// where both resolved interfaces belong to the AXI family.
type AXI4Parameters struct{}

func (AXI4Parameters) Name() string { return "axi4_parameters" }

func (AXI4Parameters) Apply(ctx *Context, c *Collector) {
	for _, e := range ctx.Graph.Edges() {
		srcNode, okS := ctx.Graph.Node(e.Source)
		dstNode, okT := ctx.Graph.Node(e.Target)
		if !okS || !okT {
			continue
		}
		src, okS := ctx.Resolver.SourceEndpoint(e)
		dst, okT := ctx.Resolver.TargetEndpoint(e)
		if !okS || !okT || !src.BusType.IsAXI() || !dst.BusType.IsAXI() {
			continue
		}

		loc := fmt.Sprintf("%s.%s → %s.%s", srcNode.DisplayName(), src.Name, dstNode.DisplayName(), dst.Name)
		add := func(ruleID, ruleName string, sev domain.Severity, desc, hint string, details map[string]any) {
			c.Add(domain.DRCViolation{
				RuleID:              ruleID,
				RuleName:            ruleName,
				Severity:            sev,
				Category:            domain.CategoryAXI4,
				Location:            loc,
				Description:         desc,
				Suggestion:          hint,
				AffectedComponents:  []string{srcNode.ID, dstNode.ID},
				AffectedInterfaces:  []string{src.ID, dst.ID},
				AffectedConnections: []string{e.ID},
				Details:             details,
			})
		}

		if src.DataWidth > 0 && dst.DataWidth > 0 && src.DataWidth != dst.DataWidth {
			add("DRC-AXI-001", "AXI Data Width Matching", domain.SeverityCritical,
				fmt.Sprintf("AXI data width mismatch: %d bits connected to %d bits", src.DataWidth, dst.DataWidth),
				"Match the data widths or insert a width converter",
				map[string]any{"sourceDataWidth": src.DataWidth, "targetDataWidth": dst.DataWidth})
		}

		// A wider master ID cannot be represented by a narrower slave ID
		// field. The reverse direction is fine.
		if src.IDWidth > 0 && dst.IDWidth > 0 && src.IDWidth > dst.IDWidth {
			add("DRC-AXI-002", "AXI ID Width Capacity", domain.SeverityCritical,
				fmt.Sprintf("Master ID width %d exceeds slave ID width %d; transaction IDs would be truncated", src.IDWidth, dst.IDWidth),
				"Widen the slave ID field or narrow the master ID field",
				map[string]any{"masterIdWidth": src.IDWidth, "slaveIdWidth": dst.IDWidth})
		}

		if src.AddrWidth > 0 && dst.AddrWidth > 0 && src.AddrWidth != dst.AddrWidth {
			add("DRC-AXI-003", "AXI Address Width Matching", domain.SeverityWarning,
				fmt.Sprintf("AXI address width mismatch: %d bits connected to %d bits", src.AddrWidth, dst.AddrWidth),
				"Align address widths to avoid truncated address decoding",
				map[string]any{"sourceAddrWidth": src.AddrWidth, "targetAddrWidth": dst.AddrWidth})
		}

		if src.Speed != "" && dst.Speed != "" && src.Speed != dst.Speed {
			add("DRC-AXI-004", "AXI Clock Matching", domain.SeverityWarning,
				fmt.Sprintf("AXI interfaces run at different clocks: %s vs %s", src.Speed, dst.Speed),
				"Verify the clock domain crossing between these interfaces",
				map[string]any{"sourceSpeed": src.Speed, "targetSpeed": dst.Speed})
		}
	}
}
