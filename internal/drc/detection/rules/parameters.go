package rules

import (
	"fmt"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// canonicalDataWidths are the usual power-of-two bus widths. Anything else
// that still parses as a positive integer is unusual but not illegal.
var canonicalDataWidths = map[int]bool{
	8: true, 16: true, 32: true, 64: true,
	128: true, 256: true, 512: true, 1024: true, 2048: true,
}

// ParameterValidity checks per-node and per-interface parameter sanity:
// labels must exist and every resolved interface needs a positive dataWidth.
type ParameterValidity struct{}

func (ParameterValidity) Name() string { return "parameter_validity" }

func (ParameterValidity) Apply(ctx *Context, c *Collector) {
	for _, node := range ctx.Graph.Nodes() {
		if node.Label == "" {
			c.Add(domain.DRCViolation{
				RuleID:             "DRC-PARAM-001",
				RuleName:           "Component Label Required",
				Severity:           domain.SeverityCritical,
				Category:           domain.CategoryParameters,
				Location:           node.ID,
				Description:        fmt.Sprintf("Component %s has no label", node.ID),
				Suggestion:         "Give every component a display name",
				AffectedComponents: []string{node.ID},
			})
		}

		for _, iface := range ctx.Resolver.Interfaces(node.ID) {
			loc := fmt.Sprintf("%s.%s", node.DisplayName(), iface.Name)
			switch {
			case iface.DataWidth > 0:
				if !canonicalDataWidths[iface.DataWidth] {
					c.Add(domain.DRCViolation{
						RuleID:             "DRC-PARAM-003",
						RuleName:           "Non-Standard Data Width",
						Severity:           domain.SeverityWarning,
						Category:           domain.CategoryParameters,
						Location:           loc,
						Description:        fmt.Sprintf("Data width %d on %s is not a canonical bus width", iface.DataWidth, loc),
						Suggestion:         "Use a power-of-two width between 8 and 2048 unless the IP requires otherwise",
						AffectedComponents: []string{node.ID},
						AffectedInterfaces: []string{iface.ID},
						Details:            map[string]any{"dataWidth": iface.DataWidth},
					})
				}
			case iface.DataWidthRaw != "":
				c.Add(domain.DRCViolation{
					RuleID:             "DRC-PARAM-002",
					RuleName:           "Data Width Required",
					Severity:           domain.SeverityCritical,
					Category:           domain.CategoryParameters,
					Location:           loc,
					Description:        fmt.Sprintf("Data width %q on %s is not a positive integer", iface.DataWidthRaw, loc),
					Suggestion:         "Set dataWidth to a positive number of bits",
					AffectedComponents: []string{node.ID},
					AffectedInterfaces: []string{iface.ID},
					Details:            map[string]any{"dataWidth": iface.DataWidthRaw},
				})
			default:
				c.Add(domain.DRCViolation{
					RuleID:             "DRC-PARAM-002",
					RuleName:           "Data Width Required",
					Severity:           domain.SeverityCritical,
					Category:           domain.CategoryParameters,
					Location:           loc,
					Description:        fmt.Sprintf("Interface %s declares no data width", loc),
					Suggestion:         "Set dataWidth to a positive number of bits",
					AffectedComponents: []string{node.ID},
					AffectedInterfaces: []string{iface.ID},
				})
			}
		}
	}
}
