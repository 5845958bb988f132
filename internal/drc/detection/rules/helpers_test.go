package rules

import (
	"github.com/socforge/drc-backend/internal/drc/domain"
	"github.com/socforge/drc-backend/internal/drc/graph"
)

// runRule applies one rule group to a diagram and returns the collected
// violations.
func runRule(rule Rule, d *domain.ArchitectureDiagram, opts Options) []domain.DRCViolation {
	g := graph.Build(d)
	ctx := &Context{
		Graph:    g,
		Resolver: graph.NewResolver(g, nil),
		Options:  opts.Normalize(),
	}
	c := NewCollector()
	rule.Apply(ctx, c)
	return c.Violations()
}

func axiIface(id string, dir domain.Direction, dataWidth int) domain.ComponentInterface {
	return domain.ComponentInterface{
		ID:        id,
		Name:      id,
		BusType:   domain.BusAXI4,
		Direction: dir,
		DataWidth: dataWidth,
	}
}

func node(id, label string, ifaces ...domain.ComponentInterface) domain.ComponentNode {
	return domain.ComponentNode{ID: id, Label: label, Interfaces: ifaces}
}

func edge(id, src, dst string) domain.Connection {
	return domain.Connection{ID: id, Source: src, Target: dst}
}

func edgeH(id, src, srcHandle, dst, dstHandle string) domain.Connection {
	return domain.Connection{ID: id, Source: src, SourceHandle: srcHandle, Target: dst, TargetHandle: dstHandle}
}

func byRuleID(violations []domain.DRCViolation, ruleID string) []domain.DRCViolation {
	var out []domain.DRCViolation
	for _, v := range violations {
		if v.RuleID == ruleID {
			out = append(out, v)
		}
	}
	return out
}
