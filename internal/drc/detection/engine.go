// Package detection runs the DRC rule catalogue against one graph snapshot
// and assembles the report.
package detection

import (
	"time"

	"github.com/socforge/drc-backend/internal/drc/detection/rules"
	"github.com/socforge/drc-backend/internal/drc/domain"
	"github.com/socforge/drc-backend/internal/drc/graph"
)

// Registry returns the rule groups in their fixed execution order. The order
// only affects violation ID numbering, which must stay stable so repeated
// runs on the same diagram produce identical reports. Adding a rule means
// appending one entry here.
func Registry() []rules.Rule {
	return []rules.Rule{
		rules.Connectivity{},
		rules.AXI4Parameters{},
		rules.AddressSpace{},
		rules.Topology{},
		rules.Performance{},
		rules.ParameterValidity{},
		rules.NamingConvention{},
	}
}

// Run executes every registered rule group against the graph snapshot and
// returns the assembled report. The graph is read-only throughout; the
// collector and its counter are scoped to this call.
func Run(g *graph.Graph, r *graph.Resolver, opts rules.Options) *domain.DRCResult {
	ctx := &rules.Context{
		Graph:    g,
		Resolver: r,
		Options:  opts.Normalize(),
	}
	collector := rules.NewCollector()
	for _, rule := range Registry() {
		rule.Apply(ctx, collector)
	}

	summary := collector.Summary()
	return &domain.DRCResult{
		Timestamp:   time.Now().UTC(),
		TotalChecks: collector.Count(),
		Violations:  collector.Violations(),
		Summary:     summary,
		Passed:      summary.Critical == 0,
	}
}
