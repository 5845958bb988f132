// Package service exposes the DRC analysis pipeline: parse the diagram,
// build the graph snapshot, run the rule catalogue, hand back the report.
package service

import (
	"context"
	"time"

	"github.com/socforge/drc-backend/internal/catalog"
	"github.com/socforge/drc-backend/internal/drc/detection"
	"github.com/socforge/drc-backend/internal/drc/detection/rules"
	"github.com/socforge/drc-backend/internal/drc/domain"
	"github.com/socforge/drc-backend/internal/drc/graph"
	"github.com/socforge/drc-backend/internal/drc/ingest"
)

// Analyze runs the full design rule check over an already-parsed diagram.
// catalogue may be nil; opts zero value uses the defaults. The diagram is
// treated as immutable and the engine keeps no state across calls, so the
// same input always yields the same report (modulo timestamp).
func Analyze(ctx context.Context, diagram *domain.ArchitectureDiagram, catalogue catalog.Provider, opts rules.Options) *domain.DRCResult {
	start := time.Now()
	logger := NewLogger(ctx)

	g := graph.Build(diagram)
	var lookup graph.CatalogueLookup
	if catalogue != nil {
		lookup = catalogue
	}
	resolver := graph.NewResolver(g, lookup)

	result := detection.Run(g, resolver, opts)

	// Nodes without any resolvable interfaces are a data-quality gap, not
	// a DRC violation; interface-level rules were silently disabled for
	// them, which the caller deserves to know about.
	for _, nodeID := range resolver.Unresolved() {
		logger.LogWarnf("drc_analyze", "node %s has no embedded or catalogue interfaces; interface rules skipped", nodeID)
	}

	logger.LogInfof("drc_analyze", "checked %d nodes, %d edges: %d violations (critical=%d warning=%d info=%d) passed=%t",
		len(diagram.Nodes), len(diagram.Edges), result.TotalChecks,
		result.Summary.Critical, result.Summary.Warning, result.Summary.Info, result.Passed)
	recordAnalyze(time.Since(start), result.TotalChecks, nil)
	return result
}

// AnalyzeJSON parses a raw diagram document and runs the check. Structural
// problems fail the whole call before any rule runs; no partial report is
// produced.
func AnalyzeJSON(ctx context.Context, raw []byte, catalogue catalog.Provider, opts rules.Options) (*domain.DRCResult, error) {
	logger := NewLogger(ctx)
	diagram, err := ingest.ParseDiagram(raw)
	if err != nil {
		logger.LogError("drc_analyze", err)
		recordAnalyze(0, 0, err)
		return nil, err
	}
	return Analyze(ctx, diagram, catalogue, opts), nil
}
