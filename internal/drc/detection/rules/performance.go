package rules

import (
	"fmt"
	"strings"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// Performance flags clock domain crossings and excessively long request
// paths. The CDC check here is the authoritative one; the AXI-specific clock
// warning may co-occur on AXI links.
type Performance struct{}

func (Performance) Name() string { return "performance" }

func (r Performance) Apply(ctx *Context, c *Collector) {
	r.checkClockDomainCrossings(ctx, c)
	r.checkLongPaths(ctx, c)
}

func (Performance) checkClockDomainCrossings(ctx *Context, c *Collector) {
	for _, e := range ctx.Graph.Edges() {
		srcNode, okS := ctx.Graph.Node(e.Source)
		dstNode, okT := ctx.Graph.Node(e.Target)
		if !okS || !okT {
			continue
		}
		src, okS := ctx.Resolver.SourceEndpoint(e)
		dst, okT := ctx.Resolver.TargetEndpoint(e)
		if !okS || !okT || src.Speed == "" || dst.Speed == "" || src.Speed == dst.Speed {
			continue
		}
		c.Add(domain.DRCViolation{
			RuleID:              "DRC-PERF-001",
			RuleName:            "Clock Domain Crossing",
			Severity:            domain.SeverityWarning,
			Category:            domain.CategoryPerformance,
			Location:            fmt.Sprintf("%s.%s → %s.%s", srcNode.DisplayName(), src.Name, dstNode.DisplayName(), dst.Name),
			Description:         fmt.Sprintf("Connection crosses clock domains: %s to %s; synchronization hardware is required", src.Speed, dst.Speed),
			Suggestion:          "Add a CDC synchronizer or async FIFO on this connection",
			AffectedComponents:  []string{srcNode.ID, dstNode.ID},
			AffectedInterfaces:  []string{src.ID, dst.ID},
			AffectedConnections: []string{e.ID},
			Details:             map[string]any{"sourceSpeed": src.Speed, "targetSpeed": dst.Speed},
		})
	}
}

// checkLongPaths enumerates every simple forward path up to the configured
// depth from each node owning at least one master interface. This is
// deliberately exhaustive: the visited set is unmarked on backtrack so path
// reuse across branches is allowed, and every complete long path is
// reported, not just a shortest one. Bounded by the depth cap, so the
// apparent exponential blowup cannot run away.
func (Performance) checkLongPaths(ctx *Context, c *Collector) {
	maxDepth := ctx.Options.MaxPathDepth
	longHops := ctx.Options.LongPathHops

	for _, origin := range ctx.Graph.Nodes() {
		if !hasMasterInterface(ctx, origin.ID) {
			continue
		}

		visited := map[string]bool{origin.ID: true}
		path := []string{origin.ID}

		var walk func(nodeID string, depth int)
		walk = func(nodeID string, depth int) {
			canExtend := false
			for _, e := range ctx.Graph.OutEdges(nodeID) {
				next := e.Target
				if visited[next] || !ctx.Graph.HasNode(next) {
					continue
				}
				canExtend = true
				if depth >= maxDepth {
					continue
				}
				visited[next] = true
				path = append(path, next)
				walk(next, depth+1)
				path = path[:len(path)-1]
				delete(visited, next)
			}
			// a complete path ends where no further hop is possible
			if !canExtend && len(path)-1 > longHops {
				labels := make([]string, 0, len(path))
				for _, id := range path {
					n, _ := ctx.Graph.Node(id)
					labels = append(labels, n.DisplayName())
				}
				c.Add(domain.DRCViolation{
					RuleID:             "DRC-PERF-002",
					RuleName:           "Long Connection Path",
					Severity:           domain.SeverityInfo,
					Category:           domain.CategoryPerformance,
					Location:           strings.Join(labels, " → "),
					Description:        fmt.Sprintf("Request path from %s spans %d hops: %s", labels[0], len(path)-1, strings.Join(labels, " → ")),
					Suggestion:         "Consider flattening the hierarchy; each hop adds latency",
					AffectedComponents: append([]string(nil), path...),
					Details:            map[string]any{"hops": len(path) - 1},
				})
			}
		}
		walk(origin.ID, 0)
	}
}

func hasMasterInterface(ctx *Context, nodeID string) bool {
	for _, iface := range ctx.Resolver.Interfaces(nodeID) {
		if iface.Direction == domain.DirectionMaster {
			return true
		}
	}
	return false
}
