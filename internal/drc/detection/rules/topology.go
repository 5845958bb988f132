package rules

import (
	"fmt"
	"strings"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// Topology runs the structural graph checks: directed cycles, isolated
// components and overloaded interconnects.
type Topology struct{}

func (Topology) Name() string { return "topology" }

func (r Topology) Apply(ctx *Context, c *Collector) {
	r.checkCycles(ctx, c)
	r.checkIsolated(ctx, c)
	r.checkInterconnectFan(ctx, c)
}

// checkCycles is a depth-first search over the directed edge set using an
// explicit frame stack instead of call-stack recursion, so pathological
// diagrams cannot exhaust the goroutine stack. A back-edge to a node on the
// current path yields a cycle; cycles are deduplicated by a rotation-
// normalized key so re-encounters report once.
func (Topology) checkCycles(ctx *Context, c *Collector) {
	type frame struct {
		node string
		next int
	}

	visited := make(map[string]bool)
	reported := make(map[string]bool)

	for _, start := range ctx.Graph.Nodes() {
		if visited[start.ID] {
			continue
		}

		stack := []frame{{node: start.ID}}
		onPath := map[string]int{start.ID: 0} // node -> index into stack
		visited[start.ID] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := ctx.Graph.Successors(top.node)
			if top.next >= len(succ) {
				delete(onPath, top.node)
				stack = stack[:len(stack)-1]
				continue
			}
			next := succ[top.next]
			top.next++

			if depth, on := onPath[next]; on {
				cycle := make([]string, 0, len(stack)-depth)
				for _, f := range stack[depth:] {
					cycle = append(cycle, f.node)
				}
				key := cycleKey(cycle)
				if reported[key] {
					continue
				}
				reported[key] = true

				labels := make([]string, 0, len(cycle)+1)
				ids := make([]string, 0, len(cycle))
				for _, id := range cycle {
					n, _ := ctx.Graph.Node(id)
					labels = append(labels, n.DisplayName())
					ids = append(ids, id)
				}
				labels = append(labels, labels[0]) // close the loop
				c.Add(domain.DRCViolation{
					RuleID:             "DRC-TOPO-001",
					RuleName:           "Combinational Loop",
					Severity:           domain.SeverityCritical,
					Category:           domain.CategoryTopology,
					Location:           strings.Join(labels, " → "),
					Description:        fmt.Sprintf("Directed cycle detected through %d components: %s", len(cycle), strings.Join(labels, " → ")),
					Suggestion:         "Break the loop; on-chip request paths must form a DAG",
					AffectedComponents: ids,
				})
				continue
			}
			if visited[next] || !ctx.Graph.HasNode(next) {
				continue
			}
			visited[next] = true
			onPath[next] = len(stack)
			stack = append(stack, frame{node: next})
		}
	}
}

// cycleKey normalizes a cycle to its rotation starting at the smallest node
// ID, so the same cycle entered at different points maps to one key.
func cycleKey(cycle []string) string {
	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[min:]...)
	rotated = append(rotated, cycle[:min]...)
	return strings.Join(rotated, "\x00")
}

func (Topology) checkIsolated(ctx *Context, c *Collector) {
	for _, n := range ctx.Graph.Nodes() {
		if ctx.Graph.Degree(n.ID) > 0 {
			continue
		}
		c.Add(domain.DRCViolation{
			RuleID:             "DRC-TOPO-002",
			RuleName:           "Isolated Component",
			Severity:           domain.SeverityWarning,
			Category:           domain.CategoryTopology,
			Location:           n.DisplayName(),
			Description:        fmt.Sprintf("Component %s has no connections", n.DisplayName()),
			Suggestion:         "Connect the component or remove it from the diagram",
			AffectedComponents: []string{n.ID},
		})
	}
}

func (Topology) checkInterconnectFan(ctx *Context, c *Collector) {
	limit := ctx.Options.MaxInterconnectFanOut
	for _, n := range ctx.Graph.Nodes() {
		if !ctx.Options.IsInterconnect(n) {
			continue
		}
		fanOut := len(ctx.Graph.OutEdges(n.ID))
		fanIn := len(ctx.Graph.InEdges(n.ID))
		if fanOut <= limit && fanIn <= limit {
			continue
		}
		c.Add(domain.DRCViolation{
			RuleID:             "DRC-TOPO-003",
			RuleName:           "Interconnect Fan Limit",
			Severity:           domain.SeverityWarning,
			Category:           domain.CategoryTopology,
			Location:           n.DisplayName(),
			Description:        fmt.Sprintf("Interconnect %s has fan-in %d and fan-out %d (limit %d per direction)", n.DisplayName(), fanIn, fanOut, limit),
			Suggestion:         "Split the interconnect or cascade multiple stages",
			AffectedComponents: []string{n.ID},
			Details:            map[string]any{"fanIn": fanIn, "fanOut": fanOut, "limit": limit},
		})
	}
}
