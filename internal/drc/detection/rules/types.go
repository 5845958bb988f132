// Package rules contains the DRC rule catalogue. Every rule group is one
// named unit conforming to the same contract; the detection engine runs the
// groups in a fixed registered order against one immutable graph snapshot.
package rules

import (
	"math/big"
	"strings"

	"github.com/socforge/drc-backend/internal/drc/domain"
	"github.com/socforge/drc-backend/internal/drc/graph"
)

// ReservedRange is one entry of the reserved address range table.
type ReservedRange struct {
	Name string
	Base *big.Int
	End  *big.Int
}

// DefaultReservedRanges returns the platform reserved ranges checked by the
// address space rules when the caller supplies none.
func DefaultReservedRanges() []ReservedRange {
	return []ReservedRange{
		{Name: "Boot ROM", Base: big.NewInt(0x00000000), End: big.NewInt(0x000FFFFF)},
		{Name: "High Vectors", Base: big.NewInt(0xFFFF0000), End: big.NewInt(0xFFFFFFFF)},
	}
}

// Options carries the per-run tunables. The zero value is usable; Normalize
// fills in the defaults.
type Options struct {
	// CheckOptionalPorts makes unconnected optional interfaces reportable.
	CheckOptionalPorts bool

	// ReservedRanges overrides the reserved address range table.
	ReservedRanges []ReservedRange

	// IsInterconnect decides whether a node arbitrates between masters.
	// The default is a lenient substring match on label, model type and
	// category; callers wanting deterministic classification can swap in
	// their own predicate.
	IsInterconnect func(domain.ComponentNode) bool

	// MaxInterconnectFanOut bounds per-direction edge counts on
	// interconnect nodes before the topology rules flag them.
	MaxInterconnectFanOut int

	// MaxPathDepth caps the forward path enumeration.
	MaxPathDepth int

	// LongPathHops is the hop count above which a complete path is
	// reported.
	LongPathHops int
}

// Normalize returns a copy with defaults applied.
func (o Options) Normalize() Options {
	if o.ReservedRanges == nil {
		o.ReservedRanges = DefaultReservedRanges()
	}
	if o.IsInterconnect == nil {
		o.IsInterconnect = DefaultInterconnectHeuristic
	}
	if o.MaxInterconnectFanOut <= 0 {
		o.MaxInterconnectFanOut = 16
	}
	if o.MaxPathDepth <= 0 {
		o.MaxPathDepth = 5
	}
	if o.LongPathHops <= 0 {
		o.LongPathHops = 4
	}
	return o
}

// DefaultInterconnectHeuristic matches nodes whose label, model type or
// category mentions an arbitration component. Intentionally lenient.
func DefaultInterconnectHeuristic(n domain.ComponentNode) bool {
	for _, s := range []string{n.Label, n.ModelType, n.Category} {
		s = strings.ToLower(s)
		if strings.Contains(s, "interconnect") || strings.Contains(s, "crossbar") || strings.Contains(s, "arbiter") {
			return true
		}
	}
	return false
}

// Context is what a rule group sees: the graph snapshot, the interface
// resolver and the normalized options. Rules must not mutate any of it.
type Context struct {
	Graph    *graph.Graph
	Resolver *graph.Resolver
	Options  Options
}

// Rule is one rule group: a pure function from the graph snapshot to zero
// or more violations, emitted through the collector.
type Rule interface {
	Name() string
	Apply(ctx *Context, c *Collector)
}
