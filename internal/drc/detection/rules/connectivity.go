package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// Connectivity validates that every wire lands on an existing node, that
// roles and bus types line up across each edge, that no port is wired twice
// and that non-optional master/slave interfaces are actually connected.
type Connectivity struct{}

func (Connectivity) Name() string { return "connectivity" }

func (r Connectivity) Apply(ctx *Context, c *Collector) {
	r.checkEndpointExistence(ctx, c)
	r.checkRoleAndBusMatching(ctx, c)
	r.checkHandleResolution(ctx, c)
	r.checkUnconnectedInterfaces(ctx, c)
	r.checkMultipleMasters(ctx, c)
	r.checkPortExclusivity(ctx, c)
}

func (Connectivity) checkEndpointExistence(ctx *Context, c *Collector) {
	for _, e := range ctx.Graph.Edges() {
		for _, end := range []struct {
			side string
			id   string
		}{{"source", e.Source}, {"target", e.Target}} {
			if ctx.Graph.HasNode(end.id) {
				continue
			}
			c.Add(domain.DRCViolation{
				RuleID:              "DRC-CONN-001",
				RuleName:            "Edge Endpoint Existence",
				Severity:            domain.SeverityCritical,
				Category:            domain.CategoryConnectivity,
				Location:            fmt.Sprintf("connection %s", e.ID),
				Description:         fmt.Sprintf("Connection %s references %s node %q which does not exist in the diagram", e.ID, end.side, end.id),
				Suggestion:          "Remove the dangling connection or restore the missing component",
				AffectedConnections: []string{e.ID},
				Details:             map[string]any{"side": end.side, "nodeId": end.id},
			})
		}
	}
}

func (Connectivity) checkRoleAndBusMatching(ctx *Context, c *Collector) {
	for _, e := range ctx.Graph.Edges() {
		srcNode, okS := ctx.Graph.Node(e.Source)
		dstNode, okT := ctx.Graph.Node(e.Target)
		if !okS || !okT {
			continue
		}
		src, okS := ctx.Resolver.SourceEndpoint(e)
		dst, okT := ctx.Resolver.TargetEndpoint(e)
		if !okS || !okT {
			// role matching only applies when both endpoints resolved
			continue
		}

		loc := fmt.Sprintf("%s.%s → %s.%s", srcNode.DisplayName(), src.Name, dstNode.DisplayName(), dst.Name)
		addRole := func(sev domain.Severity, desc, hint string) {
			c.Add(domain.DRCViolation{
				RuleID:              "DRC-CONN-002",
				RuleName:            "Interface Role Matching",
				Severity:            sev,
				Category:            domain.CategoryConnectivity,
				Location:            loc,
				Description:         desc,
				Suggestion:          hint,
				AffectedComponents:  []string{srcNode.ID, dstNode.ID},
				AffectedInterfaces:  []string{src.ID, dst.ID},
				AffectedConnections: []string{e.ID},
				Details:             map[string]any{"sourceDirection": string(src.Direction), "targetDirection": string(dst.Direction)},
			})
		}

		switch {
		case src.Direction == domain.DirectionMaster && dst.Direction != domain.DirectionSlave:
			addRole(domain.SeverityCritical,
				fmt.Sprintf("Master interface %q drives a %s interface; a master must be wired to a slave", src.Name, dst.Direction),
				"Connect the master to a slave interface, or insert an interconnect")
		case src.Direction == domain.DirectionSlave && dst.Direction == domain.DirectionSlave:
			addRole(domain.SeverityCritical,
				"Two slave interfaces are wired together; no side can initiate transactions",
				"One endpoint must be a master interface")
		case src.Direction == domain.DirectionOut && dst.Direction == domain.DirectionOut:
			addRole(domain.SeverityCritical,
				"Two output signals are wired together",
				"Connect the output to an input")
		case src.Direction == domain.DirectionIn && dst.Direction == domain.DirectionIn:
			addRole(domain.SeverityCritical,
				"Two input signals are wired together; nothing drives this wire",
				"Connect an output to these inputs")
		case src.Direction == domain.DirectionIn && dst.Direction == domain.DirectionOut:
			addRole(domain.SeverityWarning,
				"Signal flow appears reversed: an input drives an output",
				"Swap the connection direction")
		}

		if src.BusType != "" && dst.BusType != "" && src.BusType != dst.BusType {
			c.Add(domain.DRCViolation{
				RuleID:              "DRC-CONN-003",
				RuleName:            "Bus Type Matching",
				Severity:            domain.SeverityCritical,
				Category:            domain.CategoryConnectivity,
				Location:            loc,
				Description:         fmt.Sprintf("Bus type mismatch: %s connected to %s; no implicit protocol conversion is assumed", src.BusType, dst.BusType),
				Suggestion:          "Insert a protocol bridge or use matching bus types",
				AffectedComponents:  []string{srcNode.ID, dstNode.ID},
				AffectedInterfaces:  []string{src.ID, dst.ID},
				AffectedConnections: []string{e.ID},
				Details:             map[string]any{"sourceBusType": string(src.BusType), "targetBusType": string(dst.BusType)},
			})
		}
	}
}

// checkHandleResolution flags edges whose explicit handle names an interface
// the node does not have. Skipped for nodes without any resolvable
// interfaces, which are a data-quality gap rather than a wiring error.
func (Connectivity) checkHandleResolution(ctx *Context, c *Collector) {
	for _, e := range ctx.Graph.Edges() {
		for _, end := range []struct {
			side   string
			nodeID string
			handle string
		}{{"source", e.Source, e.SourceHandle}, {"target", e.Target, e.TargetHandle}} {
			if end.handle == "" {
				continue
			}
			node, ok := ctx.Graph.Node(end.nodeID)
			if !ok || len(ctx.Resolver.Interfaces(end.nodeID)) == 0 {
				continue
			}
			if _, ok := ctx.Resolver.Interface(end.nodeID, end.handle); ok {
				continue
			}
			c.Add(domain.DRCViolation{
				RuleID:              "DRC-CONN-004",
				RuleName:            "Handle Resolution",
				Severity:            domain.SeverityCritical,
				Category:            domain.CategoryConnectivity,
				Location:            fmt.Sprintf("connection %s", e.ID),
				Description:         fmt.Sprintf("Connection %s names %s interface %q which does not exist on %s", e.ID, end.side, end.handle, node.DisplayName()),
				Suggestion:          "Point the connection at an existing interface",
				AffectedComponents:  []string{end.nodeID},
				AffectedConnections: []string{e.ID},
				Details:             map[string]any{"side": end.side, "handle": end.handle},
			})
		}
	}
}

func (Connectivity) checkUnconnectedInterfaces(ctx *Context, c *Collector) {
	connected := make(map[string]bool)
	for _, e := range ctx.Graph.Edges() {
		if iface, ok := ctx.Resolver.SourceEndpoint(e); ok {
			connected[portKey(e.Source, iface.ID)] = true
		}
		if iface, ok := ctx.Resolver.TargetEndpoint(e); ok {
			connected[portKey(e.Target, iface.ID)] = true
		}
	}

	for _, node := range ctx.Graph.Nodes() {
		for _, iface := range ctx.Resolver.Interfaces(node.ID) {
			if connected[portKey(node.ID, iface.ID)] {
				continue
			}
			if iface.Optional && !ctx.Options.CheckOptionalPorts {
				continue
			}
			loc := fmt.Sprintf("%s.%s", node.DisplayName(), iface.Name)
			switch iface.Direction {
			case domain.DirectionMaster:
				c.Add(domain.DRCViolation{
					RuleID:             "DRC-CONN-005",
					RuleName:           "Unconnected Master Interface",
					Severity:           domain.SeverityWarning,
					Category:           domain.CategoryConnectivity,
					Location:           loc,
					Description:        fmt.Sprintf("Master interface %q on %s is not connected", iface.Name, node.DisplayName()),
					Suggestion:         "Connect the master to a slave interface or mark the port optional",
					AffectedComponents: []string{node.ID},
					AffectedInterfaces: []string{iface.ID},
				})
			case domain.DirectionSlave:
				c.Add(domain.DRCViolation{
					RuleID:             "DRC-CONN-006",
					RuleName:           "Unconnected Slave Interface",
					Severity:           domain.SeverityInfo,
					Category:           domain.CategoryConnectivity,
					Location:           loc,
					Description:        fmt.Sprintf("Slave interface %q on %s is not connected", iface.Name, node.DisplayName()),
					Suggestion:         "Connect a master to this interface or mark the port optional",
					AffectedComponents: []string{node.ID},
					AffectedInterfaces: []string{iface.ID},
				})
			}
		}
	}
}

func (Connectivity) checkMultipleMasters(ctx *Context, c *Collector) {
	type group struct {
		edges   []string
		sources map[string]bool
	}
	groups := make(map[string]*group)
	var order []string

	for _, e := range ctx.Graph.Edges() {
		node, ok := ctx.Graph.Node(e.Target)
		if !ok {
			continue
		}
		if ctx.Options.IsInterconnect(node) {
			// arbitration components may legitimately fan in
			continue
		}
		iface, ok := ctx.Resolver.TargetEndpoint(e)
		if !ok {
			continue
		}
		key := portKey(e.Target, iface.ID)
		g, seen := groups[key]
		if !seen {
			g = &group{sources: map[string]bool{}}
			groups[key] = g
			order = append(order, key)
		}
		g.edges = append(g.edges, e.ID)
		g.sources[e.Source] = true
	}

	for _, key := range order {
		g := groups[key]
		if len(g.sources) < 2 {
			continue
		}
		nodeID, ifaceID := splitPortKey(key)
		node, _ := ctx.Graph.Node(nodeID)
		iface, _ := ctx.Resolver.Interface(nodeID, ifaceID)
		masters := make([]string, 0, len(g.sources))
		for src := range g.sources {
			masters = append(masters, src)
		}
		sort.Strings(masters)
		c.Add(domain.DRCViolation{
			RuleID:              "DRC-CONN-007",
			RuleName:            "Multiple Masters Per Slave Interface",
			Severity:            domain.SeverityCritical,
			Category:            domain.CategoryConnectivity,
			Location:            fmt.Sprintf("%s.%s", node.DisplayName(), iface.Name),
			Description:         fmt.Sprintf("Interface %q on %s is driven by %d masters (%s) without an arbitration component", iface.Name, node.DisplayName(), len(masters), strings.Join(masters, ", ")),
			Suggestion:          "Insert an interconnect or crossbar between the masters and this slave",
			AffectedComponents:  append(masters, nodeID),
			AffectedInterfaces:  []string{ifaceID},
			AffectedConnections: g.edges,
		})
	}
}

func (Connectivity) checkPortExclusivity(ctx *Context, c *Collector) {
	type usage struct{ edges []string }
	sourceUse := make(map[string]*usage)
	targetUse := make(map[string]*usage)
	var order []string

	record := func(m map[string]*usage, key, edgeID string) {
		u, seen := m[key]
		if !seen {
			u = &usage{}
			m[key] = u
			order = append(order, key)
		}
		u.edges = append(u.edges, edgeID)
	}

	for _, e := range ctx.Graph.Edges() {
		if iface, ok := ctx.Resolver.SourceEndpoint(e); ok {
			record(sourceUse, portKey(e.Source, iface.ID), e.ID)
		}
		if iface, ok := ctx.Resolver.TargetEndpoint(e); ok {
			record(targetUse, portKey(e.Target, iface.ID), e.ID)
		}
	}

	emitted := make(map[string]bool)
	for _, key := range order {
		for _, side := range []string{"source", "target"} {
			m := sourceUse
			if side == "target" {
				m = targetUse
			}
			u, ok := m[key]
			if !ok || len(u.edges) < 2 || emitted[side+"|"+key] {
				continue
			}
			emitted[side+"|"+key] = true
			nodeID, ifaceID := splitPortKey(key)
			node, _ := ctx.Graph.Node(nodeID)
			iface, _ := ctx.Resolver.Interface(nodeID, ifaceID)
			c.Add(domain.DRCViolation{
				RuleID:              "DRC-CONN-008",
				RuleName:            "Port Exclusivity",
				Severity:            domain.SeverityCritical,
				Category:            domain.CategoryConnectivity,
				Location:            fmt.Sprintf("%s.%s", node.DisplayName(), iface.Name),
				Description:         fmt.Sprintf("Port %q on %s is used as a %s by %d connections (%s); each port may carry at most one wire", iface.Name, node.DisplayName(), side, len(u.edges), strings.Join(u.edges, ", ")),
				Suggestion:          "Route the extra wires through separate ports or an interconnect",
				AffectedComponents:  []string{nodeID},
				AffectedInterfaces:  []string{ifaceID},
				AffectedConnections: u.edges,
				Details:             map[string]any{"side": side, "useCount": len(u.edges)},
			})
		}
	}
}

func portKey(nodeID, ifaceID string) string { return nodeID + "\x00" + ifaceID }

func splitPortKey(key string) (nodeID, ifaceID string) {
	parts := strings.SplitN(key, "\x00", 2)
	return parts[0], parts[1]
}
