package graph

import "github.com/socforge/drc-backend/internal/drc/domain"

// CatalogueLookup is the fallback source for interface definitions when a
// node carries none in its diagram data.
type CatalogueLookup interface {
	Interfaces(componentID string) ([]domain.ComponentInterface, bool)
}

// Resolver returns the ordered interface list for a node. Diagram-embedded
// interfaces always win; the catalogue is consulted only when the node has
// none. Nodes with neither are remembered so the caller can surface a
// data-quality warning (interface-level rules are simply disabled for them).
type Resolver struct {
	graph     *Graph
	catalogue CatalogueLookup

	cache      map[string][]domain.ComponentInterface
	unresolved []string
	seen       map[string]bool
}

// NewResolver builds a resolver over a graph snapshot. catalogue may be nil.
func NewResolver(g *Graph, catalogue CatalogueLookup) *Resolver {
	return &Resolver{
		graph:     g,
		catalogue: catalogue,
		cache:     make(map[string][]domain.ComponentInterface),
		seen:      make(map[string]bool),
	}
}

// Interfaces resolves the interface list for a node ID. Unknown node IDs
// resolve to nil.
func (r *Resolver) Interfaces(nodeID string) []domain.ComponentInterface {
	if cached, ok := r.cache[nodeID]; ok {
		return cached
	}
	node, ok := r.graph.Node(nodeID)
	if !ok {
		return nil
	}

	ifaces := node.Interfaces
	if len(ifaces) == 0 && r.catalogue != nil {
		if fromCat, ok := r.catalogue.Interfaces(node.ComponentID); ok {
			ifaces = fromCat
		}
	}
	if len(ifaces) == 0 && !r.seen[nodeID] {
		r.seen[nodeID] = true
		r.unresolved = append(r.unresolved, nodeID)
	}
	r.cache[nodeID] = ifaces
	return ifaces
}

// Unresolved lists node IDs that yielded no interfaces from either source,
// in first-seen order.
func (r *Resolver) Unresolved() []string { return r.unresolved }

// Interface returns a specific interface on a node by interface ID.
func (r *Resolver) Interface(nodeID, ifaceID string) (domain.ComponentInterface, bool) {
	for _, iface := range r.Interfaces(nodeID) {
		if iface.ID == ifaceID {
			return iface, true
		}
	}
	return domain.ComponentInterface{}, false
}

// SourceEndpoint resolves the effective interface on the source side of an
// edge: the explicit handle if present, else the node's first master
// interface, else its first interface.
func (r *Resolver) SourceEndpoint(e domain.Connection) (domain.ComponentInterface, bool) {
	return r.endpoint(e.Source, e.SourceHandle, domain.DirectionMaster)
}

// TargetEndpoint resolves the effective interface on the target side of an
// edge: the explicit handle if present, else the node's first slave
// interface, else its first interface.
func (r *Resolver) TargetEndpoint(e domain.Connection) (domain.ComponentInterface, bool) {
	return r.endpoint(e.Target, e.TargetHandle, domain.DirectionSlave)
}

func (r *Resolver) endpoint(nodeID, handle string, preferred domain.Direction) (domain.ComponentInterface, bool) {
	if handle != "" {
		return r.Interface(nodeID, handle)
	}
	ifaces := r.Interfaces(nodeID)
	if len(ifaces) == 0 {
		return domain.ComponentInterface{}, false
	}
	for _, iface := range ifaces {
		if iface.Direction == preferred {
			return iface, true
		}
	}
	return ifaces[0], true
}
