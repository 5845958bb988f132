// Package ingest turns raw diagram JSON into the canonical domain model.
// All legacy field aliasing happens here, once, so the rule code downstream
// only ever sees canonical names.
package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// ParseDiagram decodes and validates a diagram document. Structural problems
// (not JSON, missing nodes/edges arrays, non-object entries) fail the whole
// call; no partial diagram is returned.
func ParseDiagram(raw []byte) (*domain.ArchitectureDiagram, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDiagram, err)
	}

	rawNodes, ok := doc["nodes"]
	if !ok {
		return nil, fmt.Errorf("%w: missing nodes array", domain.ErrMalformedDiagram)
	}
	rawEdges, ok := doc["edges"]
	if !ok {
		return nil, fmt.Errorf("%w: missing edges array", domain.ErrMalformedDiagram)
	}

	var nodeDocs []json.RawMessage
	if err := json.Unmarshal(rawNodes, &nodeDocs); err != nil {
		return nil, fmt.Errorf("%w: nodes is not an array", domain.ErrMalformedDiagram)
	}
	var edgeDocs []json.RawMessage
	if err := json.Unmarshal(rawEdges, &edgeDocs); err != nil {
		return nil, fmt.Errorf("%w: edges is not an array", domain.ErrMalformedDiagram)
	}

	out := &domain.ArchitectureDiagram{}
	for i, nd := range nodeDocs {
		node, err := parseNode(nd)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", domain.ErrMalformedDiagram, i, err)
		}
		out.Nodes = append(out.Nodes, node)
	}
	for i, ed := range edgeDocs {
		edge, err := parseEdge(ed)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d: %v", domain.ErrMalformedDiagram, i, err)
		}
		out.Edges = append(out.Edges, edge)
	}
	return out, nil
}

func parseNode(raw json.RawMessage) (domain.ComponentNode, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.ComponentNode{}, fmt.Errorf("not an object")
	}

	id := asString(m["id"])
	if id == "" {
		return domain.ComponentNode{}, fmt.Errorf("missing id")
	}

	// Editor documents wrap node attributes in a data envelope; flat
	// documents carry them at the top level. Merge with data winning.
	attrs := m
	if data, ok := m["data"].(map[string]any); ok {
		attrs = make(map[string]any, len(m)+len(data))
		for k, v := range m {
			attrs[k] = v
		}
		for k, v := range data {
			attrs[k] = v
		}
	}

	node := domain.ComponentNode{
		ID:              id,
		Label:           asString(attrs["label"]),
		ModelType:       firstString(attrs, "modelType", "model_type"),
		Category:        asString(attrs["category"]),
		ComponentID:     firstString(attrs, "componentId", "component_id"),
		TargetAddrBase:  asString(attrs["targetAddrBase"]),
		TargetAddrSpace: asString(attrs["targetAddrSpace"]),
	}

	if rawIfaces, ok := attrs["interfaces"].([]any); ok {
		for _, ri := range rawIfaces {
			im, ok := ri.(map[string]any)
			if !ok {
				continue
			}
			node.Interfaces = append(node.Interfaces, NormalizeInterface(im))
		}
	}
	return node, nil
}

func parseEdge(raw json.RawMessage) (domain.Connection, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.Connection{}, fmt.Errorf("not an object")
	}
	return domain.Connection{
		ID:           asString(m["id"]),
		Source:       asString(m["source"]),
		Target:       asString(m["target"]),
		SourceHandle: asString(m["sourceHandle"]),
		TargetHandle: asString(m["targetHandle"]),
		Label:        asString(m["label"]),
	}, nil
}

// NormalizeInterface maps one raw interface object onto the canonical
// ComponentInterface, resolving the legacy aliases width->dataWidth,
// addressWidth->addrWidth, type->busType and frequency->speed.
func NormalizeInterface(m map[string]any) domain.ComponentInterface {
	iface := domain.ComponentInterface{
		ID:        asString(m["id"]),
		Name:      asString(m["name"]),
		BusType:   domain.ParseBusType(firstString(m, "busType", "type")),
		Direction: domain.ParseDirection(asString(m["direction"])),
		Speed:     firstString(m, "speed", "frequency"),
		Protocol:  asString(m["protocol"]),
		Optional:  asBool(m["optional"]),
	}
	if iface.ID == "" {
		iface.ID = iface.Name
	}

	dw, raw, present := firstInt(m, "dataWidth", "width")
	switch {
	case !present:
		// leave both zero; parameter rules flag the absence
	case dw > 0:
		iface.DataWidth = dw
	default:
		iface.DataWidthRaw = raw
	}

	if v, _, ok := firstInt(m, "addrWidth", "addressWidth"); ok && v > 0 {
		iface.AddrWidth = v
	}
	if v, _, ok := firstInt(m, "idWidth"); ok && v > 0 {
		iface.IDWidth = v
	}
	return iface
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// firstInt returns the first present key coerced to int. present reports
// whether any key existed at all; raw carries the original token for error
// reporting when coercion fails or yields a non-positive value.
func firstInt(m map[string]any, keys ...string) (val int, raw string, present bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int(t), strconv.FormatFloat(t, 'f', -1, 64), true
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return n, s, true
			}
			return 0, s, true
		}
	}
	return 0, "", false
}
