package domain

import "strings"

// Direction classifies how an interface participates in a connection.
// Unknown strings fall through to DirectionCustom rather than failing the
// whole analysis; rules treat custom directions as "no opinion".
type Direction string

const (
	DirectionMaster Direction = "master"
	DirectionSlave  Direction = "slave"
	DirectionIn     Direction = "in"
	DirectionOut    Direction = "out"
	DirectionCustom Direction = "custom"
)

// ParseDirection normalizes a raw direction string into a Direction.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "master":
		return DirectionMaster
	case "slave":
		return DirectionSlave
	case "in", "input":
		return DirectionIn
	case "out", "output":
		return DirectionOut
	default:
		return DirectionCustom
	}
}

// BusType identifies the protocol an interface speaks. Anything outside the
// known set is carried verbatim as a custom signal type.
type BusType string

const (
	BusAXI4   BusType = "AXI4"
	BusAHB    BusType = "AHB"
	BusAPB    BusType = "APB"
	BusPCIe   BusType = "PCIe"
	BusDDR    BusType = "DDR"
	BusCustom BusType = ""
)

// ParseBusType maps a raw bus type string onto the known set, preserving the
// original spelling for custom types so mismatch reports stay readable.
func ParseBusType(s string) BusType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AXI4", "AXI":
		return BusAXI4
	case "AHB":
		return BusAHB
	case "APB":
		return BusAPB
	case "PCIE":
		return BusPCIe
	case "DDR":
		return BusDDR
	default:
		return BusType(strings.TrimSpace(s))
	}
}

// IsAXI reports whether the bus type belongs to the AXI family. The AXI4
// parameter rules apply to any type containing "axi".
func (b BusType) IsAXI() bool {
	return strings.Contains(strings.ToLower(string(b)), "axi")
}

// ComponentInterface is one port on a component node. Field aliases from
// legacy diagrams (width, addressWidth, type, frequency) are resolved during
// ingestion; by the time a rule sees an interface the canonical names hold.
type ComponentInterface struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BusType   BusType   `json:"busType,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	DataWidth int       `json:"dataWidth,omitempty"`
	AddrWidth int       `json:"addrWidth,omitempty"`
	IDWidth   int       `json:"idWidth,omitempty"`
	Speed     string    `json:"speed,omitempty"`
	Protocol  string    `json:"protocol,omitempty"`
	Optional  bool      `json:"optional,omitempty"`

	// DataWidthRaw preserves the original dataWidth token when it was
	// present but did not parse as a positive integer, so the parameter
	// validity rule can echo the offending value.
	DataWidthRaw string `json:"-"`
}

// ComponentNode is one placed instance in the architecture diagram. The
// engine never mutates a node; each analysis run receives them wholesale.
type ComponentNode struct {
	ID              string               `json:"id"`
	Label           string               `json:"label"`
	ModelType       string               `json:"modelType,omitempty"`
	Category        string               `json:"category,omitempty"`
	ComponentID     string               `json:"componentId,omitempty"`
	TargetAddrBase  string               `json:"targetAddrBase,omitempty"`
	TargetAddrSpace string               `json:"targetAddrSpace,omitempty"`
	Interfaces      []ComponentInterface `json:"interfaces,omitempty"`
}

// DisplayName returns the label, falling back to the node ID so violation
// locations are never blank.
func (n ComponentNode) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Connection is one wire between two interfaces. Handles are optional;
// absence means "use the node's primary interface of the inferred role".
type Connection struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// ArchitectureDiagram is the aggregate the engine analyzes. Treated as
// immutable for the duration of a run.
type ArchitectureDiagram struct {
	Nodes []ComponentNode `json:"nodes"`
	Edges []Connection    `json:"edges"`
}
