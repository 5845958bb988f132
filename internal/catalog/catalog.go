// Package catalog holds the component-library interface catalogue. It is a
// fallback only: the resolver consults it for nodes whose diagram data
// carries no embedded interfaces.
package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// Provider resolves component-library interface definitions by component ID.
type Provider interface {
	Interfaces(componentID string) ([]domain.ComponentInterface, bool)
}

// Entry is one component definition in a catalogue document.
type Entry struct {
	ComponentID string           `json:"componentId" yaml:"componentId" validate:"required"`
	Name        string           `json:"name" yaml:"name"`
	Interfaces  []EntryInterface `json:"interfaces" yaml:"interfaces" validate:"dive"`
}

// EntryInterface mirrors ComponentInterface with the loose field names
// catalogue files use, including the legacy aliases.
type EntryInterface struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	BusType   string `json:"busType" yaml:"busType"`
	Type      string `json:"type" yaml:"type"`
	Direction string `json:"direction" yaml:"direction" validate:"required"`
	DataWidth int    `json:"dataWidth" yaml:"dataWidth"`
	Width     int    `json:"width" yaml:"width"`
	AddrWidth int    `json:"addrWidth" yaml:"addrWidth"`
	IDWidth   int    `json:"idWidth" yaml:"idWidth"`
	Speed     string `json:"speed" yaml:"speed"`
	Frequency string `json:"frequency" yaml:"frequency"`
	Protocol  string `json:"protocol" yaml:"protocol"`
	Optional  bool   `json:"optional" yaml:"optional"`
}

// Catalogue is an in-memory Provider built from catalogue entries.
type Catalogue struct {
	byID map[string][]domain.ComponentInterface
}

var validate = validator.New()

// New builds a Catalogue from entries, validating each one. Interface alias
// resolution happens here so lookups return canonical interfaces.
func New(entries []Entry) (*Catalogue, error) {
	c := &Catalogue{byID: make(map[string][]domain.ComponentInterface, len(entries))}
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("catalogue entry %d: %w", i, err)
		}
		ifaces := make([]domain.ComponentInterface, 0, len(e.Interfaces))
		for _, ei := range e.Interfaces {
			ifaces = append(ifaces, ei.normalize())
		}
		c.byID[e.ComponentID] = ifaces
	}
	return c, nil
}

// LoadFile reads a YAML catalogue document of the shape
// `components: [{componentId, interfaces: [...]}, ...]`.
func LoadFile(path string) (*Catalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	var doc struct {
		Components []Entry `yaml:"components"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	return New(doc.Components)
}

// Interfaces implements Provider.
func (c *Catalogue) Interfaces(componentID string) ([]domain.ComponentInterface, bool) {
	if c == nil || componentID == "" {
		return nil, false
	}
	ifaces, ok := c.byID[componentID]
	return ifaces, ok
}

func (ei EntryInterface) normalize() domain.ComponentInterface {
	iface := domain.ComponentInterface{
		ID:        ei.ID,
		Name:      ei.Name,
		Direction: domain.ParseDirection(ei.Direction),
		DataWidth: ei.DataWidth,
		AddrWidth: ei.AddrWidth,
		IDWidth:   ei.IDWidth,
		Speed:     ei.Speed,
		Protocol:  ei.Protocol,
		Optional:  ei.Optional,
	}
	if iface.ID == "" {
		iface.ID = ei.Name
	}
	bt := ei.BusType
	if bt == "" {
		bt = ei.Type
	}
	iface.BusType = domain.ParseBusType(bt)
	if iface.DataWidth == 0 && ei.Width > 0 {
		iface.DataWidth = ei.Width
	}
	if iface.Speed == "" {
		iface.Speed = ei.Frequency
	}
	return iface
}
