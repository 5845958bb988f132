package http

import (
	"encoding/json"

	"github.com/socforge/drc-backend/internal/catalog"
)

type analyzeReq struct {
	Diagram            json.RawMessage `json:"diagram" binding:"required"`
	Catalogue          []catalog.Entry `json:"catalogue,omitempty"`
	CheckOptionalPorts bool            `json:"check_optional_ports,omitempty"`
}
