package domain

import "time"

// StoredReport wraps a DRCResult with the identity the caller-side storage
// layers attach. The engine itself never persists anything; the HTTP
// collaborator owns this shape.
type StoredReport struct {
	ID          string    `json:"id"`
	DiagramHash string    `json:"diagram_hash"`
	Result      DRCResult `json:"result"`
	CreatedAt   time.Time `json:"created_at"`
}
