package rules

import (
	"fmt"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// Collector accumulates violations for one analysis run. IDs are assigned
// on insertion from a single run-scoped counter, so they are unique and
// strictly increasing across all rule groups. Never reset mid-run.
type Collector struct {
	violations []domain.DRCViolation
	counter    int
	summary    domain.DRCSummary
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{violations: []domain.DRCViolation{}}
}

// Add stamps the next violation ID onto v and records it.
func (c *Collector) Add(v domain.DRCViolation) {
	c.counter++
	v.ID = fmt.Sprintf("DRC-VIOLATION-%d", c.counter)
	switch v.Severity {
	case domain.SeverityCritical:
		c.summary.Critical++
	case domain.SeverityWarning:
		c.summary.Warning++
	default:
		c.summary.Info++
	}
	c.violations = append(c.violations, v)
}

// Count returns the number of violations emitted so far.
func (c *Collector) Count() int { return c.counter }

// Summary returns the severity totals so far.
func (c *Collector) Summary() domain.DRCSummary { return c.summary }

// Violations returns the accumulated violations in emission order.
func (c *Collector) Violations() []domain.DRCViolation { return c.violations }
