package domain

import "time"

// Severity grades a violation. Only critical findings fail the check.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rule categories, one per rule group. The engine runs the groups in this
// order; ordering only affects violation ID numbering.
const (
	CategoryConnectivity = "Connectivity"
	CategoryAXI4         = "AXI4 Parameters"
	CategoryAddressSpace = "Address Space"
	CategoryTopology     = "Topology"
	CategoryPerformance  = "Performance"
	CategoryParameters   = "Parameter Validity"
	CategoryNaming       = "Naming Convention"
)

// DRCViolation is one finding produced by a rule.
type DRCViolation struct {
	ID                  string         `json:"id"`
	RuleID              string         `json:"ruleId"`
	RuleName            string         `json:"ruleName"`
	Severity            Severity       `json:"severity"`
	Category            string         `json:"category"`
	Location            string         `json:"location"`
	Description         string         `json:"description"`
	Suggestion          string         `json:"suggestion,omitempty"`
	AffectedComponents  []string       `json:"affectedComponents,omitempty"`
	AffectedInterfaces  []string       `json:"affectedInterfaces,omitempty"`
	AffectedConnections []string       `json:"affectedConnections,omitempty"`
	Details             map[string]any `json:"details,omitempty"`
}

// DRCSummary aggregates violation counts by severity.
type DRCSummary struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// DRCResult is the full report for one analysis run. TotalChecks is the
// final value of the violation counter, i.e. how many violations were
// emitted, not how many rules executed.
type DRCResult struct {
	Timestamp   time.Time      `json:"timestamp"`
	TotalChecks int            `json:"totalChecks"`
	Violations  []DRCViolation `json:"violations"`
	Summary     DRCSummary     `json:"summary"`
	Passed      bool           `json:"passed"`
}
