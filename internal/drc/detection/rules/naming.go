package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

var interfaceNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// NamingConvention flags duplicate node labels and interface names that do
// not follow the identifier pattern.
type NamingConvention struct{}

func (NamingConvention) Name() string { return "naming_convention" }

func (NamingConvention) Apply(ctx *Context, c *Collector) {
	byLabel := make(map[string][]string)
	var labelOrder []string
	for _, n := range ctx.Graph.Nodes() {
		if n.Label == "" {
			// missing labels are a parameter validity finding
			continue
		}
		if _, seen := byLabel[n.Label]; !seen {
			labelOrder = append(labelOrder, n.Label)
		}
		byLabel[n.Label] = append(byLabel[n.Label], n.ID)
	}
	for _, label := range labelOrder {
		ids := byLabel[label]
		if len(ids) < 2 {
			continue
		}
		c.Add(domain.DRCViolation{
			RuleID:             "DRC-NAME-001",
			RuleName:           "Duplicate Component Label",
			Severity:           domain.SeverityWarning,
			Category:           domain.CategoryNaming,
			Location:           label,
			Description:        fmt.Sprintf("Label %q is shared by %d components (%s)", label, len(ids), strings.Join(ids, ", ")),
			Suggestion:         "Give each component a unique label",
			AffectedComponents: ids,
		})
	}

	for _, n := range ctx.Graph.Nodes() {
		for _, iface := range ctx.Resolver.Interfaces(n.ID) {
			if interfaceNamePattern.MatchString(iface.Name) {
				continue
			}
			c.Add(domain.DRCViolation{
				RuleID:             "DRC-NAME-002",
				RuleName:           "Interface Naming Convention",
				Severity:           domain.SeverityInfo,
				Category:           domain.CategoryNaming,
				Location:           fmt.Sprintf("%s.%s", n.DisplayName(), iface.Name),
				Description:        fmt.Sprintf("Interface name %q does not match the identifier pattern (letter followed by letters, digits, underscores or hyphens)", iface.Name),
				Suggestion:         "Rename the interface to a plain identifier",
				AffectedComponents: []string{n.ID},
				AffectedInterfaces: []string{iface.ID},
			})
		}
	}
}
