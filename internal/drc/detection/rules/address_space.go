package rules

import (
	"fmt"
	"math/big"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// AddressSpace validates the memory map declared through targetAddrBase and
// targetAddrSpace. Nodes without a complete, parseable address pair are
// excluded entirely; absence is not a violation.
type AddressSpace struct{}

func (AddressSpace) Name() string { return "address_space" }

type addressedNode struct {
	node domain.ComponentNode
	rng  domain.AddressRange
	size *big.Int
}

func (AddressSpace) Apply(ctx *Context, c *Collector) {
	var addressed []addressedNode
	for _, n := range ctx.Graph.Nodes() {
		rng, size, ok := domain.NodeAddressRange(n)
		if !ok {
			continue
		}
		addressed = append(addressed, addressedNode{node: n, rng: rng, size: size})
	}

	// pairwise overlap
	for i := 0; i < len(addressed); i++ {
		for j := i + 1; j < len(addressed); j++ {
			a, b := addressed[i], addressed[j]
			if !a.rng.Overlaps(b.rng) {
				continue
			}
			c.Add(domain.DRCViolation{
				RuleID:             "DRC-ADDR-001",
				RuleName:           "Address Space Overlap",
				Severity:           domain.SeverityCritical,
				Category:           domain.CategoryAddressSpace,
				Location:           fmt.Sprintf("%s, %s", a.node.DisplayName(), b.node.DisplayName()),
				Description:        fmt.Sprintf("Address ranges overlap: %s claims [0x%s, 0x%s], %s claims [0x%s, 0x%s]", a.node.DisplayName(), a.rng.Base.Text(16), a.rng.End.Text(16), b.node.DisplayName(), b.rng.Base.Text(16), b.rng.End.Text(16)),
				Suggestion:         "Assign disjoint address ranges to these components",
				AffectedComponents: []string{a.node.ID, b.node.ID},
				Details: map[string]any{
					"baseA": "0x" + a.rng.Base.Text(16), "endA": "0x" + a.rng.End.Text(16),
					"baseB": "0x" + b.rng.Base.Text(16), "endB": "0x" + b.rng.End.Text(16),
				},
			})
		}
	}

	// alignment: base must be a multiple of the declared size
	for _, a := range addressed {
		if a.size.Sign() <= 0 {
			continue
		}
		rem := new(big.Int).Mod(a.rng.Base, a.size)
		if rem.Sign() == 0 {
			continue
		}
		c.Add(domain.DRCViolation{
			RuleID:             "DRC-ADDR-002",
			RuleName:           "Address Alignment",
			Severity:           domain.SeverityWarning,
			Category:           domain.CategoryAddressSpace,
			Location:           a.node.DisplayName(),
			Description:        fmt.Sprintf("Base address 0x%s of %s is not aligned to its region size %s", a.rng.Base.Text(16), a.node.DisplayName(), a.node.TargetAddrSpace),
			Suggestion:         "Align the base address to a multiple of the region size for simpler decoding",
			AffectedComponents: []string{a.node.ID},
			Details:            map[string]any{"base": "0x" + a.rng.Base.Text(16), "size": a.node.TargetAddrSpace},
		})
	}

	// reserved platform ranges
	for _, a := range addressed {
		for _, res := range ctx.Options.ReservedRanges {
			reserved := domain.AddressRange{Base: res.Base, End: res.End}
			if !a.rng.Overlaps(reserved) {
				continue
			}
			c.Add(domain.DRCViolation{
				RuleID:             "DRC-ADDR-003",
				RuleName:           "Reserved Address Range",
				Severity:           domain.SeverityInfo,
				Category:           domain.CategoryAddressSpace,
				Location:           a.node.DisplayName(),
				Description:        fmt.Sprintf("%s overlaps reserved range %s [0x%s, 0x%s]", a.node.DisplayName(), res.Name, res.Base.Text(16), res.End.Text(16)),
				Suggestion:         "Move the region outside the reserved platform range",
				AffectedComponents: []string{a.node.ID},
				Details:            map[string]any{"reserved": res.Name},
			})
		}
	}
}
