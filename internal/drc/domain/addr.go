package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// AddressRange is a half-open interval expressed as [Base, End] inclusive.
// Values are arbitrary precision so 64-bit address maps with TB-scale
// regions cannot overflow.
type AddressRange struct {
	Base *big.Int
	End  *big.Int
}

// Overlaps reports whether two inclusive ranges intersect.
func (r AddressRange) Overlaps(o AddressRange) bool {
	// !(endA < baseB || endB < baseA)
	return !(r.End.Cmp(o.Base) < 0 || o.End.Cmp(r.Base) < 0)
}

var sizeUnits = []struct {
	suffix string
	mult   int64
}{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseAddress parses a base address string, hex with 0x prefix or plain
// decimal. Empty input is an error; callers decide whether absence excludes
// the node from address checks.
func ParseAddress(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty address")
	}
	base := 10
	digits := s
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		base = 16
		digits = s[2:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid address %q", s)
	}
	return n, nil
}

// ParseSize parses a size string like "4KB", "1MB", "512", with an optional
// unit suffix (B, KB, MB, GB, TB). The default unit is bytes.
func ParseSize(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty size")
	}
	upper := strings.ToUpper(s)
	mult := int64(1)
	digits := upper
	for _, u := range sizeUnits {
		if strings.HasSuffix(upper, u.suffix) {
			mult = u.mult
			digits = strings.TrimSpace(strings.TrimSuffix(upper, u.suffix))
			break
		}
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok || n.Sign() <= 0 {
		return nil, fmt.Errorf("invalid size %q", s)
	}
	return n.Mul(n, big.NewInt(mult)), nil
}

// NodeAddressRange computes the inclusive address range a node claims, or
// reports ok=false when the node declares no usable address pair. An
// unparseable pair is treated the same as an absent one: the node is simply
// excluded from address checks.
func NodeAddressRange(n ComponentNode) (AddressRange, *big.Int, bool) {
	if strings.TrimSpace(n.TargetAddrBase) == "" || strings.TrimSpace(n.TargetAddrSpace) == "" {
		return AddressRange{}, nil, false
	}
	base, err := ParseAddress(n.TargetAddrBase)
	if err != nil {
		return AddressRange{}, nil, false
	}
	size, err := ParseSize(n.TargetAddrSpace)
	if err != nil {
		return AddressRange{}, nil, false
	}
	end := new(big.Int).Add(base, size)
	end.Sub(end, big.NewInt(1))
	return AddressRange{Base: base, End: end}, size, true
}
