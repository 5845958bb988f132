package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in   string
		want *big.Int
	}{
		{"0x1000", big.NewInt(0x1000)},
		{"0X40000000", big.NewInt(0x40000000)},
		{"4096", big.NewInt(4096)},
		{"0", big.NewInt(0)},
		{" 0xFF ", big.NewInt(255)},
	}
	for _, tc := range cases {
		got, err := ParseAddress(tc.in)
		require.NoError(t, err, tc.in)
		assert.Zero(t, tc.want.Cmp(got), tc.in)
	}

	t.Run("64-bit and beyond", func(t *testing.T) {
		got, err := ParseAddress("0xFFFFFFFFFFFFFFFF")
		require.NoError(t, err)
		want := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
		assert.Zero(t, want.Cmp(got))
	})

	for _, bad := range []string{"", "0x", "abc", "-1", "0x12G4"} {
		_, err := ParseAddress(bad)
		assert.Error(t, err, "%q should not parse", bad)
	}
}

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"512", 512},
		{"4KB", 4 << 10},
		{"64kb", 64 << 10},
		{"1MB", 1 << 20},
		{"2GB", 2 << 30},
		{"1TB", 1 << 40},
		{"16 KB", 16 << 10},
		{"100B", 100},
	}
	for _, tc := range cases {
		got, err := ParseSize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Zero(t, big.NewInt(tc.want).Cmp(got), tc.in)
	}

	for _, bad := range []string{"", "0", "-4KB", "KB", "lots"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, "%q should not parse", bad)
	}
}

func TestOverlaps(t *testing.T) {
	r := func(base, end int64) AddressRange {
		return AddressRange{Base: big.NewInt(base), End: big.NewInt(end)}
	}
	assert.True(t, r(0x1000, 0x1FFF).Overlaps(r(0x1800, 0x27FF)))
	assert.True(t, r(0x1800, 0x27FF).Overlaps(r(0x1000, 0x1FFF)), "symmetric")
	assert.True(t, r(0x1000, 0x1FFF).Overlaps(r(0x1FFF, 0x2FFF)), "shared boundary byte")
	assert.True(t, r(0x0, 0xFFFF).Overlaps(r(0x100, 0x1FF)), "containment")
	assert.False(t, r(0x1000, 0x1FFF).Overlaps(r(0x2000, 0x2FFF)), "adjacent ranges are disjoint")
}

func TestNodeAddressRange(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		rng, size, ok := NodeAddressRange(ComponentNode{
			ID: "mem", TargetAddrBase: "0x40000000", TargetAddrSpace: "64KB",
		})
		require.True(t, ok)
		assert.Zero(t, big.NewInt(0x40000000).Cmp(rng.Base))
		assert.Zero(t, big.NewInt(0x4000FFFF).Cmp(rng.End), "inclusive end")
		assert.Zero(t, big.NewInt(64<<10).Cmp(size))
	})

	t.Run("absent or broken pairs are excluded", func(t *testing.T) {
		cases := []ComponentNode{
			{ID: "a"},
			{ID: "b", TargetAddrBase: "0x1000"},
			{ID: "c", TargetAddrSpace: "4KB"},
			{ID: "d", TargetAddrBase: "bogus", TargetAddrSpace: "4KB"},
			{ID: "e", TargetAddrBase: "0x1000", TargetAddrSpace: "huge"},
		}
		for _, n := range cases {
			_, _, ok := NodeAddressRange(n)
			assert.False(t, ok, n.ID)
		}
	})
}
