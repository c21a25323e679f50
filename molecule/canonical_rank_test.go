package molecule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalRanks_AllUnique(t *testing.T) {
	result := Parse("CC(=O)OC1=CC=CC=C1C(=O)O") // aspirin
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	ranks := CanonicalRanks(m, nil)
	seen := make(map[int]bool)
	for _, r := range ranks {
		require.False(t, seen[r], "duplicate rank %d", r)
		seen[r] = true
	}
	require.Len(t, ranks, len(m.Atoms))
}

func TestCanonicalRanks_SymmetricAtomsShareInitialGroupButEndUnique(t *testing.T) {
	result := Parse("CCC") // propane: the two terminal carbons are graph-symmetric
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	ranks := CanonicalRanks(m, nil)
	require.NotEqual(t, ranks[0], ranks[2])
	// the middle atom (higher degree) must not tie with either terminal
	require.NotEqual(t, ranks[1], ranks[0])
	require.NotEqual(t, ranks[1], ranks[2])
}

func TestCanonicalRanks_InvariantUnderInputAtomOrder(t *testing.T) {
	a := Parse("CCO")
	b := Parse("OCC")
	require.True(t, a.OK())
	require.True(t, b.OK())
	ra := CanonicalRanks(a.Molecules[0], nil)
	rb := CanonicalRanks(b.Molecules[0], nil)

	// Whichever atom is oxygen should land on the same rank in both, since
	// canonical ranking is a property of the graph, not the parse order.
	oxygenRankA := ra[2]
	oxygenRankB := rb[0]
	require.Equal(t, oxygenRankA, oxygenRankB)
}
