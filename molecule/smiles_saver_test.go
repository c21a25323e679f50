package molecule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func generateCanonical(t *testing.T, s string) string {
	t.Helper()
	result := Parse(s)
	require.True(t, result.OK(), "parse errors for %q: %v", s, result.Errors)
	m := result.Molecules[0]
	require.Empty(t, ValidateAndNormalize(m, nil), "validation errors for %q", s)
	out, err := Saver{Options: SmilesSaverOptions{Canonical: true}}.Generate(m)
	require.NoError(t, err)
	return out
}

func TestGenerate_RoundTripAtomAndBondCount(t *testing.T) {
	for _, s := range []string{"CCO", "CC(=O)O", "C1CCCCC1", "c1ccccc1", "C%10CCCCC%10"} {
		out := generateCanonical(t, s)
		require.NotEmpty(t, out)

		reparsed := Parse(out)
		require.True(t, reparsed.OK(), "re-parse of %q (from %q) failed: %v", out, s, reparsed.Errors)

		orig := Parse(s).Molecules[0]
		require.Equal(t, len(orig.Atoms), len(reparsed.Molecules[0].Atoms), "input %q -> %q", s, out)
		require.Equal(t, len(orig.Bonds), len(reparsed.Molecules[0].Bonds), "input %q -> %q", s, out)
	}
}

func TestGenerate_IsDeterministicAcrossInputAtomOrder(t *testing.T) {
	a := generateCanonical(t, "CCO")
	b := generateCanonical(t, "OCC")
	require.Equal(t, a, b)
}

func TestGenerate_BracketAtomRoundTrip(t *testing.T) {
	out := generateCanonical(t, "[13CH4]")
	reparsed := Parse(out)
	require.True(t, reparsed.OK(), "errors: %v", reparsed.Errors)
	a := reparsed.Molecules[0].Atoms[0]
	require.Equal(t, 13, a.Isotope)
	require.Equal(t, 4, a.Hydrogens)
}

func TestGenerate_EmptyMoleculeYieldsEmptyString(t *testing.T) {
	out, err := Saver{}.Generate(New())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestGenerate_MultiFragmentRoundTrip(t *testing.T) {
	result := Parse("C1CCCCC1.C1CCCCC1")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	for _, m := range result.Molecules {
		require.Empty(t, ValidateAndNormalize(m, nil))
	}
	out, err := Saver{Options: SmilesSaverOptions{Canonical: true}}.GenerateAll(result.Molecules)
	require.NoError(t, err)

	reparsed := Parse(out)
	require.True(t, reparsed.OK(), "errors: %v", reparsed.Errors)
	require.Len(t, reparsed.Molecules, 2)
}
