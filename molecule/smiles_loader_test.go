package molecule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Ethanol(t *testing.T) {
	result := Parse("CCO")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	require.Len(t, result.Molecules, 1)
	m := result.Molecules[0]
	require.Len(t, m.Atoms, 3)
	require.Equal(t, 1, m.Bonds[0].Atom2)
}

func TestParse_BenzeneAromaticLowercase(t *testing.T) {
	result := Parse("c1ccccc1")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	require.Len(t, result.Molecules, 1)
	m := result.Molecules[0]
	require.Len(t, m.Atoms, 6)
	for _, a := range m.Atoms {
		require.True(t, a.Aromatic)
	}
}

func TestParse_BracketAtomWithChargeAndHCount(t *testing.T) {
	result := Parse("[NH4+]")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	a := result.Molecules[0].Atoms[0]
	require.Equal(t, 4, a.Hydrogens)
	require.Equal(t, 1, a.Charge)
}

func TestParse_BracketAtomHalogenWithExplicitH(t *testing.T) {
	// A bracket halogen followed directly by the H-count marker must not
	// be swallowed whole as an unrecognized two-letter symbol.
	result := Parse("[ClH]")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	a := result.Molecules[0].Atoms[0]
	require.Equal(t, "Cl", a.Symbol)
	require.Equal(t, 1, a.Hydrogens)
}

func TestParse_UnknownBracketElementReportsFullToken(t *testing.T) {
	result := Parse("[CX]")
	require.False(t, result.OK())
	require.Contains(t, result.Errors[0], "unknown element: CX")
}

func TestParse_RingClosure(t *testing.T) {
	result := Parse("C1CCCCC1")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	require.Len(t, m.Atoms, 6)
	require.Len(t, m.Bonds, 6)
}

func TestParse_PercentRingClosure(t *testing.T) {
	result := Parse("C%10CCCCC%10")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	require.Len(t, result.Molecules[0].Bonds, 6)
}

func TestParse_DisconnectedFragments(t *testing.T) {
	result := Parse("CC.CC")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	require.Len(t, result.Molecules, 2)
}

func TestParse_RingClosureAcrossDotReconnects(t *testing.T) {
	// OpenSMILES allows a ring-closure digit to reconnect fragments
	// separated by '.', producing a single connected component.
	result := Parse("C1.C1")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	require.Len(t, result.Molecules, 1)
	require.Len(t, result.Molecules[0].Bonds, 1)
}

func TestParse_UnbalancedParenthesis(t *testing.T) {
	result := Parse("CC(C")
	require.False(t, result.OK())
}

func TestParse_DanglingRingClosure(t *testing.T) {
	result := Parse("C1CC")
	require.False(t, result.OK())
}

func TestParse_Branching(t *testing.T) {
	result := Parse("CC(C)C")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	require.Len(t, m.Atoms, 4)
	require.Equal(t, 3, m.Degree(1))
}

func TestParse_ExplicitBondOrders(t *testing.T) {
	result := Parse("C=C#N")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	require.Equal(t, BondDouble, m.Bonds[0].Type)
	require.Equal(t, BondTriple, m.Bonds[1].Type)
}

func TestParse_Isotope(t *testing.T) {
	result := Parse("[13CH4]")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	a := result.Molecules[0].Atoms[0]
	require.Equal(t, 13, a.Isotope)
	require.Equal(t, 4, a.Hydrogens)
}
