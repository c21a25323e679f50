// Package smilesgraph coding=utf-8
// @Project : smilesgraph
// @File    : smiles_test.go
package smilesgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalize_RoundTrip(t *testing.T) {
	out, err := Canonicalize("OCC", Options{})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	again, err := Canonicalize(out, Options{})
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestCanonicalize_InvariantAcrossEquivalentInput(t *testing.T) {
	a, err := Canonicalize("CCO", Options{})
	require.NoError(t, err)
	b, err := Canonicalize("OCC", Options{})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestCanonicalize_MalformedInputReturnsParseError(t *testing.T) {
	_, err := Canonicalize("CC(C", Options{})
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_SkipValidationLeavesGraphRaw(t *testing.T) {
	result := Parse("c1ccccc1", Options{SkipValidation: true})
	require.True(t, result.OK())
	m := result.Molecules[0]
	// Without validation, ring bonds haven't been promoted from their
	// already-aromatic parse-time default — this only demonstrates no
	// validator ran, not a meaningful structural claim.
	require.Len(t, m.Atoms, 6)
}

func TestGenerateNonCanonical_PreservesParseOrder(t *testing.T) {
	result := Parse("OCC", Options{})
	require.True(t, result.OK(), "errors: %v", result.Errors)
	out, err := GenerateNonCanonical(result.Molecules[0], Options{})
	require.NoError(t, err)
	require.Equal(t, "OCC", out)
}
