package molecule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStereo_DropsUnderSpecifiedChirality(t *testing.T) {
	// [C@H] with two other explicit neighbors plus its H has 3 in total,
	// which is enough, so the tag is kept; with only one other neighbor
	// (1 + H = 2) the tag is dropped.
	result := Parse("[C@H](C)C")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	require.Equal(t, ChiralAnti, m.Atoms[0].Chiral)
	ValidateStereo(m, nil)
	require.Equal(t, ChiralAnti, m.Atoms[0].Chiral) // 2 degree + 1 H = 3, kept

	result = Parse("[C@H]C")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m = result.Molecules[0]
	require.Equal(t, ChiralAnti, m.Atoms[0].Chiral)
	ValidateStereo(m, nil)
	require.Equal(t, ChiralNone, m.Atoms[0].Chiral) // 1 degree + 1 H = 2, dropped
}

func TestValidateStereo_DropsOrphanedDirectionalBond(t *testing.T) {
	result := Parse("F/CC")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	require.Equal(t, StereoUp, m.Bonds[0].Stereo)
	ValidateStereo(m, nil)
	require.Equal(t, StereoNone, m.Bonds[0].Stereo)
}

func TestValidateStereo_KeepsDirectionalBondNextToDoubleBond(t *testing.T) {
	result := Parse("F/C=C/F")
	require.True(t, result.OK(), "errors: %v", result.Errors)
	m := result.Molecules[0]
	ValidateStereo(m, nil)
	require.Equal(t, StereoUp, m.Bonds[0].Stereo)
	require.Equal(t, StereoUp, m.Bonds[2].Stereo)
}
