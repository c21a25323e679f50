// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : validate_stereo.go
package molecule

import "go.uber.org/zap"

// ValidateStereo enforces stereo consistency: a basic tetrahedral chiral
// tag (`@`/`@@`) requires at least 3 explicit neighbors (ring bonds,
// substituents, or a single implicit/explicit H) to be meaningful — below
// that the tag carries no geometric information and is silently dropped
// rather than rejected. Directional bonds (`/`, `\`) that end up adjacent
// to no double bond after parsing are likewise reset to StereoNone —
// they're orphaned markers, not errors.
func ValidateStereo(m *Molecule, log *zap.Logger) []string {
	log = logOrNop(log)

	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Chiral == ChiralNone || IsExtendedChiralTag(a.Chiral) {
			continue
		}
		neighborCount := m.Degree(a.ID) + boolToInt(a.Hydrogens > 0)
		if neighborCount < 3 {
			log.Debug("dropping under-specified chirality", zap.Int("atom", a.ID))
			a.Chiral = ChiralNone
		}
	}

	for i := range m.Bonds {
		b := &m.Bonds[i]
		if b.Stereo == StereoNone {
			continue
		}
		if !adjacentToDoubleBond(m, b.Atom1) && !adjacentToDoubleBond(m, b.Atom2) {
			log.Debug("dropping orphaned directional bond", zap.Int("bond", i))
			b.Stereo = StereoNone
		}
	}

	return nil
}

func adjacentToDoubleBond(m *Molecule, atomID int) bool {
	for _, e := range m.NeighborBonds(atomID) {
		if m.Bonds[e].Type == BondDouble {
			return true
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
