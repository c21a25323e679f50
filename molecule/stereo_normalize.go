// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : stereo_normalize.go
package molecule

import "go.uber.org/zap"

// NormalizeStereo rewrites directional bond markers into one canonical
// representation per double bond. It must run after CanonicalRanks, since
// "canonical form" is defined relative to each stereo bond's
// highest-canonically-ranked neighbor on either side: both reference
// substituents reading the same direction symbol means trans (E);
// opposite symbols means cis (Z).
//
// The trans/cis fact itself is read relative to the double bond's own two
// atoms — a fixed frame that only depends on how the input was parsed,
// not on emission order. But the symbol actually printed for a
// directional bond is read relative to whichever of its two atoms the
// emitter's DFS visits first (its parent, see dfsTree in
// smiles_saver.go) — which, depending on rank, can be either the double
// bond atom or the outer substituent — so the target direction has to be
// pinned relative to that same parent atom, not the double bond atom,
// or the printed symbols won't reflect the geometry this pass computed.
//
// Any directional bond left unresolved by this pass (no double bond
// neighbor survived validation) is cleared to StereoNone at emission
// time, not here — see smiles_saver.go.
func NormalizeStereo(m *Molecule, ranks []int, log *zap.Logger) {
	log = logOrNop(log)
	parent, _ := dfsTree(m, ranks)
	for bi, b := range m.Bonds {
		if b.Type != BondDouble {
			continue
		}
		left := highestRankedDirectionalNeighbor(m, b.Atom1, b.Atom2, ranks)
		right := highestRankedDirectionalNeighbor(m, b.Atom2, b.Atom1, ranks)
		if left < 0 || right < 0 {
			continue
		}
		leftBond, rightBond := &m.Bonds[left], &m.Bonds[right]
		if leftBond.Stereo == StereoNone || rightBond.Stereo == StereoNone {
			continue
		}

		leftUp := directionAwayFrom(*leftBond, b.Atom1) == StereoUp
		rightUp := directionAwayFrom(*rightBond, b.Atom2) == StereoUp

		// Opposite readings from the double bond's own atoms is trans:
		// the two reference substituents sit on opposite sides of that
		// fixed frame precisely when the bonds point the same way in
		// the final printed (parent-relative) form.
		trans := leftUp != rightUp
		log.Debug("normalizing double bond stereo", zap.Int("bond", bi), zap.Bool("trans", trans))

		leftFrom := dfsParentOf(parent, left, b.Atom1)
		rightFrom := dfsParentOf(parent, right, b.Atom2)

		setDirectionAwayFrom(m, left, leftFrom, StereoUp)
		if trans {
			setDirectionAwayFrom(m, right, rightFrom, StereoUp)
		} else {
			setDirectionAwayFrom(m, right, rightFrom, StereoDown)
		}
	}
}

// dfsParentOf looks up the DFS parent atom dfsTree assigned to a
// reference bond; ring-closure reference bonds (stereo across a ring
// bond, rare) fall back to the double bond's own atom.
func dfsParentOf(parent map[int]int, bond, fallback int) int {
	if p, ok := parent[bond]; ok {
		return p
	}
	return fallback
}

// highestRankedDirectionalNeighbor finds, among doubleBondAtom's neighbors
// other than acrossAtom, the bond index of a directional (/, \) single
// bond to the substituent with the highest canonical rank — the reference
// substituent canonical form is defined relative to.
func highestRankedDirectionalNeighbor(m *Molecule, doubleBondAtom, acrossAtom int, ranks []int) int {
	best := -1
	bestRank := -1
	for _, e := range m.NeighborBonds(doubleBondAtom) {
		b := m.Bonds[e]
		if b.Type != BondSingle || b.Stereo == StereoNone {
			continue
		}
		other := b.Other(doubleBondAtom)
		if other == acrossAtom {
			continue
		}
		if ranks[other] > bestRank {
			bestRank = ranks[other]
			best = e
		}
	}
	return best
}

// directionAwayFrom reports the directional marker as seen looking from
// atomID outward along the bond (StereoUp/StereoDown are stored relative
// to parse order — Atom1 -> Atom2 — so they must be flipped when read
// from Atom2's perspective).
func directionAwayFrom(b Bond, atomID int) BondStereo {
	if b.Atom1 == atomID {
		return b.Stereo
	}
	switch b.Stereo {
	case StereoUp:
		return StereoDown
	case StereoDown:
		return StereoUp
	default:
		return b.Stereo
	}
}

func setDirectionAwayFrom(m *Molecule, bondIdx, atomID int, dir BondStereo) {
	b := &m.Bonds[bondIdx]
	if b.Atom1 == atomID {
		b.Stereo = dir
		return
	}
	switch dir {
	case StereoUp:
		b.Stereo = StereoDown
	case StereoDown:
		b.Stereo = StereoUp
	default:
		b.Stereo = dir
	}
}
