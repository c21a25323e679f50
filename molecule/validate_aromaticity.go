// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : validate_aromaticity.go
package molecule

import (
	"fmt"
	"sort"

	"github.com/cx-luo/smilesgraph/element"
	"go.uber.org/zap"
)

// ValidateAromaticity checks every ring flagged aromatic by the parser
// against Hückel's rule (4n+2 pi electrons). A ring passes when the sum of
// its atoms' pi-electron contributions is congruent to 2 mod 4; on success
// every bond in the ring is promoted to BondAromatic (a bond between two
// lowercase atoms is already aromatic at parse time; promotion also covers
// ring bonds written explicitly, e.g. a Kekulé single or double bond next
// to a lowercase atom). An aromatic atom that belongs to
// no ring, or whose every containing ring fails Hückel's rule, is an error.
func ValidateAromaticity(m *Molecule, log *zap.Logger) []string {
	log = logOrNop(log)
	var errs []string

	rs := perceiveRings(m)
	satisfied := make([]bool, len(m.Atoms))

	for ri, ring := range rs.rings {
		if !ringHasAromaticAtom(m, ring) {
			continue
		}
		electrons, ok := huckelElectronCount(m, ring)
		if !ok {
			continue // ring contains a non-aromatic-capable atom; not an aromaticity candidate
		}
		log.Debug("huckel check", zap.Int("ring", ri), zap.Int("electrons", electrons))
		if electrons%4 != 2 {
			continue
		}
		for _, a := range ring {
			satisfied[a] = true
		}
		for _, e := range rs.ringBonds[ri] {
			m.SetBondType(e, BondAromatic)
		}
	}

	ids := make([]int, 0)
	for _, a := range m.Atoms {
		if a.Aromatic {
			ids = append(ids, a.ID)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		if !satisfied[id] {
			errs = append(errs, fmt.Sprintf(
				"atom %d (%s): marked aromatic but is not part of a Hückel-satisfying ring", id, m.Atoms[id].Symbol))
		}
	}
	return errs
}

func ringHasAromaticAtom(m *Molecule, ring []int) bool {
	for _, a := range ring {
		if m.Atoms[a].Aromatic {
			return true
		}
	}
	return false
}

// huckelElectronCount sums the per-atom pi-electron contribution for a
// candidate aromatic ring: carbon contributes 1 (0 with an exocyclic double
// bond, e.g. a ring =O or =CH2 substituent), O/S/Se always contribute 2 (a
// lone pair), and N/P/As contribute 2 when their total connection count
// (ring bonds + substituents + hydrogens) is 3 or more (pyrrole-like, lone
// pair in the ring) else 1 (pyridine-like, lone pair in-plane). ok is false
// if any ring member cannot participate in an aromatic system at all.
func huckelElectronCount(m *Molecule, ring []int) (int, bool) {
	inRing := make(map[int]bool, len(ring))
	for _, a := range ring {
		inRing[a] = true
	}

	total := 0
	for _, a := range ring {
		atom := m.Atoms[a]
		if !element.CanBeAromatic(atom.AtomicNumber) {
			return 0, false
		}
		switch atom.AtomicNumber {
		case element.O, element.S, element.Se:
			total += 2
		case element.N, element.P, element.As:
			connections := atom.Hydrogens
			exocyclicDouble := false
			for _, e := range m.NeighborBonds(a) {
				b := m.Bonds[e]
				other := b.Other(a)
				connections++
				if !inRing[other] && b.Type == BondDouble {
					exocyclicDouble = true
				}
			}
			if connections >= 3 || exocyclicDouble {
				total += 2
			} else {
				total++
			}
		default: // carbon, boron, etc: one electron unless an exocyclic double bond removes it
			exocyclicDouble := false
			for _, e := range m.NeighborBonds(a) {
				b := m.Bonds[e]
				other := b.Other(a)
				if !inRing[other] && b.Type == BondDouble {
					exocyclicDouble = true
				}
			}
			if exocyclicDouble {
				continue
			}
			total++
		}
	}
	return total, true
}
