// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : implicit_hydrogens.go
package molecule

import "github.com/cx-luo/smilesgraph/element"

// fillImplicitHydrogens computes Atom.Hydrogens for every non-bracket atom:
// default-valence table per element, minus sum of bond orders (aromatic
// bonds count 1.5, rounded consistently per RDKit convention). Bracket
// atoms are left untouched — their H count came straight from the source
// and is never augmented.
func fillImplicitHydrogens(m *Molecule) {
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.IsBracket {
			continue
		}

		if a.Aromatic {
			aromaticDegree := 0
			for _, e := range m.NeighborBonds(a.ID) {
				if m.Bonds[e].Type == BondAromatic {
					aromaticDegree++
				}
			}
			if h, ok := element.AromaticImplicitH(a.AtomicNumber, aromaticDegree); ok {
				a.Hydrogens = h
				continue
			}
			// Fall through to the general rule using the 1.5-per-aromatic-bond
			// convention for elements with no stipulated table entry.
			sum := 0
			for _, e := range m.NeighborBonds(a.ID) {
				sum += m.Bonds[e].OrderX2()
			}
			// sum is in half-bond-order units; a leftover half unit (an odd
			// number of aromatic bonds) is rounded up, e.g. 3 aromatic bonds *
			// 1.5 = 4.5 consume a valence of 5, and fitValence then picks the
			// smallest permitted valence at or above that.
			used := (sum + 1) / 2
			a.Hydrogens = fitValence(a.AtomicNumber, used)
			continue
		}

		sum := 0
		for _, e := range m.NeighborBonds(a.ID) {
			sum += int(m.Bonds[e].Type)
		}
		a.Hydrogens = fitValence(a.AtomicNumber, sum)
	}
}

// fitValence picks the smallest permitted valence at or above `used` and
// returns the shortfall as implicit H; if none fits (valence already
// exceeded) it returns 0 and leaves the violation for the valence validator.
func fitValence(atomicNumber, used int) int {
	for _, v := range element.PermittedValences(atomicNumber) {
		if v >= used {
			return v - used
		}
	}
	return 0
}
