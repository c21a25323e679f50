// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : gross_formula.go
package molecule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cx-luo/smilesgraph/element"
)

// atomicWeights holds the standard atomic weight (g/mol) used by
// MolecularWeight, keyed by atomic number. It covers the elements the
// element/ package declares constants for; any other element adds nothing
// to MolecularWeight.
var atomicWeights = map[int]float64{
	element.H:  1.008,
	element.B:  10.81,
	element.C:  12.011,
	element.N:  14.007,
	element.O:  15.999,
	element.F:  18.998,
	element.Si: 28.085,
	element.P:  30.974,
	element.S:  32.06,
	element.Cl: 35.45,
	element.As: 74.922,
	element.Se: 78.971,
	element.Br: 79.904,
	element.I:  126.904,
}

// GrossFormula renders a molecule's Hill-system molecular formula: carbon
// first, then hydrogen, then every other element alphabetically; without
// carbon, every element including hydrogen is listed alphabetically.
// Explicit hydrogen atoms and attached hydrogens share one H count.
func (m *Molecule) GrossFormula() string {
	counts := make(map[string]int)
	hCount := 0
	for _, a := range m.Atoms {
		if a.AtomicNumber == element.H {
			hCount++
		} else {
			counts[element.Symbol(a.AtomicNumber)]++
		}
		hCount += a.Hydrogens
	}

	var sb strings.Builder
	if c, ok := counts["C"]; ok {
		writeFormulaPart(&sb, "C", c)
		delete(counts, "C")
		if hCount > 0 {
			writeFormulaPart(&sb, "H", hCount)
			hCount = 0
		}
	} else if hCount > 0 {
		counts["H"] = hCount
	}
	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		writeFormulaPart(&sb, sym, counts[sym])
	}
	return sb.String()
}

func writeFormulaPart(sb *strings.Builder, sym string, n int) {
	sb.WriteString(sym)
	if n > 1 {
		fmt.Fprintf(sb, "%d", n)
	}
}

// MolecularWeight sums atomic weights over every heavy atom plus its
// hydrogens.
func (m *Molecule) MolecularWeight() float64 {
	total := 0.0
	for _, a := range m.Atoms {
		total += atomicWeights[a.AtomicNumber]
		total += float64(a.Hydrogens) * atomicWeights[element.H]
	}
	return total
}
