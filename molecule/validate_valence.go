// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : validate_valence.go
package molecule

import (
	"fmt"

	"github.com/cx-luo/smilesgraph/element"
	"go.uber.org/zap"
)

// ValidateValence checks every atom's total bond order (plus implicit and
// explicit hydrogens, plus charge adjustment) against its element's
// permitted valences. Elements with no stipulated valence table at all (an
// atomic number outside element's static reference data, reachable only
// through a bracket atom) are skipped — there's nothing to check them
// against.
func ValidateValence(m *Molecule, log *zap.Logger) []string {
	log = logOrNop(log)
	var errs []string
	for _, a := range m.Atoms {
		valences := element.PermittedValences(a.AtomicNumber)
		if len(valences) == 0 {
			continue
		}
		used := 0
		for _, e := range m.NeighborBonds(a.ID) {
			used += m.Bonds[e].OrderX2()
		}
		used /= 2
		used += a.Hydrogens

		// Charge shifts the expected valence the way RDKit does for the
		// common organic-subset cases: nitrogen/phosphorus/sulfur/oxygen
		// gain a bond per positive charge and lose one per negative charge,
		// boron loses one per positive and gains one per negative charge,
		// and carbon loses one per unit of charge of either sign.
		adjusted := adjustForCharge(a.AtomicNumber, a.Charge, valences)

		ok := false
		for _, v := range adjusted {
			if used == v {
				ok = true
				break
			}
		}
		if !ok {
			log.Debug("valence violation",
				zap.Int("atom", a.ID),
				zap.String("symbol", a.Symbol),
				zap.Int("used", used),
				zap.Ints("permitted", adjusted),
			)
			errs = append(errs, fmt.Sprintf(
				"atom %d (%s): valence %d not in permitted set %v", a.ID, a.Symbol, used, adjusted))
		}
	}
	return errs
}

func adjustForCharge(atomicNumber, charge int, base []int) []int {
	if charge == 0 {
		return base
	}
	shift := 0
	switch atomicNumber {
	case element.N, element.P, element.S, element.O:
		shift = charge
	case element.C:
		shift = -charge
		if charge < 0 {
			shift = charge
		}
	case element.B:
		shift = -charge
	default:
		return base
	}
	out := make([]int, len(base))
	for i, v := range base {
		out[i] = v + shift
	}
	return out
}
