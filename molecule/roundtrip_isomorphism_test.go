package molecule

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type atomSignature struct {
	AtomicNumber int
	Charge       int
	Aromatic     bool
	Hydrogens    int
}

type bondSignature struct {
	A, B int // endpoint atomic numbers, sorted so edge direction doesn't matter
	Type BondType
}

// moleculeSignature reduces a molecule to atom and bond multisets keyed
// purely by composition (atomic number, charge, aromaticity, implicit H)
// and connectivity (endpoint atomic numbers, bond order) — never by atom
// id or emission order, which canonicalization is free to change.
func moleculeSignature(m *Molecule) ([]atomSignature, []bondSignature) {
	atoms := make([]atomSignature, len(m.Atoms))
	for i, a := range m.Atoms {
		atoms[i] = atomSignature{a.AtomicNumber, a.Charge, a.Aromatic, a.Hydrogens}
	}
	sort.Slice(atoms, func(i, j int) bool {
		if atoms[i].AtomicNumber != atoms[j].AtomicNumber {
			return atoms[i].AtomicNumber < atoms[j].AtomicNumber
		}
		if atoms[i].Charge != atoms[j].Charge {
			return atoms[i].Charge < atoms[j].Charge
		}
		if atoms[i].Hydrogens != atoms[j].Hydrogens {
			return atoms[i].Hydrogens < atoms[j].Hydrogens
		}
		return !atoms[i].Aromatic && atoms[j].Aromatic
	})

	bonds := make([]bondSignature, len(m.Bonds))
	for i, b := range m.Bonds {
		a1, a2 := m.Atoms[b.Atom1].AtomicNumber, m.Atoms[b.Atom2].AtomicNumber
		if a2 < a1 {
			a1, a2 = a2, a1
		}
		bonds[i] = bondSignature{a1, a2, b.Type}
	}
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].A != bonds[j].A {
			return bonds[i].A < bonds[j].A
		}
		if bonds[i].B != bonds[j].B {
			return bonds[i].B < bonds[j].B
		}
		return bonds[i].Type < bonds[j].Type
	})
	return atoms, bonds
}

// TestRoundTrip_IsomorphicAfterCanonicalGeneration parses a molecule,
// canonicalizes it to SMILES, and re-parses that text: the round trip
// must preserve composition and connectivity exactly, even though atom
// ids and emission order are free to change across it. cmp.Diff gives a
// field-level diff instead of a single pass/fail on these struct
// multisets, which is the point of reaching for it over require.Equal.
func TestRoundTrip_IsomorphicAfterCanonicalGeneration(t *testing.T) {
	for _, s := range []string{
		"CC(=O)Oc1ccccc1C(=O)O", // aspirin
		"C1CCCCC1",
		"c1ccncc1",
		`Cl/C=C(\F)Br`,
		"[13CH4]",
		"CC(C)Cc1ccc(cc1)C(C)C(=O)O", // ibuprofen
	} {
		orig := Parse(s).Molecules[0]
		require.Empty(t, ValidateAndNormalize(orig, nil), "normalizing %q", s)

		out := generateCanonical(t, s)
		reparsed := Parse(out)
		require.True(t, reparsed.OK(), "re-parse of %q (from %q) failed: %v", out, s, reparsed.Errors)

		wantAtoms, wantBonds := moleculeSignature(orig)
		gotAtoms, gotBonds := moleculeSignature(reparsed.Molecules[0])
		if diff := cmp.Diff(wantAtoms, gotAtoms); diff != "" {
			t.Errorf("atom signature mismatch for %q -> %q (-want +got):\n%s", s, out, diff)
		}
		if diff := cmp.Diff(wantBonds, gotBonds); diff != "" {
			t.Errorf("bond signature mismatch for %q -> %q (-want +got):\n%s", s, out, diff)
		}
	}
}
