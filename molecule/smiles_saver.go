// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : smiles_saver.go
package molecule

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cx-luo/smilesgraph/element"
	"go.uber.org/zap"
)

// SmilesSaverOptions controls Saver's output as a struct-of-flags rather
// than a list of positional booleans. The zero value emits atoms in parse
// order; set Canonical for canonical output.
type SmilesSaverOptions struct {
	// Canonical selects RDKit-compatible canonical atom ordering. False
	// emits atoms in parse order instead.
	Canonical bool
	// Logger receives Debug-level emission trace. Nil is fine.
	Logger *zap.Logger
}

// Saver renders Molecules back to SMILES text.
type Saver struct {
	Options SmilesSaverOptions
}

// Generate renders a single connected-component Molecule to SMILES.
// Canonical mode computes canonical ranks and normalizes E/Z markers
// (rewriting the molecule's bond stereo in place) before emitting. It does
// not run the validators: valence checking, aromatic bond promotion and
// stereo consistency happen only if the caller runs ValidateAndNormalize
// first.
func (s Saver) Generate(m *Molecule) (string, error) {
	log := logOrNop(s.Options.Logger)
	if len(m.Atoms) == 0 {
		return "", nil
	}

	var order []int
	if s.Options.Canonical {
		ranks := CanonicalRanks(m, log)
		NormalizeStereo(m, ranks, log)
		order = ranks
	} else {
		order = make([]int, len(m.Atoms))
		for i := range order {
			order[i] = i
		}
	}

	e := &emitter{m: m, order: order, log: log, visited: make([]bool, len(m.Atoms))}
	e.allocateRingDigits()

	start := e.lowestOrderUnvisited(e.visited)
	e.dfs(start, -1)
	return e.sb.String(), nil
}

// GenerateAll renders every molecule in a ParseResult, joined by '.'.
func (s Saver) GenerateAll(mols []*Molecule) (string, error) {
	parts := make([]string, 0, len(mols))
	for _, m := range mols {
		part, err := s.Generate(m)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "."), nil
}

type emitter struct {
	m       *Molecule
	order   []int // order[atomID] = rank (lower emits first / forms the main chain)
	log     *zap.Logger
	visited []bool
	sb      strings.Builder

	// treeBond and ringDigitOf partition every bond ahead of time, from a
	// single DFS walk: tree bonds are recursed into, ring bonds just get
	// a digit written at each of their two endpoints. Classifying this
	// statically (rather than checking "already visited" while the real
	// emission walk is in progress) avoids misclassifying a bond whose
	// other endpoint hasn't been reached YET at the time a node's
	// neighbor list is first inspected but will have been by the time
	// that neighbor is actually due for recursion.
	treeBond    map[int]bool
	ringDigitOf map[int]int
	ringBondsOf map[int][]int // atomID -> incident ring-closure bond indices
}

// allocateRingDigits walks the DFS tree once (in the same deterministic
// neighbor order Generate's real walk uses) to classify every non-tree
// bond as a ring closure and assign it the smallest unused digit (1-9,
// then %10 upward).
func (e *emitter) allocateRingDigits() {
	e.treeBond = make(map[int]bool)
	e.ringDigitOf = make(map[int]int)
	e.ringBondsOf = make(map[int][]int)
	if len(e.m.Atoms) == 0 {
		return
	}

	parent, closingBonds := dfsTree(e.m, e.order)
	for bi := range parent {
		e.treeBond[bi] = true
	}
	sort.Ints(closingBonds)

	used := make(map[int]bool)
	nextDigit := func() int {
		d := 1
		for used[d] {
			d++
		}
		used[d] = true
		return d
	}
	for _, bi := range closingBonds {
		e.ringDigitOf[bi] = nextDigit()
		b := e.m.Bonds[bi]
		e.ringBondsOf[b.Atom1] = append(e.ringBondsOf[b.Atom1], bi)
		e.ringBondsOf[b.Atom2] = append(e.ringBondsOf[b.Atom2], bi)
	}
	for atomID := range e.ringBondsOf {
		bonds := e.ringBondsOf[atomID]
		sort.Slice(bonds, func(i, j int) bool { return e.ringDigitOf[bonds[i]] < e.ringDigitOf[bonds[j]] })
	}
}

type rankedNeighbor struct {
	atom int
	bond int
	rank int
}

// sortedNeighborsByOrder orders atom's neighbors by canonical rank
// descending so the lowest-rank child is visited LAST (emitted as the
// continuation of the main chain rather than a parenthesized branch).
func sortedNeighborsByOrder(m *Molecule, atom int, order []int) []rankedNeighbor {
	edges := m.NeighborBonds(atom)
	out := make([]rankedNeighbor, len(edges))
	for i, ed := range edges {
		other := m.Bonds[ed].Other(atom)
		out[i] = rankedNeighbor{atom: other, bond: ed, rank: order[other]}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rank > out[j].rank })
	return out
}

func (e *emitter) sortedNeighbors(atom int) []rankedNeighbor {
	return sortedNeighborsByOrder(e.m, atom, e.order)
}

func lowestOrderUnvisited(m *Molecule, order []int, visited []bool) int {
	best := -1
	for atomID := range m.Atoms {
		if visited[atomID] {
			continue
		}
		if best == -1 || order[atomID] < order[best] {
			best = atomID
		}
	}
	return best
}

func (e *emitter) lowestOrderUnvisited(visited []bool) int {
	return lowestOrderUnvisited(e.m, e.order, visited)
}

// dfsTree replays the same rank-ordered walk Generate's emission pass
// uses and returns, for every tree bond, the atom id visited first — its
// DFS parent, and the actual atom a directional bond symbol gets printed
// relative to — plus the bond indices left over as ring closures.
func dfsTree(m *Molecule, order []int) (parent map[int]int, ringBonds []int) {
	parent = make(map[int]int)
	if len(m.Atoms) == 0 {
		return parent, nil
	}
	treeBond := make(map[int]bool)
	visited := make([]bool, len(m.Atoms))
	var walk func(atom, viaBond int)
	walk = func(atom, viaBond int) {
		visited[atom] = true
		for _, nb := range sortedNeighborsByOrder(m, atom, order) {
			if nb.bond == viaBond {
				continue
			}
			if !visited[nb.atom] {
				treeBond[nb.bond] = true
				parent[nb.bond] = atom
				walk(nb.atom, nb.bond)
			}
		}
	}
	start := lowestOrderUnvisited(m, order, visited)
	for start != -1 {
		walk(start, -1)
		start = lowestOrderUnvisited(m, order, visited)
	}
	for bi := range m.Bonds {
		if !treeBond[bi] {
			ringBonds = append(ringBonds, bi)
		}
	}
	return parent, ringBonds
}

func (e *emitter) dfs(atom, viaBond int) {
	e.visited[atom] = true
	e.writeAtom(atom)

	for _, bi := range e.ringBondsOf[atom] {
		e.writeRingDigit(bi, atom)
	}

	var treeChildren []rankedNeighbor
	for _, nb := range e.sortedNeighbors(atom) {
		if nb.bond == viaBond || !e.treeBond[nb.bond] {
			continue
		}
		treeChildren = append(treeChildren, nb)
	}

	for i, child := range treeChildren {
		branch := i < len(treeChildren)-1
		if branch {
			e.sb.WriteByte('(')
		}
		e.writeBondSymbol(child.bond, atom)
		e.dfs(child.atom, child.bond)
		if branch {
			e.sb.WriteByte(')')
		}
	}
}

func (e *emitter) writeRingDigit(bondIdx, fromAtom int) {
	e.writeBondSymbol(bondIdx, fromAtom)
	e.writeDigit(e.ringDigitOf[bondIdx])
}

func (e *emitter) writeDigit(d int) {
	if d < 10 {
		e.sb.WriteByte(byte('0' + d))
		return
	}
	e.sb.WriteByte('%')
	e.sb.WriteString(strconv.Itoa(d))
}

// writeBondSymbol emits the bond symbol between fromAtom and the bond's
// other endpoint, omitting it when it's the default for context (single
// between non-aromatic atoms, or aromatic between two aromatic atoms). A
// directional marker on a bond with no adjacent double bond is dropped
// and the bond is written as a plain single bond.
func (e *emitter) writeBondSymbol(bondIdx, fromAtom int) {
	b := e.m.Bonds[bondIdx]
	stereo := b.Stereo
	if !adjacentToDoubleBond(e.m, b.Atom1) && !adjacentToDoubleBond(e.m, b.Atom2) {
		stereo = StereoNone
	}
	switch stereo {
	case StereoUp:
		if directionAwayFrom(b, fromAtom) == StereoUp {
			e.sb.WriteByte('/')
		} else {
			e.sb.WriteByte('\\')
		}
		return
	case StereoDown:
		if directionAwayFrom(b, fromAtom) == StereoDown {
			e.sb.WriteByte('\\')
		} else {
			e.sb.WriteByte('/')
		}
		return
	}

	other := b.Other(fromAtom)
	bothAromatic := e.m.Atoms[fromAtom].Aromatic && e.m.Atoms[other].Aromatic
	switch b.Type {
	case BondSingle:
		if bothAromatic {
			e.sb.WriteByte('-')
		}
	case BondDouble:
		e.sb.WriteByte('=')
	case BondTriple:
		e.sb.WriteByte('#')
	case BondQuadruple:
		e.sb.WriteByte('$')
	case BondAromatic:
		if !bothAromatic {
			e.sb.WriteByte(':')
		}
	}
}

func (e *emitter) writeAtom(atomID int) {
	a := e.m.Atoms[atomID]
	if needsBracket(a) {
		e.writeBracketAtom(a)
		return
	}
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	e.sb.WriteString(sym)
}

// needsBracket reports whether an atom must be written with brackets:
// anything outside the organic subset, or a non-zero isotope, charge,
// atom class, or chiral tag. An atom written in brackets in the source
// always stays bracketed, even when its explicit hydrogen count is the one
// the default valence implies (`[CH4]` is not rewritten as `C`).
func needsBracket(a Atom) bool {
	if a.IsBracket {
		return true
	}
	if a.Isotope != 0 || a.Charge != 0 || a.Chiral != ChiralNone || a.HasAtomClass() {
		return true
	}
	if _, _, ok := element.FromOrganicSubset(a.Symbol); !ok {
		return true
	}
	return false
}

func (e *emitter) writeBracketAtom(a Atom) {
	e.sb.WriteByte('[')
	if a.Isotope != 0 {
		e.sb.WriteString(strconv.Itoa(a.Isotope))
	}
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	e.sb.WriteString(sym)
	if a.Chiral != ChiralNone {
		e.sb.WriteString(string(a.Chiral))
	}
	if a.Hydrogens > 0 {
		e.sb.WriteByte('H')
		if a.Hydrogens > 1 {
			e.sb.WriteString(strconv.Itoa(a.Hydrogens))
		}
	}
	if a.Charge != 0 {
		sign := byte('+')
		n := a.Charge
		if n < 0 {
			sign = '-'
			n = -n
		}
		if n == 1 {
			e.sb.WriteByte(sign)
		} else {
			e.sb.WriteByte(sign)
			e.sb.WriteString(strconv.Itoa(n))
		}
	}
	if a.HasAtomClass() {
		e.sb.WriteByte(':')
		e.sb.WriteString(strconv.Itoa(a.AtomClass))
	}
	e.sb.WriteByte(']')
}

// ValidateAndNormalize runs every validator and normalizer in order —
// valence, then aromaticity promotion, then stereo consistency — returning
// all accumulated errors. Canonical generation and any caller that wants
// RDKit-equivalent semantics should call this before Generate.
func ValidateAndNormalize(m *Molecule, log *zap.Logger) []string {
	var errs []string
	errs = append(errs, ValidateValence(m, log)...)
	errs = append(errs, ValidateAromaticity(m, log)...)
	errs = append(errs, ValidateStereo(m, log)...)
	return errs
}
