// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : smiles_loader.go
package molecule

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cx-luo/smilesgraph/element"
	"go.uber.org/zap"
)

// Loader parses SMILES strings into Molecule graphs. The zero value is
// ready to use.
type Loader struct {
	// Logger receives Debug-level parse trace (bracket sub-parses, ring
	// reconciliation). Nil is fine — trace is purely diagnostic.
	Logger *zap.Logger
}

// Parse builds zero or more Molecules from a SMILES string: never panics
// on malformed input, collects errors instead. A Molecule is one connected
// component — disconnected fragments separated by `.` become separate
// entries in ParseResult.Molecules unless a later ring closure reconnects
// them, since OpenSMILES allows cross-component ring closures.
func (l Loader) Parse(s string) ParseResult {
	log := logOrNop(l.Logger)
	b := &builder{src: s, log: log, scratch: New()}
	b.run()
	return b.finish()
}

// Parse is a convenience wrapper around Loader{}.Parse for callers who don't
// need logging.
func Parse(s string) ParseResult {
	return Loader{}.Parse(s)
}

type ringOpen struct {
	atom      int
	bondType  BondType
	hasType   bool
	stereo    BondStereo
	hasStereo bool
}

type pendingBond struct {
	bondType  BondType
	hasType   bool
	stereo    BondStereo
	hasStereo bool
}

type builder struct {
	src     string
	pos     int
	log     *zap.Logger
	scratch *Molecule

	prevAtom     int // -1 if none
	branchStack  []int
	ringTable    map[int]ringOpen
	pending      pendingBond
	errs         []string
	aromaticFlag []bool // scratch-indexed; mirrors Atom.Aromatic while the scratch Atom slice is being built
}

func (b *builder) run() {
	b.prevAtom = -1
	b.ringTable = make(map[int]ringOpen)
	s := b.src

	for b.pos < len(s) {
		ch := rune(s[b.pos])
		switch {
		case unicode.IsSpace(ch):
			b.pos++

		case ch == '(':
			if b.prevAtom < 0 {
				b.fail("unbalanced parenthesis: '(' with no preceding atom at %d", b.pos)
				b.pos++
				continue
			}
			b.branchStack = append(b.branchStack, b.prevAtom)
			b.pos++

		case ch == ')':
			if len(b.branchStack) == 0 {
				b.fail("unbalanced parenthesis: unmatched ')' at %d", b.pos)
				b.pos++
				continue
			}
			b.prevAtom = b.branchStack[len(b.branchStack)-1]
			b.branchStack = b.branchStack[:len(b.branchStack)-1]
			b.pos++

		case ch == '.':
			if b.pending.hasType || b.pending.hasStereo {
				b.fail("stray bond symbol before '.' at %d", b.pos)
			}
			b.prevAtom = -1
			b.pending = pendingBond{}
			b.pos++

		case isBondChar(ch):
			b.readBondSymbol()

		case ch == '%' || (ch >= '0' && ch <= '9'):
			b.readRingClosure()

		case ch == '[':
			b.readBracketAtom()

		default:
			b.readOrganicAtom()
		}
	}

	if len(b.branchStack) != 0 {
		b.fail("unbalanced parenthesis: %d branch(es) left open", len(b.branchStack))
	}
	if b.pending.hasType || b.pending.hasStereo {
		b.fail("stray bond symbol at end of input")
	}
	for ringNum := range b.ringTable {
		b.fail("dangling ring closure: ring bond %d never closed", ringNum)
	}

	fillImplicitHydrogens(b.scratch)
	b.log.Debug("smiles parse complete",
		zap.Int("atoms", len(b.scratch.Atoms)),
		zap.Int("bonds", len(b.scratch.Bonds)),
		zap.Int("errors", len(b.errs)),
	)
}

func isBondChar(ch rune) bool {
	switch ch {
	case '-', '=', '#', '$', ':', '/', '\\':
		return true
	}
	return false
}

func (b *builder) readBondSymbol() {
	ch := rune(b.src[b.pos])
	var t BondType
	var stereo BondStereo
	hasStereo := false
	switch ch {
	case '-':
		t = BondSingle
	case '=':
		t = BondDouble
	case '#':
		t = BondTriple
	case '$':
		t = BondQuadruple
	case ':':
		t = BondAromatic
	case '/':
		t = BondSingle
		stereo = StereoUp
		hasStereo = true
	case '\\':
		t = BondSingle
		stereo = StereoDown
		hasStereo = true
	}

	if b.pending.hasType || b.pending.hasStereo {
		b.fail("bad bond sequence: consecutive bond symbols at %d", b.pos)
		b.pending = pendingBond{}
		b.pos++
		return
	}

	b.pending = pendingBond{bondType: t, hasType: true, stereo: stereo, hasStereo: hasStereo}
	b.pos++
}

func (b *builder) readRingClosure() {
	if b.prevAtom < 0 {
		b.fail("dangling ring closure: ring digit without preceding atom at %d", b.pos)
		b.pos++
		return
	}

	s := b.src
	ringNum := 0
	if s[b.pos] == '%' {
		if b.pos+2 >= len(s) || !isDigit(s[b.pos+1]) || !isDigit(s[b.pos+2]) {
			b.fail("malformed %%NN ring number at %d", b.pos)
			b.pos++
			return
		}
		ringNum = int(s[b.pos+1]-'0')*10 + int(s[b.pos+2]-'0')
		b.pos += 3
	} else {
		ringNum = int(s[b.pos] - '0')
		b.pos++
	}

	pend := b.pending
	b.pending = pendingBond{}

	if open, ok := b.ringTable[ringNum]; ok {
		order, err := reconcileBondType(open.hasType, open.bondType, pend.hasType, pend.bondType,
			b.atomAromatic(open.atom), b.atomAromatic(b.prevAtom))
		if err != nil {
			b.fail("conflicting ring bond orders on ring %d: %v", ringNum, err)
			delete(b.ringTable, ringNum)
			return
		}
		bondIdx := b.scratch.AddBond(open.atom, b.prevAtom, order)
		stereo, hasStereo := reconcileStereo(open.hasStereo, open.stereo, pend.hasStereo, pend.stereo)
		if hasStereo {
			b.scratch.Bonds[bondIdx].Stereo = stereo
		}
		delete(b.ringTable, ringNum)
		b.log.Debug("ring closure", zap.Int("ring", ringNum), zap.Int("atom1", open.atom), zap.Int("atom2", b.prevAtom))
	} else {
		b.ringTable[ringNum] = ringOpen{atom: b.prevAtom, bondType: pend.bondType, hasType: pend.hasType, stereo: pend.stereo, hasStereo: pend.hasStereo}
	}
}

func reconcileBondType(hasA bool, a BondType, hasB bool, b BondType, aromaticA, aromaticB bool) (BondType, error) {
	switch {
	case hasA && hasB:
		if a != b {
			return 0, fmt.Errorf("%v != %v", a, b)
		}
		return a, nil
	case hasA:
		return a, nil
	case hasB:
		return b, nil
	default:
		if aromaticA && aromaticB {
			return BondAromatic, nil
		}
		return BondSingle, nil
	}
}

func reconcileStereo(hasA bool, a BondStereo, hasB bool, b BondStereo) (BondStereo, bool) {
	if hasA {
		return a, true
	}
	if hasB {
		return b, true
	}
	return StereoNone, false
}

func (b *builder) atomAromatic(atomID int) bool {
	if atomID >= 0 && atomID < len(b.aromaticFlag) {
		return b.aromaticFlag[atomID]
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// readOrganicAtom reads a bare (unbracketed) atom: an organic-subset
// element, possibly two characters (Cl, Br), or a lowercase aromatic symbol.
func (b *builder) readOrganicAtom() {
	s := b.src
	i := b.pos
	ch := rune(s[i])

	var sym string
	var next int
	switch {
	case ch == 'c' || ch == 'n' || ch == 'o' || ch == 's' || ch == 'p' || ch == 'b':
		sym, next = string(ch), i+1
	case unicode.IsUpper(ch):
		sym = string(ch)
		next = i + 1
		if next < len(s) && unicode.IsLower(rune(s[next])) {
			two := sym + string(s[next])
			if _, _, ok := element.FromOrganicSubset(two); ok {
				sym = two
				next++
			}
		}
	default:
		b.fail("unexpected character %q at %d", ch, i)
		b.pos++
		return
	}

	num, aromatic, ok := element.FromOrganicSubset(sym)
	if !ok {
		b.fail("unknown element: %s", sym)
		b.pos = next
		return
	}

	b.addAtom(Atom{Symbol: sym, AtomicNumber: num, Aromatic: aromatic, AtomClass: -1}, false)
	b.pos = next
}

// addAtom inserts a into the scratch graph, bonds it to prevAtom (if any)
// using the pending bond state (or an implied default), and advances
// prevAtom.
func (b *builder) addAtom(a Atom, isBracket bool) {
	a.IsBracket = isBracket
	idx := b.scratch.AddAtom(a)
	for len(b.aromaticFlag) <= idx {
		b.aromaticFlag = append(b.aromaticFlag, false)
	}
	b.aromaticFlag[idx] = a.Aromatic

	if b.prevAtom >= 0 {
		pend := b.pending
		b.pending = pendingBond{}
		order, _ := reconcileBondType(pend.hasType, pend.bondType, false, 0, b.atomAromatic(b.prevAtom), a.Aromatic)
		bondIdx := b.scratch.AddBond(b.prevAtom, idx, order)
		if pend.hasStereo {
			b.scratch.Bonds[bondIdx].Stereo = pend.stereo
		}
	} else {
		b.pending = pendingBond{}
	}
	b.prevAtom = idx
}

func (b *builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Sprintf(format, args...))
}

// finish splits the scratch graph into connected components (each becomes
// one Molecule) and renumbers atom ids to be contiguous per component,
// preserving relative parse order.
func (b *builder) finish() ParseResult {
	mols := splitConnectedComponents(b.scratch)
	return ParseResult{Molecules: mols, Errors: b.errs}
}

// splitConnectedComponents returns one Molecule per connected component of
// src, in order of each component's lowest original atom id.
func splitConnectedComponents(src *Molecule) []*Molecule {
	n := len(src.Atoms)
	if n == 0 {
		return nil
	}
	component := make([]int, n)
	for i := range component {
		component[i] = -1
	}
	nextComp := 0
	for start := 0; start < n; start++ {
		if component[start] != -1 {
			continue
		}
		queue := []int{start}
		component[start] = nextComp
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range src.Neighbors(cur) {
				if component[nb] == -1 {
					component[nb] = nextComp
					queue = append(queue, nb)
				}
			}
		}
		nextComp++
	}

	mols := make([]*Molecule, nextComp)
	remap := make([]int, n)
	for i := range mols {
		mols[i] = New()
	}
	for atomID := range src.Atoms {
		c := component[atomID]
		remap[atomID] = mols[c].AddAtom(src.Atoms[atomID])
	}
	for _, bond := range src.Bonds {
		c := component[bond.Atom1]
		nb := bond
		nb.Atom1 = remap[bond.Atom1]
		nb.Atom2 = remap[bond.Atom2]
		mols[c].AddBond(nb.Atom1, nb.Atom2, nb.Type)
		mols[c].Bonds[len(mols[c].Bonds)-1].Stereo = nb.Stereo
	}
	return mols
}

// readBracketAtom parses `[...]`: optional isotope digits, element (incl.
// `*`, `se`, `as`), optional chirality tag, optional `H` + count, optional
// charge, optional `:class`.
func (b *builder) readBracketAtom() {
	s := b.src
	start := b.pos
	i := start + 1

	closeIdx := strings.IndexByte(s[i:], ']')
	if closeIdx < 0 {
		b.fail("unclosed bracket at %d", start)
		b.pos = len(s)
		return
	}
	interior := s[i : i+closeIdx]
	b.log.Debug("bracket atom", zap.String("interior", interior))

	atom, err := parseBracketInterior(interior)
	if err != nil {
		b.fail("%v", err)
		b.pos = i + closeIdx + 1
		return
	}

	b.addAtom(atom, true)
	b.pos = i + closeIdx + 1
}

func parseBracketInterior(interior string) (Atom, error) {
	i := 0
	n := len(interior)
	var a Atom
	a.AtomClass = -1

	// isotope
	isoStart := i
	for i < n && isDigit(interior[i]) {
		i++
	}
	if i > isoStart {
		a.Isotope = atoiMust(interior[isoStart:i])
	}

	// element symbol: at most two characters (Upper+lower, or the
	// bracket-only aromatic two-letter forms se/as).
	symStart := i
	switch {
	case i < n && interior[i] == '*':
		i++
	case i < n && i+1 < n && unicode.IsLower(rune(interior[i])) && unicode.IsLower(rune(interior[i+1])):
		i += 2
	case i < n && (unicode.IsUpper(rune(interior[i])) || unicode.IsLower(rune(interior[i]))):
		i++
		if i < n && unicode.IsLower(rune(interior[i])) {
			i++
		}
	}
	sym := interior[symStart:i]
	if sym == "" {
		return Atom{}, fmt.Errorf("malformed bracket atom: %q", interior)
	}
	num, aromatic, ok := element.FromBracketSymbol(sym)
	if !ok {
		return Atom{}, fmt.Errorf("unknown element: %s", sym)
	}
	// Anything other than the recognized terminator set right after the
	// symbol means the "element" we matched was actually a prefix of a
	// bogus longer token (e.g. `[CX]`) — widen the run for the error.
	if i < n && unicode.IsLetter(rune(interior[i])) && interior[i] != 'H' {
		j := i
		for j < n && unicode.IsLetter(rune(interior[j])) {
			j++
		}
		return Atom{}, fmt.Errorf("unknown element: %s", interior[symStart:j])
	}
	a.Symbol, a.AtomicNumber, a.Aromatic = sym, num, aromatic

	// chirality
	if i < n && interior[i] == '@' {
		tag, next, err := parseChiralTag(interior, i)
		if err != nil {
			return Atom{}, err
		}
		a.Chiral = tag
		i = next
	}

	// explicit H count
	if i < n && interior[i] == 'H' {
		i++
		cntStart := i
		for i < n && isDigit(interior[i]) {
			i++
		}
		if i > cntStart {
			a.Hydrogens = atoiMust(interior[cntStart:i])
		} else {
			a.Hydrogens = 1
		}
	}

	// charge
	if i < n && (interior[i] == '+' || interior[i] == '-') {
		sign := 1
		signCh := interior[i]
		if signCh == '-' {
			sign = -1
		}
		i++
		if i < n && isDigit(interior[i]) {
			numStart := i
			for i < n && isDigit(interior[i]) {
				i++
			}
			a.Charge = sign * atoiMust(interior[numStart:i])
		} else {
			count := 1
			for i < n && interior[i] == signCh {
				count++
				i++
			}
			a.Charge = sign * count
		}
	}

	// atom class
	if i < n && interior[i] == ':' {
		i++
		classStart := i
		for i < n && isDigit(interior[i]) {
			i++
		}
		if i == classStart {
			return Atom{}, fmt.Errorf("malformed bracket atom: %q", interior)
		}
		a.AtomClass = atoiMust(interior[classStart:i])
	}

	if i != n {
		return Atom{}, fmt.Errorf("malformed bracket atom: %q", interior)
	}
	return a, nil
}

// parseChiralTag reads a `@`-prefixed chirality marker starting at s[i].
// Extended tags (`@TH1`, `@AL2`, ...) are stored with their leading `@`
// kept, same as ChiralAnti/ChiralCW, so string(tag) is always a value
// writeBracketAtom can re-emit and this package can re-parse unchanged.
func parseChiralTag(s string, i int) (ChiralTag, int, error) {
	if s[i] != '@' {
		return ChiralNone, i, nil
	}
	i++
	if i < len(s) && s[i] == '@' {
		return ChiralCW, i + 1, nil
	}
	if i+1 < len(s) {
		two := s[i : i+2]
		switch two {
		case "TH", "AL", "SP", "TB", "OH":
			j := i + 2
			digitStart := j
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j == digitStart {
				return "", i, fmt.Errorf("invalid chirality tag: @%s", two)
			}
			return ChiralTag("@" + two + s[digitStart:j]), j, nil
		}
	}
	return ChiralAnti, i, nil
}

func atoiMust(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
