// Package element coding=utf-8
// @Project : smilesgraph
// @File    : element.go
package element

import "fmt"

// info stores the static reference data SMILES parsing needs per element:
// the symbol, the permitted valences (in the order a validator should try
// them), and whether the element may appear in its lowercase aromatic form.
type info struct {
	symbol        string
	valences      []int
	canBeAromatic bool
}

// Atomic number constants for every element the organic subset and the
// bracket-atom aromatic alphabet can reference.
const (
	Wildcard = 0
	H        = 1
	B        = 5
	C        = 6
	N        = 7
	O        = 8
	F        = 9
	Si       = 14
	P        = 15
	S        = 16
	Cl       = 17
	As       = 33
	Se       = 34
	Br       = 35
	I        = 53
)

// table is indexed by atomic number; index 0 is the wildcard `*`.
var table = []info{
	0:  {"*", nil, false},
	1:  {"H", []int{1}, false},
	2:  {"He", []int{0}, false},
	3:  {"Li", []int{1}, false},
	4:  {"Be", []int{2}, false},
	5:  {"B", []int{3}, true},
	6:  {"C", []int{4}, true},
	7:  {"N", []int{3, 5}, true},
	8:  {"O", []int{2}, true},
	9:  {"F", []int{1}, false},
	10: {"Ne", []int{0}, false},
	11: {"Na", []int{1}, false},
	12: {"Mg", []int{2}, false},
	13: {"Al", []int{3}, false},
	14: {"Si", []int{4}, false},
	15: {"P", []int{3, 5}, true},
	16: {"S", []int{2, 4, 6}, true},
	17: {"Cl", []int{1}, false},
	18: {"Ar", []int{0}, false},
	19: {"K", []int{1}, false},
	20: {"Ca", []int{2}, false},
	35: {"Br", []int{1}, false},
	33: {"As", []int{3, 5}, true},
	34: {"Se", []int{2, 4, 6}, true},
	53: {"I", []int{1, 3, 5, 7}, false},
}

// organicSubsetUpper are the organic-subset elements writable without
// brackets. Their symbol is the bare, uppercase form.
var organicSubsetUpper = map[string]int{
	"B": B, "C": C, "N": N, "O": O, "P": P, "S": S, "F": F, "Cl": Cl, "Br": Br, "I": I,
}

// organicSubsetAromatic are the lowercase aromatic spellings recognized both
// bare and inside brackets; `se` and `as` require brackets.
var organicSubsetAromatic = map[string]int{
	"b": B, "c": C, "n": N, "o": O, "p": P, "s": S, "se": Se, "as": As,
}

// FromOrganicSubset resolves a bare (unbracketed) atom symbol, returning its
// atomic number and whether the symbol denoted aromatic (lowercase) form.
// Only organic-subset symbols are legal here.
func FromOrganicSubset(sym string) (number int, aromatic bool, ok bool) {
	if n, found := organicSubsetUpper[sym]; found {
		return n, false, true
	}
	if n, found := organicSubsetAromatic[sym]; found && sym != "se" && sym != "as" {
		return n, true, true
	}
	return 0, false, false
}

// FromBracketSymbol resolves an element symbol written inside `[...]`,
// which additionally allows the wildcard `*` and the bracket-only aromatic
// forms `se`/`as`.
func FromBracketSymbol(sym string) (number int, aromatic bool, ok bool) {
	if sym == "*" {
		return Wildcard, false, true
	}
	if n, found := organicSubsetAromatic[sym]; found {
		return n, true, true
	}
	for n, e := range table {
		if e.symbol == sym {
			return n, false, true
		}
	}
	return 0, false, false
}

// Symbol returns the canonical element symbol for an atomic number.
func Symbol(number int) string {
	if number >= 0 && number < len(table) && table[number].symbol != "" {
		return table[number].symbol
	}
	return fmt.Sprintf("E%d", number)
}

// CanBeAromatic reports whether the element may legally appear as an
// aromatic-ring member under the organic subset / bracket-atom alphabet.
func CanBeAromatic(number int) bool {
	if number >= 0 && number < len(table) {
		return table[number].canBeAromatic
	}
	return false
}

// PermittedValences returns the valid total-bond-order sums (including
// implicit H) for a neutral atom of this element. An empty result means the
// element has no stipulated organic-subset valence (so the valence validator
// skips it — this only happens for elements reachable solely through bracket
// atoms with explicit H counts).
func PermittedValences(number int) []int {
	if number >= 0 && number < len(table) {
		return table[number].valences
	}
	return nil
}

// aromaticImplicitH pins down how many implicit hydrogens an aromatic atom
// carries, keyed by (atomic number, ring degree counting only ring bonds).
// A bare (unbracketed) aromatic "n" is always pyridine-type: a two-connected
// ring N whose lone pair sits in-plane, contributing nothing to implicit H.
// Writing pyrrole's N-H requires the explicit bracket form `[nH]`, which
// never reaches this table (fillImplicitHydrogens skips bracket atoms), so
// there's no bare-`n` spelling this table needs to disambiguate.
var aromaticImplicitH = map[int]map[int]int{
	N:  {2: 0, 3: 0},
	O:  {2: 0},
	S:  {2: 0},
	Se: {2: 0},
	As: {2: 0, 3: 0},
	C:  {2: 1, 3: 0},
}

// AromaticImplicitH returns the implicit-H count for an aromatic atom given
// its ring degree (number of aromatic-ring neighbor bonds), or (0, false) if
// no stipulated convention exists and the general valence rule should apply.
func AromaticImplicitH(number, ringDegree int) (int, bool) {
	byDegree, ok := table2(number)
	if !ok {
		return 0, false
	}
	h, ok := byDegree[ringDegree]
	return h, ok
}

func table2(number int) (map[int]int, bool) {
	m, ok := aromaticImplicitH[number]
	return m, ok
}
