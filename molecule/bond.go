// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : bond.go
package molecule

// BondType is the bond order enumeration.
type BondType int

const (
	BondSingle    BondType = 1
	BondDouble    BondType = 2
	BondTriple    BondType = 3
	BondQuadruple BondType = 4
	BondAromatic  BondType = 5
)

// BondStereo marks directional single bonds (`/`, `\`) adjacent to a
// stereogenic double bond.
type BondStereo int

const (
	StereoNone BondStereo = iota
	StereoUp              // '/'
	StereoDown            // '\'
	StereoEither
)

// Bond is the bond record. Atom1/Atom2 are stored in parse order (source
// atom first); the pair is otherwise unordered for adjacency purposes.
type Bond struct {
	Atom1, Atom2 int
	Type         BondType
	Stereo       BondStereo
}

// OrderX2 returns twice the bond order contribution used by the valence and
// aromaticity computations: 2/4/6/8 for single..quadruple, and 3 (1.5) for
// aromatic bonds.
func (b Bond) OrderX2() int {
	if b.Type == BondAromatic {
		return 3
	}
	return int(b.Type) * 2
}

// Other returns the bond endpoint that is not atomID.
func (b Bond) Other(atomID int) int {
	if b.Atom1 == atomID {
		return b.Atom2
	}
	return b.Atom1
}
