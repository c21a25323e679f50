// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : canonical_rank.go
package molecule

import (
	"sort"

	"go.uber.org/zap"
)

// invariant is the initial per-atom tuple the ranking sorts on before any
// refinement: (atomic number, degree, charge, aromatic, hydrogens,
// isotope, ring membership count, has a chiral tag). Lower tuples sort
// first; ties are broken by refinement, then — per the decision recorded
// in the design notes — by the smallest original tuple and finally by the
// smallest atom id.
type invariant struct {
	atomicNumber int
	degree       int
	charge       int
	aromatic     int
	hydrogens    int
	isotope      int
	ringCount    int
	chiral       int
}

func (a invariant) less(b invariant) bool {
	switch {
	case a.atomicNumber != b.atomicNumber:
		return a.atomicNumber < b.atomicNumber
	case a.degree != b.degree:
		return a.degree < b.degree
	case a.charge != b.charge:
		return a.charge < b.charge
	case a.aromatic != b.aromatic:
		return a.aromatic < b.aromatic
	case a.hydrogens != b.hydrogens:
		return a.hydrogens < b.hydrogens
	case a.isotope != b.isotope:
		return a.isotope < b.isotope
	case a.ringCount != b.ringCount:
		return a.ringCount < b.ringCount
	default:
		return a.chiral < b.chiral
	}
}

func initialInvariant(m *Molecule, ringCount []int, a Atom) invariant {
	chiral := 0
	if a.Chiral != ChiralNone {
		chiral = 1
	}
	aromatic := 0
	if a.Aromatic {
		aromatic = 1
	}
	return invariant{
		atomicNumber: a.AtomicNumber,
		degree:       m.Degree(a.ID),
		charge:       a.Charge,
		aromatic:     aromatic,
		hydrogens:    a.Hydrogens,
		isotope:      a.Isotope,
		ringCount:    ringCount[a.ID],
		chiral:       chiral,
	}
}

// neighborKey is the refinement signature for one atom at a given
// iteration: its current group, paired with the sorted (neighbor group,
// bond order) list of everything it touches. Two atoms with identical keys
// stay tied; anything else causes a split during iterative refinement.
type neighborKey struct {
	group int
	pairs [][2]int
}

func (k neighborKey) less(other neighborKey) bool {
	if k.group != other.group {
		return k.group < other.group
	}
	n := len(k.pairs)
	if len(other.pairs) < n {
		n = len(other.pairs)
	}
	for i := 0; i < n; i++ {
		if k.pairs[i][0] != other.pairs[i][0] {
			return k.pairs[i][0] < other.pairs[i][0]
		}
		if k.pairs[i][1] != other.pairs[i][1] {
			return k.pairs[i][1] < other.pairs[i][1]
		}
	}
	return len(k.pairs) < len(other.pairs)
}

// CanonicalRanks computes the canonical atom ranking: a permutation of
// 0..len(Atoms)-1 assigning every atom a unique rank, stable
// under graph automorphism and invariant to input atom order. The
// algorithm is iterative-refinement (a Morgan-style procedure): atoms start
// grouped by their initial invariant tuple, then each round every atom's
// group is refined by the sorted multiset of (neighbor group, bond order)
// pairs until no further refinement occurs; the lowest group that's still
// tied at that point is forced apart one atom at a time, smallest invariant
// tuple (then smallest atom id) first, re-refining after each forced split,
// until every atom has a unique rank.
func CanonicalRanks(m *Molecule, log *zap.Logger) []int {
	log = logOrNop(log)
	n := len(m.Atoms)
	ranks := make([]int, n)
	if n == 0 {
		return ranks
	}

	ringCount := RingMembership(m)
	invariants := make([]invariant, n)
	for i, a := range m.Atoms {
		invariants[i] = initialInvariant(m, ringCount, a)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return invariants[order[i]].less(invariants[order[j]]) })

	group := groupByEquality(order, func(i, j int) bool {
		return !invariants[i].less(invariants[j]) && !invariants[j].less(invariants[i])
	})

	iteration := 0
	for {
		refined := refineGroups(m, group)
		if equalGrouping(refined, group) {
			group = refined
			break
		}
		group = refined
		iteration++
		log.Debug("canonical refinement round", zap.Int("iteration", iteration))
	}

	for {
		groups := bucketsByGroup(group)
		keys := make([]int, 0, len(groups))
		for g := range groups {
			keys = append(keys, g)
		}
		sort.Ints(keys)
		allUnique := true
		for _, g := range keys {
			members := groups[g]
			if len(members) > 1 {
				allUnique = false
				forceSplit(members, invariants, group)
				break
			}
		}
		if allUnique {
			break
		}
		group = refineToFixedPoint(m, group)
	}

	// group values are now a unique id per atom, but not yet a dense
	// 0..n-1 rank ordered by the group's sort position; assign final ranks
	// by group value order.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return group[idx[i]] < group[idx[j]] })
	for rank, atomID := range idx {
		ranks[atomID] = rank
	}
	return ranks
}

// groupByEquality assigns each atom (processed in `order`) a group number
// such that consecutive equal elements (per eq) share a group.
func groupByEquality(order []int, eq func(i, j int) bool) []int {
	n := len(order)
	group := make([]int, n)
	g := 0
	for i, atomID := range order {
		if i > 0 && !eq(order[i-1], atomID) {
			g++
		}
		group[atomID] = g
	}
	return group
}

func refineGroups(m *Molecule, group []int) []int {
	n := len(group)
	keys := make([]neighborKey, n)
	for atomID := 0; atomID < n; atomID++ {
		var pairs [][2]int
		for _, e := range m.NeighborBonds(atomID) {
			b := m.Bonds[e]
			other := b.Other(atomID)
			pairs = append(pairs, [2]int{group[other], b.OrderX2()})
		}
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i][0] != pairs[j][0] {
				return pairs[i][0] < pairs[j][0]
			}
			return pairs[i][1] < pairs[j][1]
		})
		keys[atomID] = neighborKey{group: group[atomID], pairs: pairs}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return keys[order[i]].less(keys[order[j]]) })
	return groupByEquality(order, func(i, j int) bool {
		return !keys[i].less(keys[j]) && !keys[j].less(keys[i])
	})
}

func refineToFixedPoint(m *Molecule, group []int) []int {
	for {
		refined := refineGroups(m, group)
		if equalGrouping(refined, group) {
			return refined
		}
		group = refined
	}
}

func equalGrouping(a, b []int) bool {
	// Two groupings are equivalent when they induce the same partition,
	// not when the raw ids match — compare via each atom's bucket
	// membership signature.
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]int)
	for i := range a {
		if v, ok := seen[a[i]]; ok {
			if v != b[i] {
				return false
			}
		} else {
			seen[a[i]] = b[i]
		}
	}
	seenBack := make(map[int]int)
	for i := range b {
		if v, ok := seenBack[b[i]]; ok {
			if v != a[i] {
				return false
			}
		} else {
			seenBack[b[i]] = a[i]
		}
	}
	return true
}

func bucketsByGroup(group []int) map[int][]int {
	out := make(map[int][]int)
	for atomID, g := range group {
		out[g] = append(out[g], atomID)
	}
	return out
}

// forceSplit breaks one tie: among the tied atom ids, the one with the
// smallest original invariant tuple (then smallest id) is pulled into its
// own new group ranked immediately below the others in the tie. This is
// applied as a forcing step rather than a final comparator so refinement
// can propagate the consequence before the next tie is broken.
func forceSplit(members []int, invariants []invariant, group []int) {
	best := members[0]
	for _, id := range members[1:] {
		if invariants[id].less(invariants[best]) || (!invariants[best].less(invariants[id]) && id < best) {
			best = id
		}
	}
	newGroup := group[best]*2 + 1
	for atomID := range group {
		if group[atomID] > group[best] || (group[atomID] == group[best] && atomID != best) {
			group[atomID] = group[atomID]*2 + 2
		}
	}
	group[best] = newGroup
}
