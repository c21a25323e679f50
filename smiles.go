// Package smilesgraph coding=utf-8
// @Project : smilesgraph
// @File    : smiles.go
//
// Package smilesgraph parses SMILES molecular notation into an in-memory
// atom/bond graph and renders RDKit-compatible canonical SMILES back out of
// it — no reaction SMILES, SMARTS, InChI, 3D coordinates, or in-place
// molecule editing; see molecule/ for the graph model, validators, ranker,
// and emitter this façade wires together.
package smilesgraph

import (
	"go.uber.org/zap"

	"github.com/cx-luo/smilesgraph/molecule"
)

// Molecule is the public alias for the parsed atom/bond graph.
type Molecule = molecule.Molecule

// ParseResult is the public alias for a parse's output: every connected
// component recovered plus any errors encountered along the way.
type ParseResult = molecule.ParseResult

// Options configures Parse and Generate. The zero value runs full
// validation and produces canonical output, matching what most callers
// want.
type Options struct {
	// Logger receives Debug-level trace for parsing, validation, ranking,
	// and emission. Nil disables trace entirely.
	Logger *zap.Logger
	// SkipValidation disables the valence/aromaticity/stereo passes in
	// Parse, returning the raw parsed graph as-is. Generate ignores it: it
	// still ranks canonically and normalizes E/Z markers, but on such a
	// graph nothing has checked valences, promoted Hückel ring bonds to
	// aromatic, or dropped under-specified chiral tags.
	SkipValidation bool
}

// Parse reads a SMILES string and returns every connected component it
// describes, each fully validated (valence, aromaticity promotion, stereo
// consistency) unless Options.SkipValidation is set. Parsing itself never
// panics on malformed input — syntax errors accumulate in
// ParseResult.Errors alongside any validation errors.
func Parse(s string, opts Options) ParseResult {
	result := molecule.Loader{Logger: opts.Logger}.Parse(s)
	if opts.SkipValidation {
		return result
	}
	for _, m := range result.Molecules {
		result.Errors = append(result.Errors, molecule.ValidateAndNormalize(m, opts.Logger)...)
	}
	return result
}

// Generate renders a single Molecule to canonical, RDKit-compatible
// SMILES text.
func Generate(m *Molecule, opts Options) (string, error) {
	return molecule.Saver{Options: molecule.SmilesSaverOptions{Canonical: true, Logger: opts.Logger}}.Generate(m)
}

// GenerateNonCanonical renders a Molecule in parse order rather than
// canonical rank order — useful for round-trip debugging where preserving
// input atom order matters more than canonical form.
func GenerateNonCanonical(m *Molecule, opts Options) (string, error) {
	return molecule.Saver{Options: molecule.SmilesSaverOptions{Canonical: false, Logger: opts.Logger}}.Generate(m)
}

// Canonicalize parses a SMILES string and re-renders the first connected
// component in canonical form, the common single-molecule round trip.
// Callers with multi-fragment input should use Parse directly and iterate
// ParseResult.Molecules.
func Canonicalize(s string, opts Options) (string, error) {
	result := Parse(s, opts)
	if !result.OK() {
		return "", &ParseError{Errors: result.Errors}
	}
	if len(result.Molecules) == 0 {
		return "", nil
	}
	return Generate(result.Molecules[0], opts)
}

// ParseError wraps one or more malformed-input or validation errors
// accumulated during Parse, for callers that want Canonicalize's
// all-or-nothing convenience instead of inspecting ParseResult directly.
type ParseError struct {
	Errors []string
}

func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return "smilesgraph: parse failed"
	}
	msg := e.Errors[0]
	for _, extra := range e.Errors[1:] {
		msg += "; " + extra
	}
	return "smilesgraph: " + msg
}
