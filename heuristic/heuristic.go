// Package heuristic ranks OPEN variables and predicts their polarity,
// per SPEC_FULL.md [MODULE] heuristic / spec.md §4.3. Four concrete
// strategies share one tight interface instead of an inheritance
// hierarchy, as recommended by spec.md §9 "Heuristic polymorphism".
package heuristic

import (
	"errors"

	"github.com/crillab/modelzip/cnf"
)

// ErrEmpty is returned by NextVar once every variable has been
// extracted: the caller (compress.Compress/Decompress) turns this into
// an UnsatisfiableInput error, per §7.
var ErrEmpty = errors.New("heuristic: no more open variables")

// Heuristic ranks OPEN variables and predicts polarity. Implementations
// are ParsingOrder, JeroslowWang, MomsFreeman and Hybrid.
type Heuristic interface {
	// NextVar extracts and returns the highest-priority variable still
	// in the heap, or ErrEmpty if none remain.
	NextVar() (cnf.Var, error)
	// Predicted reports the predicted polarity of v: true means TRUE.
	Predicted(v cnf.Var) bool
	// OnClauseSatisfied is called once per clause, right before the
	// propagation engine clears it, so implementations can still read
	// its literals and size.
	OnClauseSatisfied(c *cnf.Clause)
}

func clauseSize(c *cnf.Clause) int { return len(c.Literals()) }
