// Package propagate implements unit propagation over a cnf.Formula,
// driven by the trail recorded in a cnf.State and notifying a
// heuristic whenever a clause becomes satisfied.
package propagate

import (
	"fmt"

	"github.com/crillab/modelzip/cnf"
)

// Heuristic is the subset of heuristic.Heuristic that propagation needs
// to notify. Kept local to avoid a dependency from propagate on the
// concrete heuristic implementations.
type Heuristic interface {
	OnClauseSatisfied(c *cnf.Clause)
}

// InvariantViolation is returned when propagation is asked to resolve
// a variable that is still Open: a programmer error, per §7.
type InvariantViolation struct {
	Var cnf.Var
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("propagate: variable %d has no assignment to propagate", e.Var)
}

// Propagate drains st's trail starting at its current head, walking f's
// occurrence lists and forcing newly-unit clauses, until the trail is
// exhausted. See SPEC_FULL.md [MODULE] propagate / spec.md §4.2.
func Propagate(f *cnf.Formula, st *cnf.State, h Heuristic) error {
	for st.Pending() {
		v := st.Advance()
		a := st.Get(v)

		var satList, shrinkList []int
		switch a {
		case cnf.True:
			satList, shrinkList = f.PosOcc(v), f.NegOcc(v)
		case cnf.False:
			satList, shrinkList = f.NegOcc(v), f.PosOcc(v)
		default:
			return &InvariantViolation{Var: v}
		}

		for _, ci := range satList {
			c := f.Clause(ci)
			if !c.Alive() {
				continue
			}
			h.OnClauseSatisfied(c)
			f.Satisfy(ci)
		}

		for _, ci := range shrinkList {
			c := f.Clause(ci)
			if !c.Alive() {
				continue
			}
			if f.Shrink(ci) != 1 {
				continue
			}
			for _, l := range c.Literals() {
				if st.Get(l.ID()) != cnf.Open {
					continue
				}
				val := cnf.True
				if l.Negative() {
					val = cnf.False
				}
				st.Assign(l.ID(), val)
				break
			}
		}
	}
	return nil
}
