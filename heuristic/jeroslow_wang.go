package heuristic

import (
	"math"

	"github.com/crillab/modelzip/cnf"
)

// JeroslowWang implements the static/dynamic Jeroslow-Wang heuristic of
// spec.md §4.3.2, grounded on Heuristics.h's JeroslowWang class.
type JeroslowWang struct {
	dynamic   bool
	jPos      []float64
	jNeg      []float64
	predicted []bool
	q         *pqueue
}

// NewJeroslowWang builds J+/J- for every variable over f's alive
// clauses. When dynamic is false, OnClauseSatisfied is a no-op.
func NewJeroslowWang(f *cnf.Formula, dynamic bool) *JeroslowWang {
	n := f.NbVars()
	h := &JeroslowWang{
		dynamic:   dynamic,
		jPos:      make([]float64, n),
		jNeg:      make([]float64, n),
		predicted: make([]bool, n),
		q:         newPQueue(n),
	}
	for i := 1; i <= n; i++ {
		v := cnf.Var(i)
		var jp, jn float64
		for _, ci := range f.PosOcc(v) {
			if c := f.Clause(ci); c.Alive() {
				jp += math.Exp2(-float64(clauseSize(c)))
			}
		}
		for _, ci := range f.NegOcc(v) {
			if c := f.Clause(ci); c.Alive() {
				jn += math.Exp2(-float64(clauseSize(c)))
			}
		}
		h.jPos[i-1], h.jNeg[i-1] = jp, jn
		h.predicted[i-1] = jp >= jn
		h.q.insert(v, jp+jn)
	}
	return h
}

func (h *JeroslowWang) NextVar() (cnf.Var, error) {
	v, ok := h.q.extractMax()
	if !ok {
		return 0, ErrEmpty
	}
	return v, nil
}

func (h *JeroslowWang) Predicted(v cnf.Var) bool { return h.predicted[v-1] }

// OnClauseSatisfied decrements J+/J- for every literal of c whose
// variable is still in the heap, using c's size at notification time,
// then recomputes its prediction and re-keys it (spec.md §4.3.2).
func (h *JeroslowWang) OnClauseSatisfied(c *cnf.Clause) {
	if !h.dynamic {
		return
	}
	w := math.Exp2(-float64(clauseSize(c)))
	for _, l := range c.Literals() {
		v := l.ID()
		if !h.q.contains(v) {
			continue
		}
		if l.Negative() {
			h.jNeg[v-1] -= w
		} else {
			h.jPos[v-1] -= w
		}
		h.predicted[v-1] = h.jPos[v-1] >= h.jNeg[v-1]
		h.q.rekey(v, h.jPos[v-1]+h.jNeg[v-1])
	}
}
