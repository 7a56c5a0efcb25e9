package heuristic

import "github.com/crillab/modelzip/cnf"

// ParsingOrder ranks variables by ascending id and never updates: the
// simplest of the four strategies, grounded on Heuristics.h's
// ParsingOrder (score = -id, predicted = nrPosOcc >= nrNegOcc). Static
// by construction (spec.md §4.3.1).
type ParsingOrder struct {
	predicted []bool
	q         *pqueue
}

// NewParsingOrder builds a ParsingOrder heuristic over f's current
// variable universe and occurrence counts.
func NewParsingOrder(f *cnf.Formula) *ParsingOrder {
	n := f.NbVars()
	h := &ParsingOrder{
		predicted: make([]bool, n),
		q:         newPQueue(n),
	}
	for i := 1; i <= n; i++ {
		v := cnf.Var(i)
		h.q.insert(v, -float64(v))
		h.predicted[i-1] = f.NrPosOcc(v) >= f.NrNegOcc(v)
	}
	return h
}

func (h *ParsingOrder) NextVar() (cnf.Var, error) {
	v, ok := h.q.extractMax()
	if !ok {
		return 0, ErrEmpty
	}
	return v, nil
}

func (h *ParsingOrder) Predicted(v cnf.Var) bool { return h.predicted[v-1] }

// OnClauseSatisfied is a no-op: ParsingOrder never updates (§4.3.1).
func (h *ParsingOrder) OnClauseSatisfied(c *cnf.Clause) {}
