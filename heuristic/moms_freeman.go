package heuristic

import (
	"math"

	"github.com/crillab/modelzip/cnf"
)

// MomsFreeman implements the static/dynamic MOMS-Freeman heuristic of
// spec.md §4.3.3, grounded on Heuristics.h's MomsFreeman class. k is
// the exponent: the internal weight is 2^k (the `-mp` CLI parameter).
type MomsFreeman struct {
	dynamic      bool
	weight       float64
	f            *cnf.Formula
	minLen       int
	nrMinClauses int
	posCounts    []int
	negCounts    []int
	predicted    []bool
	q            *pqueue
}

// NewMomsFreeman builds per-variable minimum-length occurrence counts
// for f and seeds the heap from them.
func NewMomsFreeman(f *cnf.Formula, dynamic bool, k float64) *MomsFreeman {
	n := f.NbVars()
	h := &MomsFreeman{
		dynamic:   dynamic,
		weight:    math.Exp2(k),
		f:         f,
		posCounts: make([]int, n),
		negCounts: make([]int, n),
		predicted: make([]bool, n),
		q:         newPQueue(n),
	}
	h.findMinLength(nil)
	for i := 1; i <= n; i++ {
		v := cnf.Var(i)
		score := h.recompute(v)
		h.q.insert(v, score)
	}
	return h
}

// findMinLength recomputes minLen/nrMinClauses over f's currently alive
// clauses other than skip (the clause being satisfied, which is still
// alive while OnClauseSatisfied runs; nil skips nothing).
func (h *MomsFreeman) findMinLength(skip *cnf.Clause) {
	min := -1
	count := 0
	for i := 0; i < h.f.NbClauses(); i++ {
		c := h.f.Clause(i)
		if !c.Alive() || c == skip {
			continue
		}
		sz := len(c.Literals())
		switch {
		case min == -1 || sz < min:
			min, count = sz, 1
		case sz == min:
			count++
		}
	}
	h.minLen, h.nrMinClauses = min, count
}

func (h *MomsFreeman) countMinLen(occ []int) int {
	n := 0
	for _, ci := range occ {
		c := h.f.Clause(ci)
		if c.Alive() && len(c.Literals()) == h.minLen {
			n++
		}
	}
	return n
}

// recompute refreshes posCounts/negCounts/predicted for v from f's
// current occurrence lists and returns v's new score, without re-keying.
func (h *MomsFreeman) recompute(v cnf.Var) float64 {
	p := h.countMinLen(h.f.PosOcc(v))
	n := h.countMinLen(h.f.NegOcc(v))
	h.posCounts[v-1], h.negCounts[v-1] = p, n
	h.predicted[v-1] = p >= n
	return float64(p+n)*h.weight + float64(p*n)
}

func (h *MomsFreeman) NextVar() (cnf.Var, error) {
	v, ok := h.q.extractMax()
	if !ok {
		return 0, ErrEmpty
	}
	return v, nil
}

func (h *MomsFreeman) Predicted(v cnf.Var) bool { return h.predicted[v-1] }

// OnClauseSatisfied follows spec.md §4.3.3 exactly: a satisfied clause
// of the current minimum length decrements the min-length counter and
// triggers a full re-key of every clause variable still in the heap;
// once the counter reaches zero, Lmin and every active score are
// recomputed from scratch.
func (h *MomsFreeman) OnClauseSatisfied(c *cnf.Clause) {
	if !h.dynamic {
		return
	}
	if clauseSize(c) != h.minLen {
		return
	}
	h.nrMinClauses--
	for _, l := range c.Literals() {
		v := l.ID()
		if !h.q.contains(v) {
			continue
		}
		h.q.rekey(v, h.recompute(v))
	}
	if h.nrMinClauses == 0 {
		h.findMinLength(c)
		active := make([]cnf.Var, len(h.q.heap))
		copy(active, h.q.heap)
		for _, v := range active {
			h.q.rekey(v, h.recompute(v))
		}
	}
}
