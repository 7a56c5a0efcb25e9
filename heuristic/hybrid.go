package heuristic

import (
	"math"

	"github.com/crillab/modelzip/cnf"
)

// Hybrid resolves spec.md's "hybr"/"hybr_dyn" open extension point
// (§9 Open Questions) as a convex combination of the Jeroslow-Wang mass
// and the MOMS-Freeman minimum-length counts: score = p*JW + (1-p)*MOMS,
// predicted polarity from whichever side carries the larger p-weighted
// positive mass. See SPEC_FULL.md [MODULE] heuristic and DESIGN.md.
type Hybrid struct {
	dynamic      bool
	p            float64
	weight       float64 // MOMS weight, 2^k
	f            *cnf.Formula
	jPos, jNeg   []float64
	minLen       int
	nrMinClauses int
	posCounts    []int
	negCounts    []int
	predicted    []bool
	q            *pqueue
}

// NewHybrid builds a hybrid heuristic with blend factor p (0 favors
// MOMS-Freeman entirely, 1 favors Jeroslow-Wang entirely) and MOMS
// exponent k.
func NewHybrid(f *cnf.Formula, dynamic bool, p float64, k float64) *Hybrid {
	n := f.NbVars()
	h := &Hybrid{
		dynamic:   dynamic,
		p:         p,
		weight:    math.Exp2(k),
		f:         f,
		jPos:      make([]float64, n),
		jNeg:      make([]float64, n),
		posCounts: make([]int, n),
		negCounts: make([]int, n),
		predicted: make([]bool, n),
		q:         newPQueue(n),
	}
	h.findMinLength(nil)
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
		score := h.recompute(v)
		h.q.insert(v, score)
	}
	return h
}

func (h *Hybrid) findMinLength(skip *cnf.Clause) {
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

func (h *Hybrid) countMinLen(occ []int) int {
	n := 0
	for _, ci := range occ {
		c := h.f.Clause(ci)
		if c.Alive() && len(c.Literals()) == h.minLen {
			n++
		}
	}
	return n
}

// recompute refreshes v's MOMS counts from f's current occurrence
// lists, blends them with v's (already-current) Jeroslow-Wang mass,
// updates the prediction and returns the blended score.
func (h *Hybrid) recompute(v cnf.Var) float64 {
	p := h.countMinLen(h.f.PosOcc(v))
	n := h.countMinLen(h.f.NegOcc(v))
	h.posCounts[v-1], h.negCounts[v-1] = p, n
	momsScore := float64(p+n)*h.weight + float64(p*n)

	posMass := h.p*h.jPos[v-1] + (1-h.p)*float64(p)
	negMass := h.p*h.jNeg[v-1] + (1-h.p)*float64(n)
	h.predicted[v-1] = posMass >= negMass

	jwScore := h.jPos[v-1] + h.jNeg[v-1]
	return h.p*jwScore + (1-h.p)*momsScore
}

func (h *Hybrid) NextVar() (cnf.Var, error) {
	v, ok := h.q.extractMax()
	if !ok {
		return 0, ErrEmpty
	}
	return v, nil
}

func (h *Hybrid) Predicted(v cnf.Var) bool { return h.predicted[v-1] }

// OnClauseSatisfied mirrors MomsFreeman's min-length bookkeeping for
// the MOMS half of the blend and JeroslowWang's mass decay for the JW
// half, then recomputes and re-keys every affected variable still in
// the heap.
func (h *Hybrid) OnClauseSatisfied(c *cnf.Clause) {
	if !h.dynamic {
		return
	}
	w := math.Exp2(-float64(clauseSize(c)))
	atMinLen := clauseSize(c) == h.minLen
	if atMinLen {
		h.nrMinClauses--
	}
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
		if atMinLen {
			h.q.rekey(v, h.recompute(v))
		} else {
			// MOMS counts are unaffected; still must refresh the blended
			// score and prediction for the JW-side change.
			p := h.posCounts[v-1]
			n := h.negCounts[v-1]
			posMass := h.p*h.jPos[v-1] + (1-h.p)*float64(p)
			negMass := h.p*h.jNeg[v-1] + (1-h.p)*float64(n)
			h.predicted[v-1] = posMass >= negMass
			jwScore := h.jPos[v-1] + h.jNeg[v-1]
			momsScore := float64(p+n)*h.weight + float64(p*n)
			h.q.rekey(v, h.p*jwScore+(1-h.p)*momsScore)
		}
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
