package heuristic

import "github.com/crillab/modelzip/cnf"

// pqueue is an indexed binary max-heap over OPEN variable ids, keyed by
// a caller-supplied score with ascending id as the tie-breaker (§5
// Ordering, §9 "Priority queue"). Re-keying happens in place via the
// pos index so a variable never appears twice in the heap.
type pqueue struct {
	heap  []cnf.Var
	pos   []int // pos[v-1]: index into heap, or -1 if absent
	score []float64
}

func newPQueue(nbVars int) *pqueue {
	pos := make([]int, nbVars)
	for i := range pos {
		pos[i] = -1
	}
	return &pqueue{
		heap:  make([]cnf.Var, 0, nbVars),
		pos:   pos,
		score: make([]float64, nbVars),
	}
}

func (q *pqueue) grow(toID int) {
	for len(q.pos) < toID {
		q.pos = append(q.pos, -1)
		q.score = append(q.score, 0)
	}
}

func (q *pqueue) empty() bool { return len(q.heap) == 0 }

func (q *pqueue) contains(v cnf.Var) bool { return q.pos[v-1] != -1 }

// higher reports whether variable a has strictly higher priority than b:
// greater score, or equal score and smaller id.
func (q *pqueue) higher(a, b cnf.Var) bool {
	sa, sb := q.score[a-1], q.score[b-1]
	if sa != sb {
		return sa > sb
	}
	return a < b
}

func (q *pqueue) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.pos[q.heap[i]-1] = i
	q.pos[q.heap[j]-1] = j
}

func (q *pqueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.higher(q.heap[i], q.heap[parent]) {
			return
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *pqueue) siftDown(i int) {
	n := len(q.heap)
	for {
		l, r, best := 2*i+1, 2*i+2, i
		if l < n && q.higher(q.heap[l], q.heap[best]) {
			best = l
		}
		if r < n && q.higher(q.heap[r], q.heap[best]) {
			best = r
		}
		if best == i {
			return
		}
		q.swap(i, best)
		i = best
	}
}

// insert adds v with the given score. v must not already be in the heap.
func (q *pqueue) insert(v cnf.Var, score float64) {
	q.grow(int(v))
	q.score[v-1] = score
	q.heap = append(q.heap, v)
	q.pos[v-1] = len(q.heap) - 1
	q.siftUp(len(q.heap) - 1)
}

// rekey updates v's score in place and restores the heap property. v
// must currently be in the heap.
func (q *pqueue) rekey(v cnf.Var, score float64) {
	i := q.pos[v-1]
	if i == -1 {
		return
	}
	old := q.score[v-1]
	q.score[v-1] = score
	if score > old {
		q.siftUp(i)
	} else if score < old {
		q.siftDown(i)
	}
}

// extractMax removes and returns the highest-priority variable.
func (q *pqueue) extractMax() (cnf.Var, bool) {
	if q.empty() {
		return 0, false
	}
	top := q.heap[0]
	last := len(q.heap) - 1
	q.swap(0, last)
	q.heap = q.heap[:last]
	q.pos[top-1] = -1
	if last > 0 {
		q.siftDown(0)
	}
	return top, true
}

// clear removes every variable from the heap without altering scores.
func (q *pqueue) clear() {
	for _, v := range q.heap {
		q.pos[v-1] = -1
	}
	q.heap = q.heap[:0]
}
