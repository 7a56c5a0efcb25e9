// Package cnf holds the read-only formula store and the mutable
// assignment state shared by the compressor and the decompressor.
package cnf

import "fmt"

// Var is a 1-based variable id.
type Var int

// Model is a parsed satisfying assignment: true means the variable is
// bound TRUE, false means FALSE. Ids outside the declared range grow
// the variable universe (§6 Model format).
type Model map[Var]bool

// Lit is a signed reference to a Var.
type Lit struct {
	id       Var
	negative bool
}

// NewLit builds a literal for the given variable and sign.
func NewLit(id Var, negative bool) Lit {
	return Lit{id: id, negative: negative}
}

// ID returns the variable this literal refers to.
func (l Lit) ID() Var { return l.id }

// Negative reports whether the literal negates its variable.
func (l Lit) Negative() bool { return l.negative }

// Negate returns ~l: same variable, opposite sign.
func (l Lit) Negate() Lit { return Lit{id: l.id, negative: !l.negative} }

func (l Lit) String() string {
	if l.negative {
		return fmt.Sprintf("-%d", l.id)
	}
	return fmt.Sprintf("%d", l.id)
}

// Assignment is the three-valued state of a variable.
type Assignment int8

const (
	// Open means the variable has not yet been bound.
	Open Assignment = iota
	False
	True
)

func (a Assignment) String() string {
	switch a {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		return "OPEN"
	}
}

// Clause is a disjunction of literals. A clause becomes dead (satisfied)
// by clearing lits; size == 0 is the kill flag (no separate alive flag
// is kept).
type Clause struct {
	lits      []Lit
	remaining int
}

// Literals returns the clause's literals in parsing order. Empty once dead.
func (c *Clause) Literals() []Lit { return c.lits }

// Remaining is the count of still-unresolved literals.
func (c *Clause) Remaining() int { return c.remaining }

// Alive reports whether the clause has not yet been satisfied.
func (c *Clause) Alive() bool { return len(c.lits) > 0 }

// Unit reports whether the clause currently forces its one remaining literal.
func (c *Clause) Unit() bool { return c.remaining == 1 }

func (c *Clause) clear() {
	c.lits = nil
	c.remaining = 0
}

type varInfo struct {
	posOcc   []int // indices into Formula.clauses
	negOcc   []int
	nrPosOcc int
	nrNegOcc int
}

// Formula is the clause store plus per-variable occurrence lists. Built
// once per run from parsed clauses; occurrence lists never reorder or
// shrink, but the per-variable occurrence counts and per-clause
// remaining/alive state mutate as propagation proceeds (see
// SPEC_FULL.md [MODULE] cnf).
type Formula struct {
	clauses   []Clause
	vars      []varInfo // index i holds Var(i+1)
	aliveLeft int
}

// NewFormula builds occurrence lists in a single pass over clauseLits,
// matching the Formula Store contract in SPEC_FULL.md [MODULE] cnf: duplicate
// literals and tautologous clauses are tolerated as-is.
func NewFormula(nbVars int, clauseLits [][]Lit) *Formula {
	f := &Formula{
		clauses: make([]Clause, len(clauseLits)),
		vars:    make([]varInfo, nbVars),
	}
	for ci, lits := range clauseLits {
		cp := make([]Lit, len(lits))
		copy(cp, lits)
		f.clauses[ci] = Clause{lits: cp, remaining: len(cp)}
		for _, l := range lits {
			f.growTo(int(l.ID()))
		}
	}
	for ci := range f.clauses {
		for _, l := range f.clauses[ci].lits {
			vi := &f.vars[l.id-1]
			if l.negative {
				vi.negOcc = append(vi.negOcc, ci)
				vi.nrNegOcc++
			} else {
				vi.posOcc = append(vi.posOcc, ci)
				vi.nrPosOcc++
			}
		}
	}
	f.aliveLeft = 0
	for i := range f.clauses {
		if f.clauses[i].Alive() {
			f.aliveLeft++
		}
	}
	return f
}

// NbVars returns the current size of the variable universe.
func (f *Formula) NbVars() int { return len(f.vars) }

// NbClauses returns the number of clauses in the formula.
func (f *Formula) NbClauses() int { return len(f.clauses) }

// Grow extends the variable universe so ids up to toID are valid, as
// required when a model assigns ids beyond the declared n (§6).
func (f *Formula) Grow(toID int) {
	f.growTo(toID)
}

func (f *Formula) growTo(toID int) {
	for len(f.vars) < toID {
		f.vars = append(f.vars, varInfo{})
	}
}

// Clause returns the i-th clause.
func (f *Formula) Clause(i int) *Clause { return &f.clauses[i] }

// PosOcc returns the (non-owning) indices of alive-or-dead clauses that
// originally contained +v; callers must check Clause.Alive.
func (f *Formula) PosOcc(v Var) []int { return f.vars[v-1].posOcc }

// NegOcc is the negative-literal analogue of PosOcc.
func (f *Formula) NegOcc(v Var) []int { return f.vars[v-1].negOcc }

// NrPosOcc is the live count of unsatisfied clauses containing +v.
func (f *Formula) NrPosOcc(v Var) int { return f.vars[v-1].nrPosOcc }

// NrNegOcc is the live count of unsatisfied clauses containing -v.
func (f *Formula) NrNegOcc(v Var) int { return f.vars[v-1].nrNegOcc }

// Satisfied reports whether every clause is dead.
func (f *Formula) Satisfied() bool { return f.aliveLeft == 0 }

// Satisfy clears clause ci and decrements the occurrence counters of
// every literal it contained. A no-op if the clause is already dead.
func (f *Formula) Satisfy(ci int) {
	c := &f.clauses[ci]
	if !c.Alive() {
		return
	}
	for _, l := range c.lits {
		vi := &f.vars[l.id-1]
		if l.negative {
			vi.nrNegOcc--
		} else {
			vi.nrPosOcc--
		}
	}
	c.clear()
	f.aliveLeft--
}

// Shrink decrements clause ci's remaining-literal count, returning the new count.
func (f *Formula) Shrink(ci int) int {
	c := &f.clauses[ci]
	c.remaining--
	return c.remaining
}

// Assignment state, kept separate from Formula so the decompressor can
// reconstruct it without touching Variable metadata directly (§3 Ownership).
type State struct {
	cells []Assignment
	trail []Var
	head  int
}

// NewState allocates an OPEN assignment for nbVars variables.
func NewState(nbVars int) *State {
	return &State{cells: make([]Assignment, nbVars)}
}

// Grow extends the assignment array so Var toID is addressable.
func (s *State) Grow(toID int) {
	for len(s.cells) < toID {
		s.cells = append(s.cells, Open)
	}
}

// Get returns the current binding of v.
func (s *State) Get(v Var) Assignment { return s.cells[v-1] }

// Assign binds v (must currently be Open) and appends it to the trail.
func (s *State) Assign(v Var, a Assignment) {
	s.cells[v-1] = a
	s.trail = append(s.trail, v)
}

// Trail returns the assignment order recorded so far.
func (s *State) Trail() []Var { return s.trail }

// Head returns the propagation cursor into the trail.
func (s *State) Head() int { return s.head }

// Advance consumes the next trail entry, returning it.
func (s *State) Advance() Var {
	v := s.trail[s.head]
	s.head++
	return v
}

// Pending reports whether propagate has work left to do.
func (s *State) Pending() bool { return s.head < len(s.trail) }
