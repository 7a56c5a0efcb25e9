package compress

import (
	"testing"

	"github.com/crillab/modelzip/cnf"
	"github.com/crillab/modelzip/codec"
	"github.com/crillab/modelzip/heuristic"
)

func mkLits(xs ...int) []cnf.Lit {
	out := make([]cnf.Lit, len(xs))
	for i, x := range xs {
		if x < 0 {
			out[i] = cnf.NewLit(cnf.Var(-x), true)
		} else {
			out[i] = cnf.NewLit(cnf.Var(x), false)
		}
	}
	return out
}

func mkModel(xs ...int) cnf.Model {
	m := make(cnf.Model, len(xs))
	for _, x := range xs {
		if x < 0 {
			m[cnf.Var(-x)] = false
		} else {
			m[cnf.Var(x)] = true
		}
	}
	return m
}

// satisfies reports whether st satisfies every clause of f, treating
// OPEN variables as free (§8 property 1/6).
func satisfies(f *cnf.Formula, st *cnf.State, clauses [][]cnf.Lit) bool {
	for _, lits := range clauses {
		ok := false
		for _, l := range lits {
			a := st.Get(l.ID())
			if a == cnf.Open {
				ok = true
				break
			}
			if (a == cnf.True) != l.Negative() {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// roundTrip builds a fresh formula/heuristic pair for compression and
// another fresh pair for decompression (mirroring the fact that the
// two sides never share in-memory state), compresses m through
// backend, decodes it back, and decompresses.
func roundTrip(t *testing.T, nbVars int, clauses [][]cnf.Lit, m cnf.Model, hname string, flipThreshold int, backend codec.Backend) *cnf.State {
	t.Helper()

	fc := cnf.NewFormula(nbVars, clauses)
	maxID := 0
	for v := range m {
		if int(v) > maxID {
			maxID = int(v)
		}
	}
	if maxID > fc.NbVars() {
		fc.Grow(maxID)
	}
	hc, err := heuristic.New(hname, fc, 10.0, 0.5)
	if err != nil {
		t.Fatalf("heuristic.New: %v", err)
	}
	bits, _, err := Compress(fc, m, hc, flipThreshold)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	distances := codec.DiffEncode(bits)
	encoded, err := backend.Encode(distances)
	if err != nil {
		t.Fatalf("backend.Encode: %v", err)
	}
	decodedDistances, err := backend.Decode(encoded)
	if err != nil {
		t.Fatalf("backend.Decode: %v", err)
	}

	fd := cnf.NewFormula(nbVars, clauses)
	if maxID > fd.NbVars() {
		fd.Grow(maxID)
	}
	hd, err := heuristic.New(hname, fd, 10.0, 0.5)
	if err != nil {
		t.Fatalf("heuristic.New (decompress side): %v", err)
	}
	st, err := Decompress(fd, decodedDistances, hd, flipThreshold)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	for v, want := range m {
		got := st.Get(v)
		if got == cnf.Open {
			// Left unassigned once every clause was dead: a "don't care"
			// variable, free to take the model's value (§8 property 1).
			continue
		}
		gotBool := got == cnf.True
		if gotBool != want {
			t.Fatalf("variable %d = %v, want %v", v, gotBool, want)
		}
	}
	if !satisfies(fd, st, clauses) {
		t.Fatalf("decompressed assignment does not satisfy the formula")
	}
	return st
}

func TestRoundTripScenario1SingleUnitClause(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1)}
	m := mkModel(1)
	roundTrip(t, 1, clauses, m, heuristic.None, 5, codec.GolombRice{K: 2})
}

func TestRoundTripScenario2TwoLiteralClauseLeavesOneOpen(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, 2)}
	m := mkModel(1, 2)
	st := roundTrip(t, 2, clauses, m, heuristic.JewaDyn, 5, codec.GolombRice{K: 2})
	// The heuristic's first pick is decided and satisfies the only
	// clause, so the loop stops there: the other variable is never
	// assigned and stays OPEN (written as D), per §8 scenario 2.
	openCount := 0
	for v := cnf.Var(1); v <= 2; v++ {
		if st.Get(v) == cnf.Open {
			openCount++
		}
	}
	if openCount != 1 {
		t.Fatalf("expected exactly one OPEN variable, got %d", openCount)
	}
}

func TestRoundTripScenario3TwoClauses(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, 2), mkLits(-1, 3)}
	m := mkModel(1, 3, -2)
	roundTrip(t, 3, clauses, m, heuristic.JewaDyn, 5, codec.GolombRice{K: 2})
}

func TestRoundTripScenario4TautologyFreeEquivalence(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, -2), mkLits(-1, 2)}
	m := mkModel(1, 2, -3, -4)
	roundTrip(t, 4, clauses, m, heuristic.MomsDyn, 3, codec.Zip{})
}

func TestRoundTripScenario5MostlyNegativeModel(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, 2, 3, 4, 5)}
	m := mkModel(-1, -2, -3, -4, 5)
	roundTrip(t, 5, clauses, m, heuristic.JewaDyn, 2, codec.LZ4{})
}

func TestRoundTripEmptyFormula(t *testing.T) {
	st := roundTrip(t, 0, nil, cnf.Model{}, heuristic.None, 5, codec.GolombRice{K: 2})
	if st == nil {
		t.Fatal("expected a non-nil state")
	}
}

func TestRoundTripModelLargerThanDeclaredN(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, 2)}
	m := mkModel(1, 2, 5)
	roundTrip(t, 2, clauses, m, heuristic.JewaDyn, 5, codec.GolombRice{K: 2})
}

func TestRoundTripFlipThresholdOne(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, 2), mkLits(-1, 3), mkLits(-2, -3, 4)}
	m := mkModel(1, 3, -2, 4)
	roundTrip(t, 4, clauses, m, heuristic.JewaDyn, 1, codec.GolombRice{K: 0})
}

func TestRoundTripAllHeuristicsAllCodecs(t *testing.T) {
	clauses := [][]cnf.Lit{
		mkLits(1, 2, 3),
		mkLits(-1, 2),
		mkLits(-2, 3, -4),
		mkLits(4, 5),
	}
	m := mkModel(1, 2, 3, 4, 5)
	heuristics := []string{
		heuristic.None, heuristic.Jewa, heuristic.JewaDyn,
		heuristic.Moms, heuristic.MomsDyn, heuristic.Hybr, heuristic.HybrDyn,
	}
	backends := []codec.Backend{
		codec.GolombRice{K: 0},
		codec.GolombRice{K: 2},
		codec.Zip{},
		codec.LZ4{},
	}
	for _, hn := range heuristics {
		for _, b := range backends {
			roundTrip(t, 5, clauses, m, hn, 5, b)
		}
	}
}

func TestCompressDeterministic(t *testing.T) {
	clauses := [][]cnf.Lit{mkLits(1, 2, 3), mkLits(-1, 3), mkLits(2, -3)}
	m := mkModel(1, 2, 3)

	run := func() []bool {
		f := cnf.NewFormula(3, clauses)
		h, err := heuristic.New(heuristic.JewaDyn, f, 10.0, 0.5)
		if err != nil {
			t.Fatalf("heuristic.New: %v", err)
		}
		bits, _, err := Compress(f, m, h, 5)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		return bits
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("bit stream lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("bit %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestCompressUnsatisfiableInputWhenModelOmitsVariables(t *testing.T) {
	// Variable 2 is never assigned in the model and propagation cannot
	// resolve it (it has no forcing unit clause), so the heuristic
	// empties with clause (2) still alive.
	clauses := [][]cnf.Lit{mkLits(1), mkLits(2)}
	m := mkModel(1)
	f := cnf.NewFormula(2, clauses)
	h, err := heuristic.New(heuristic.None, f, 10.0, 0.5)
	if err != nil {
		t.Fatalf("heuristic.New: %v", err)
	}
	_, _, err = Compress(f, m, h, 5)
	if _, ok := err.(UnsatisfiableInput); !ok {
		t.Fatalf("Compress error = %v (%T), want UnsatisfiableInput", err, err)
	}
}

func TestCompressRejectsZeroFlipThreshold(t *testing.T) {
	f := cnf.NewFormula(1, [][]cnf.Lit{mkLits(1)})
	h, _ := heuristic.New(heuristic.None, f, 10.0, 0.5)
	if _, _, err := Compress(f, mkModel(1), h, 0); err == nil {
		t.Fatal("Compress with flipThreshold=0 should error")
	}
}
