// Package compress implements the prediction coder and its inverse:
// the compression loop (spec.md §4.4) and the decompression loop
// (§4.5), sharing the same heuristic and propagation machinery so both
// sides execute byte-identical decision sequences.
//
// Bit convention: a bit is appended true for a skip (already-assigned
// or model-absent variable) or a hit against the active (flip-adjusted)
// prediction, and false for a miss. This is the opposite polarity from
// the literal wording of spec.md §4.4 step 4 ("append 0 on hit, 1 on
// miss"); it is required for codec.DiffEncode's run-of-true/separator-
// on-false convention to produce the "distance to next miss" sequence
// that §4.5's decode loop and §4.6 jointly describe, and it matches
// original_source/CompressionMain.cpp's actual bit values (hit-or-skip
// encodes as 1, miss as 0, when unflipped).
package compress

import (
	"fmt"

	"github.com/crillab/modelzip/cnf"
	"github.com/crillab/modelzip/heuristic"
	"github.com/crillab/modelzip/propagate"
)

// UnsatisfiableInput is returned when the heuristic empties before
// every clause is dead: the supplied model does not satisfy the
// formula (§7).
type UnsatisfiableInput struct{}

func (UnsatisfiableInput) Error() string {
	return "compress: heuristic exhausted before every clause was satisfied; model does not satisfy the formula"
}

// Compress runs the compression loop of spec.md §4.4 and returns the
// emitted bit stream together with the final assignment state (useful
// for callers that want the full assignment without re-decompressing).
func Compress(f *cnf.Formula, model cnf.Model, h heuristic.Heuristic, flipThreshold int) ([]bool, *cnf.State, error) {
	if flipThreshold < 1 {
		return nil, nil, fmt.Errorf("compress: flip threshold must be >= 1, got %d", flipThreshold)
	}
	st := cnf.NewState(f.NbVars())
	var bits []bool
	predDistance := 0
	flip := false

	for !f.Satisfied() {
		v, err := h.NextVar()
		if err != nil {
			return nil, nil, UnsatisfiableInput{}
		}
		for {
			_, inModel := model[v]
			if st.Get(v) == cnf.Open && inModel {
				break
			}
			bits = append(bits, true)
			v, err = h.NextVar()
			if err != nil {
				return nil, nil, UnsatisfiableInput{}
			}
		}

		if predDistance == flipThreshold {
			flip = !flip
			predDistance = 0
		}

		a := model[v]
		predicted := h.Predicted(v)
		active := predicted != flip // predicted XOR flip
		hit := a == active
		bits = append(bits, hit)
		if hit {
			predDistance = 0
		} else {
			predDistance++
		}

		val := cnf.False
		if a {
			val = cnf.True
		}
		st.Assign(v, val)
		if err := propagate.Propagate(f, st, h); err != nil {
			return nil, nil, err
		}
	}
	return bits, st, nil
}

// Decompress runs the decompression loop of spec.md §4.5 against the
// same f and a fresh h, consuming distances (the difference-encoded
// hit/miss/skip stream produced by Compress and already recovered by
// the caller via a codec.Backend) to decide, for each variable, whether
// to take the heuristic's predicted polarity or its inverse.
func Decompress(f *cnf.Formula, distances []uint64, h heuristic.Heuristic, flipThreshold int) (*cnf.State, error) {
	if flipThreshold < 1 {
		return nil, fmt.Errorf("decompress: flip threshold must be >= 1, got %d", flipThreshold)
	}
	st := cnf.NewState(f.NbVars())

	idx := 0
	haveDistance := len(distances) > 0
	var currentDistance uint64
	if haveDistance {
		currentDistance = distances[0]
		idx = 1
	}
	popDistance := func() {
		if idx < len(distances) {
			currentDistance = distances[idx]
			idx++
		} else {
			haveDistance = false
		}
	}

	flip := false
	missesSinceFlip := 0

	for !f.Satisfied() {
		v, err := h.NextVar()
		if err != nil {
			return nil, UnsatisfiableInput{}
		}
		for st.Get(v) != cnf.Open {
			if haveDistance {
				currentDistance--
			}
			v, err = h.NextVar()
			if err != nil {
				return nil, UnsatisfiableInput{}
			}
		}

		if currentDistance != 0 {
			missesSinceFlip = 0
		}

		a := h.Predicted(v) != flip // predicted XOR flip_model

		if haveDistance && currentDistance == 0 {
			a = !a
			missesSinceFlip++
			if missesSinceFlip == flipThreshold {
				flip = !flip
				missesSinceFlip = 0
			}
			popDistance()
		} else if haveDistance {
			currentDistance--
		}

		val := cnf.False
		if a {
			val = cnf.True
		}
		st.Assign(v, val)
		if err := propagate.Propagate(f, st, h); err != nil {
			return nil, err
		}
	}
	return st, nil
}
