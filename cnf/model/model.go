// Package model parses the plain-text satisfying-assignment format
// used as compressor input and decompressor output (§6). Like the
// DIMACS parser, spec.md places this out of scope for the core; this
// is a concrete implementation of the named contract, grounded on
// original_source/src/parser/Parser.h's readModel.
package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crillab/modelzip/cnf"
)

// ParseError reports a malformed model file: a duplicate assignment
// for the same variable id is the one hard error named in §6/§7.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("model: %s", e.Msg) }

// Parse reads one or more `v`-prefixed signed-integer lines terminated
// by 0 and returns the resulting cnf.Model plus the largest id seen
// (the caller grows the Formula's variable universe to this bound, if larger).
func Parse(r io.Reader) (cnf.Model, int, error) {
	m := make(cnf.Model)
	maxID := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if fields[0] == "v" {
			fields = fields[1:]
		} else if strings.HasPrefix(fields[0], "v") {
			fields[0] = strings.TrimPrefix(fields[0], "v")
		}
		done := false
		for _, tok := range fields {
			x, err := strconv.Atoi(tok)
			if err != nil {
				return nil, 0, &ParseError{Msg: fmt.Sprintf("non-integer token %q", tok)}
			}
			if x == 0 {
				done = true
				break
			}
			id := x
			val := true
			if id < 0 {
				id, val = -id, false
			}
			v := cnf.Var(id)
			if _, dup := m[v]; dup {
				return nil, 0, &ParseError{Msg: fmt.Sprintf("variable %d assigned multiple times in the model", id)}
			}
			m[v] = val
			if id > maxID {
				maxID = id
			}
		}
		if done {
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("model: %w", err)
	}
	return m, maxID, nil
}

// Format renders assignment as the space-separated signed-integer line
// of §6 (`v`-prefixed, matching the end-to-end examples of §8), with
// `D` for variables that remained Open.
func Format(st *cnf.State, nbVars int) string {
	parts := make([]string, 0, nbVars+1)
	parts = append(parts, "v")
	for i := 1; i <= nbVars; i++ {
		v := cnf.Var(i)
		switch st.Get(v) {
		case cnf.True:
			parts = append(parts, strconv.Itoa(i))
		case cnf.False:
			parts = append(parts, "-"+strconv.Itoa(i))
		default:
			parts = append(parts, "D")
		}
	}
	return strings.Join(parts, " ")
}
