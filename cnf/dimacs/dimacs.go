// Package dimacs parses CNF formulas in DIMACS format. spec.md places
// this parser out of scope for the core ("external collaborators,
// referenced only through their contracts"), but a runnable repo still
// needs a concrete implementation of that contract — this one is
// grounded on original_source/src/parser/Parser.h's readClauses /
// readVariables (skip `c`/`p` lines, read signed ints terminated by 0),
// written as a bufio.Scanner-based reader in gophersat's own streaming
// idiom rather than Parser.h's custom StreamBuffer.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crillab/modelzip/cnf"
)

// ParseError reports a malformed DIMACS file (§7).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Msg)
}

// Parse reads a DIMACS CNF stream and builds a cnf.Formula. The
// `p cnf <n> <m>` header supplies n; lines starting with `c` or `p` are
// skipped. Each clause is a whitespace-separated sequence of signed
// integers terminated by 0. Duplicate literals and tautologies are
// tolerated as-is (§4.1).
func Parse(r io.Reader) (*cnf.Formula, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	nbVars := 0
	var clauses [][]cnf.Lit
	var cur []cnf.Lit
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		switch text[0] {
		case 'c':
			continue
		case 'p':
			fields := strings.Fields(text)
			if len(fields) < 4 || fields[1] != "cnf" {
				return nil, &ParseError{Line: line, Msg: "malformed problem line, expected \"p cnf <n> <m>\""}
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, &ParseError{Line: line, Msg: "non-integer variable count"}
			}
			nbVars = n
			continue
		}

		for _, tok := range strings.Fields(text) {
			x, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("non-integer literal %q", tok)}
			}
			if x == 0 {
				clauses = append(clauses, cur)
				cur = nil
				continue
			}
			id := x
			neg := false
			if id < 0 {
				id, neg = -id, true
			}
			cur = append(cur, cnf.NewLit(cnf.Var(id), neg))
			if id > nbVars {
				nbVars = id
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	if len(cur) > 0 {
		clauses = append(clauses, cur)
	}

	return cnf.NewFormula(nbVars, clauses), nil
}
