package query

import (
	"errors"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// SplitClauses splits expr on commas that are not inside quotes or escaped.
// Clause text is returned verbatim, quotes included, so nested expressions
// survive for SplitTokens. Blank clauses are dropped.
func SplitClauses(expr string) ([]string, error) {
	var (
		clauses []string
		start   int
		quote   rune
		escaped bool
	)
	emit := func(end int) {
		if c := strings.TrimSpace(expr[start:end]); c != "" {
			clauses = append(clauses, c)
		}
	}
	for i, r := range expr {
		switch {
		case escaped:
			escaped = false
		case quote == '\'':
			// single quotes take everything literally
			if r == '\'' {
				quote = 0
			}
		case r == '\\':
			escaped = true
		case quote == '"':
			if r == '"' {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			emit(i)
			start = i + 1
		}
	}
	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	emit(len(expr))
	return clauses, nil
}

// SplitTokens splits one clause into whitespace-separated words using POSIX
// shell quoting rules.
func SplitTokens(clause string) ([]string, error) {
	tokens, err := shlex.Split(clause, true)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
