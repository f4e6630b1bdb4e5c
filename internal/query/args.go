package query

import "strconv"

// ints parses every argument after the keyword as an integer.
func ints(tokens []string) ([]int, error) {
	out := make([]int, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, malformed(tokens[0], "%q is not an integer", tok)
		}
		out = append(out, n)
	}
	return out, nil
}

// exactInts parses exactly n integer arguments.
func exactInts(tokens []string, n int) ([]int, error) {
	if len(tokens)-1 != n {
		return nil, malformed(tokens[0], "want %d arguments, got %d", n, len(tokens)-1)
	}
	return ints(tokens)
}

// noArgs rejects any argument after the keyword.
func noArgs(tokens []string) error {
	if len(tokens) > 1 {
		return malformed(tokens[0], "takes no arguments, got %d", len(tokens)-1)
	}
	return nil
}

// positive rejects sizes and radii below one.
func positive(keyword, what string, n int) error {
	if n <= 0 {
		return malformed(keyword, "%s must be positive, got %d", what, n)
	}
	return nil
}
