package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitClauses(t *testing.T) {
	cases := []struct {
		name    string
		expr    string
		want    []string
		wantErr bool
	}{
		{"single", "ALL", []string{"ALL"}, false},
		{"two clauses", "AREA_WH 1 1 3 3, !INDEX Back 0", []string{"AREA_WH 1 1 3 3", "!INDEX Back 0"}, false},
		{"double quoted comma", `NOT "AREA_WH 0 0 2 2, PASSABLE", OBJECT`, []string{`NOT "AREA_WH 0 0 2 2, PASSABLE"`, "OBJECT"}, false},
		{"single quoted comma", `NOT 'A, B'`, []string{`NOT 'A, B'`}, false},
		{"escaped comma", `PROPERTY Back Name a\,b`, []string{`PROPERTY Back Name a\,b`}, false},
		{"single quote inside double", `SIZE 2 2 "NOT 'INDEX Back 5, OBJECT'"`, []string{`SIZE 2 2 "NOT 'INDEX Back 5, OBJECT'"`}, false},
		{"blank clauses dropped", " ALL ,, NONE, ", []string{"ALL", "NONE"}, false},
		{"empty", "", nil, false},
		{"unterminated double", `NOT "ALL`, nil, true},
		{"unterminated single", `NOT 'ALL`, nil, true},
		{"trailing backslash", `ALL\`, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitClauses(tc.expr)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("SplitClauses(%q) = %q, want error", tc.expr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitClauses(%q): %v", tc.expr, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SplitClauses(%q) mismatch (-want +got):\n%s", tc.expr, diff)
			}
		})
	}
}

func TestSplitTokens(t *testing.T) {
	cases := []struct {
		clause string
		want   []string
	}{
		{"AREA_WH 1 2 3 4", []string{"AREA_WH", "1", "2", "3", "4"}},
		{"  PASSABLE  ", []string{"PASSABLE"}},
		{`NOT "AREA_WH 0 0 2 2, PASSABLE"`, []string{"NOT", "AREA_WH 0 0 2 2, PASSABLE"}},
		{`SIZE 2 2 "NOT 'INDEX Back 5'" '!OBJECT'`, []string{"SIZE", "2", "2", "NOT 'INDEX Back 5'", "!OBJECT"}},
		{`PROPERTY Back Name "Old Tree"`, []string{"PROPERTY", "Back", "Name", "Old Tree"}},
	}
	for _, tc := range cases {
		got, err := SplitTokens(tc.clause)
		if err != nil {
			t.Fatalf("SplitTokens(%q): %v", tc.clause, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("SplitTokens(%q) mismatch (-want +got):\n%s", tc.clause, diff)
		}
	}
}

func TestSplitTokensUnterminated(t *testing.T) {
	if _, err := SplitTokens(`NOT "ALL`); err == nil {
		t.Error("expected error for unterminated quote")
	}
}
