package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVisibleOpenGridMatchesRadius(t *testing.T) {
	g := newFakeGrid(9, 9)
	for _, expr := range [][2]string{
		{"VISIBLE 4 4 2", "RADIUS 4 4 2"},
		{"VISIBLE 4 4 3", "RADIUS 4 4 3"},
		{"VISIBLE 0 0 3", "RADIUS 0 0 3"},
	} {
		want := matches(mustParse(t, g, expr[1]))
		if diff := cmp.Diff(want, matches(mustParse(t, g, expr[0]))); diff != "" {
			t.Errorf("%s on an open grid (-%s +visible):\n%s", expr[0], expr[1], diff)
		}
	}
}

func TestVisibleBlockedByWall(t *testing.T) {
	g := newFakeGrid(7, 1)
	g.blocked[Cell{3, 0}] = true
	got := matches(mustParse(t, g, "VISIBLE 0 0 6"))
	// The wall is seen; nothing behind it is.
	want := []Cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleNegation(t *testing.T) {
	g := newFakeGrid(7, 1)
	g.blocked[Cell{3, 0}] = true
	p := mustParse(t, g, "VISIBLE 0 0 6")
	n := mustParse(t, g, "!VISIBLE 0 0 6")
	for c := range AllCells(g) {
		if p.Matches(c) == n.Matches(c) {
			t.Errorf("VISIBLE and !VISIBLE agree at %v", c)
		}
	}
	if src := n.Source(); src != nil {
		t.Errorf("!VISIBLE should not be a candidate source, got %v", src)
	}
	if diff := cmp.Diff(scan(n), matches(n)); diff != "" {
		t.Errorf("source path differs from scan (-scan +source):\n%s", diff)
	}
}

func TestVisibleIsCandidateSource(t *testing.T) {
	g := newFakeGrid(20, 20)
	cond := mustParse(t, g, "PASSABLE, VISIBLE 5 5 1")
	src := cond.Source()
	if src == nil || src.CandidateRank() != 400-5 {
		t.Fatalf("Source = %v, want the five-cell VISIBLE set", src)
	}
}

func TestVisibleMalformed(t *testing.T) {
	g := newFakeGrid(3, 3)
	for _, expr := range []string{"VISIBLE", "VISIBLE 1 1", "VISIBLE 1 1 0", "VISIBLE a 1 1"} {
		if _, err := Parse(DefaultRegistry(), g, expr); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", expr, err)
		}
	}
}
