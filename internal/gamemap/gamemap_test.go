package gamemap

import (
	"testing"

	"tilequery/internal/query"
)

func TestInBounds(t *testing.T) {
	m := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := m.InBounds(c.x, c.y)
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestIsPassable(t *testing.T) {
	m := New(5, 5)
	if m.IsPassable(query.Cell{X: 2, Y: 2}) {
		t.Error("wall tile should not be passable")
	}
	m.Set(2, 2, MakeFloor())
	if !m.IsPassable(query.Cell{X: 2, Y: 2}) {
		t.Error("floor tile should be passable")
	}
	if m.IsPassable(query.Cell{X: -1, Y: 0}) {
		t.Error("out-of-bounds should not be passable")
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X1: 0, Y1: 0, X2: 4, Y2: 4}
	cx, cy := r.Center()
	if cx != 2 || cy != 2 {
		t.Errorf("expected center (2,2), got (%d,%d)", cx, cy)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 4, 4}
	b := Rect{3, 3, 7, 7}
	c := Rect{5, 5, 9, 9}
	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if a.Intersects(c) {
		t.Error("a and c should not intersect")
	}
}

func TestLayers(t *testing.T) {
	m := New(3, 3)
	m.Set(1, 1, MakeFloor())
	m.Set(2, 1, MakeDoor())
	m.At(1, 1).SetIndex(LayerFront, 7)

	cases := []struct {
		name      string
		x, y      int
		layer     string
		wantIndex int
		wantOK    bool
	}{
		{"wall back", 0, 0, LayerBack, IndexWall, true},
		{"floor back", 1, 1, LayerBack, IndexFloor, true},
		{"door back", 2, 1, LayerBack, IndexDoor, true},
		{"front overlay", 1, 1, LayerFront, 7, true},
		{"missing layer", 0, 0, LayerFront, 0, false},
		{"out of bounds", 5, 5, LayerBack, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.TileIndex(tc.x, tc.y, tc.layer)
			if ok != tc.wantOK || got != tc.wantIndex {
				t.Errorf("TileIndex = (%d, %v), want (%d, %v)", got, ok, tc.wantIndex, tc.wantOK)
			}
		})
	}

	if v, ok := m.Property(1, 1, LayerBack, "Type"); !ok || v != "Dirt" {
		t.Errorf("floor Type = %q, %v; want Dirt", v, ok)
	}
	if _, ok := m.Property(-1, 0, LayerBack, "Type"); ok {
		t.Error("out-of-bounds property should be absent")
	}
}

func TestPlacement(t *testing.T) {
	m := New(4, 1)
	for x := range 4 {
		m.Set(x, 0, MakeFloor())
	}
	m.Set(3, 0, MakeDoor())
	a, b, door := query.Cell{X: 0, Y: 0}, query.Cell{X: 1, Y: 0}, query.Cell{X: 3, Y: 0}

	if !m.CanPlaceItem(a) {
		t.Fatal("empty floor should accept an item")
	}
	if m.CanPlaceItem(door) {
		t.Error("NoSpawn door should refuse items")
	}
	if err := m.PlaceObject(a, "barrel"); err != nil {
		t.Fatal(err)
	}
	if err := m.PlaceObject(a, "crate"); err == nil {
		t.Error("second object on one cell should fail")
	}
	if !m.HasObject(a) || m.CanPlaceItem(a) {
		t.Error("object should block placement")
	}
	if err := m.Occupy(b, "rat"); err != nil {
		t.Fatal(err)
	}
	if !m.IsOccupied(b) || m.CanPlaceItem(b) {
		t.Error("occupant should block placement")
	}
	if err := m.Occupy(query.Cell{X: 9, Y: 0}, "rat"); err == nil {
		t.Error("occupying outside the map should fail")
	}

	m.Vacate(b)
	if !m.RemoveObject(a) {
		t.Error("RemoveObject should report the removed barrel")
	}
	if !m.CanPlaceItem(a) || !m.CanPlaceItem(b) {
		t.Error("cleared cells should accept items again")
	}
}

func TestOccupyImpassable(t *testing.T) {
	m := New(2, 2)
	if err := m.Occupy(query.Cell{X: 0, Y: 0}, "ghost"); err == nil {
		t.Error("walls cannot be occupied")
	}
}

func TestQueryAgainstMap(t *testing.T) {
	m := New(5, 5)
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			m.Set(x, y, MakeFloor())
		}
	}
	if err := m.PlaceObject(query.Cell{X: 2, Y: 2}, "well"); err != nil {
		t.Fatal(err)
	}
	cond, err := query.Parse(query.DefaultRegistry(), m, "INDEX Back 0, !OBJECT")
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range cond.Cells(nil, nil) {
		n++
	}
	if n != 8 {
		t.Errorf("matched %d floor cells without objects, want 8", n)
	}
}
