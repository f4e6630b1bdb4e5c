// Package spawn places objects and monsters on a map at cells chosen by tile
// queries.
package spawn

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
)

// Kind says how a spawn claims its cells.
type Kind uint8

const (
	// KindObject claims cells with gamemap.PlaceObject.
	KindObject Kind = iota
	// KindMonster claims cells with gamemap.Occupy.
	KindMonster
)

func (k Kind) String() string {
	if k == KindMonster {
		return "monster"
	}
	return "object"
}

// ParseKind maps "object" or "monster" (any case) to a Kind. Empty means object.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "object":
		return KindObject, nil
	case "monster":
		return KindMonster, nil
	}
	return 0, fmt.Errorf("unknown spawn kind %q", s)
}

// Area asks for up to Count spawns at cells matching Query. An empty Map
// applies the area to every map. Width and Height above one make each spawn
// a footprint that claims a whole block anchored at the chosen cell.
type Area struct {
	Name   string
	Map    string
	Query  string
	Spawn  string
	Kind   Kind
	Count  int
	Width  int
	Height int
}

// Expression returns the tile query actually run for the area, wrapping it
// in a SIZE clause for footprints.
func (a Area) Expression() string {
	w, h := max(a.Width, 1), max(a.Height, 1)
	if w == 1 && h == 1 {
		return a.Query
	}
	if strings.TrimSpace(a.Query) == "" {
		return fmt.Sprintf("SIZE %d %d", w, h)
	}
	return fmt.Sprintf("SIZE %d %d %s", w, h, quote(a.Query))
}

// quote wraps expr in double quotes for use as one query argument.
func quote(expr string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(expr) + `"`
}

// Placement is one spawn that landed on the map.
type Placement struct {
	Area   string
	Spawn  string
	Kind   Kind
	Anchor query.Cell
	Cells  []query.Cell
}

// Result is returned by Populate.
type Result struct {
	Placements []Placement
	// Short counts, per area, how many requested spawns found no cell.
	Short   map[string]int
	Claimed mapset.Set[query.Cell]
}

// Populate runs each area that applies to gmap in order. Later areas see the
// claims of earlier ones through OBJECT, OCCUPIED and PLACEABLE.
func Populate(e *query.Engine, gmap *gamemap.GameMap, areas []Area, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	result := Result{Short: make(map[string]int), Claimed: mapset.New[query.Cell]()}
	for _, area := range areas {
		if area.Map != "" && area.Map != gmap.Name {
			continue
		}
		placed := 0
		if area.Count > 0 {
			placed = populateArea(e, gmap, area, &result, logger)
		}
		if short := area.Count - placed; short > 0 {
			result.Short[area.Name] = short
			logger.Debug("Area ran out of cells.", "area", area.Name, "map", gmap.Name, "wanted", area.Count, "placed", placed)
		}
	}
	return result
}

func populateArea(e *query.Engine, gmap *gamemap.GameMap, area Area, result *Result, logger *slog.Logger) int {
	w, h := max(area.Width, 1), max(area.Height, 1)
	placed := 0
	for anchor := range e.MatchingCells(area.Expression(), gmap, nil, true) {
		cells := block(anchor, w, h)
		if err := claim(gmap, area, cells); err != nil {
			logger.Warn("Could not claim cells.", "area", area.Name, "error", err)
			continue
		}
		for _, c := range cells {
			result.Claimed.Put(c)
		}
		result.Placements = append(result.Placements, Placement{
			Area:   area.Name,
			Spawn:  area.Spawn,
			Kind:   area.Kind,
			Anchor: anchor,
			Cells:  cells,
		})
		placed++
		if placed == area.Count {
			break
		}
	}
	return placed
}

func block(anchor query.Cell, w, h int) []query.Cell {
	cells := make([]query.Cell, 0, w*h)
	for y := anchor.Y; y < anchor.Y+h; y++ {
		for x := anchor.X; x < anchor.X+w; x++ {
			cells = append(cells, query.Cell{X: x, Y: y})
		}
	}
	return cells
}

// claim marks every cell for the area, undoing partial work on failure.
func claim(gmap *gamemap.GameMap, area Area, cells []query.Cell) error {
	for i, c := range cells {
		var err error
		if area.Kind == KindMonster {
			err = gmap.Occupy(c, area.Spawn)
		} else {
			err = gmap.PlaceObject(c, area.Spawn)
		}
		if err != nil {
			for _, done := range cells[:i] {
				if area.Kind == KindMonster {
					gmap.Vacate(done)
				} else {
					gmap.RemoveObject(done)
				}
			}
			return err
		}
	}
	return nil
}

// RoomAreas builds one area per room of gmap, keeping spawns off the room's
// outer ring so nothing lands beside a doorway. Rooms too small to shrink use
// their full bounds.
func RoomAreas(gmap *gamemap.GameMap, spawn string, kind Kind, perRoom int) []Area {
	areas := make([]Area, 0, len(gmap.Rooms))
	for i, room := range gmap.Rooms {
		x1, y1, x2, y2 := room.X1+1, room.Y1+1, room.X2-1, room.Y2-1
		if x1 > x2 || y1 > y2 {
			x1, y1, x2, y2 = room.X1, room.Y1, room.X2, room.Y2
		}
		areas = append(areas, Area{
			Name:  fmt.Sprintf("room-%d", i),
			Map:   gmap.Name,
			Query: fmt.Sprintf("AREA_XY %d %d %d %d, PLACEABLE", x1, y1, x2, y2),
			Spawn: spawn,
			Kind:  kind,
			Count: perRoom,
		})
	}
	return areas
}
