package generate

import "tilequery/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in the configured style.
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(gmap, x1, y1, x2, y2)
	case CorridorStraight:
		carveH(gmap, x1, x2, y1)
		carveV(gmap, y1, y2, x2)
	default: // LShaped
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, x1, x2, y1)
			carveV(gmap, y1, y2, x2)
		} else {
			carveV(gmap, y1, y2, x1)
			carveH(gmap, x1, x2, y2)
		}
	}
}

// carveTile turns a wall into corridor floor. Corridors are gravel so that
// queries can tell them apart from room floors.
func carveTile(gmap *gamemap.GameMap, x, y int) {
	if !gmap.InBounds(x, y) || gmap.At(x, y).Kind != gamemap.TileWall {
		return
	}
	t := gamemap.MakeFloor()
	t.SetProperty(gamemap.LayerBack, "Type", "Gravel")
	gmap.Set(x, y, t)
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		carveTile(gmap, x, y)
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		carveTile(gmap, x, y)
	}
}

func carveZShaped(gmap *gamemap.GameMap, x1, y1, x2, y2 int) {
	midY := (y1 + y2) / 2
	carveV(gmap, y1, midY, x1)
	carveH(gmap, x1, x2, midY)
	carveV(gmap, midY, y2, x2)
}

// placeDoors turns corridor cells that touch a room edge from outside into
// doors.
func placeDoors(gmap *gamemap.GameMap) {
	inRoom := func(x, y int) bool {
		for _, r := range gmap.Rooms {
			if x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2 {
				return true
			}
		}
		return false
	}
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for y := 0; y < gmap.Height(); y++ {
		for x := 0; x < gmap.Width(); x++ {
			if gmap.At(x, y).Kind != gamemap.TileFloor || inRoom(x, y) {
				continue
			}
			for _, d := range dirs {
				if inRoom(x+d[0], y+d[1]) {
					gmap.Set(x, y, gamemap.MakeDoor())
					break
				}
			}
		}
	}
}
