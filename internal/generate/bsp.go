package generate

import (
	"math/rand"

	"tilequery/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one map.
type Config struct {
	Name          string
	Width, Height int
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle
	// MossChance is the percent chance that a room floor cell gets a Front
	// layer moss tile.
	MossChance int
	Rand       *rand.Rand
}

// DefaultConfig returns the settings the explorer uses for generated maps.
func DefaultConfig(seed int64) *Config {
	return &Config{
		Name:        "dungeon",
		Width:       60,
		Height:      30,
		MinLeafSize: 8,
		MaxLeafSize: 20,
		MinRoomSize: 4,
		RoomPadding: 1,
		MossChance:  8,
		Rand:        rand.New(rand.NewSource(seed)),
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	size := l.H
	if !splitH {
		size = l.W
	}
	if size <= cfg.MinLeafSize*2 {
		return false
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(gmap, cfg)
		}
		if l.right != nil {
			l.right.createRooms(gmap, cfg)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize
	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := min(minSize+cfg.Rand.Intn(max(1, availW-minSize+1)), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(max(1, availH-minSize+1)), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	// Keep a one-tile wall border around the map.
	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	if rx+rw >= gmap.Width() {
		rw = gmap.Width() - rx - 1
	}
	if ry+rh >= gmap.Height() {
		rh = gmap.Height() - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = append(gmap.Rooms, room)
}

// getRoom returns a room from this leaf or, if split, from its children.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *gamemap.Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	lRoom, rRoom := l.left.getRoom(), l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(gmap, lCX, lCY, rCX, rCY, cfg)
}

// Generate runs BSP generation and returns a map whose Back layer holds
// floor, wall and door indices with matching Type properties. Rooms may carry
// Front layer moss.
func Generate(cfg *Config) *gamemap.GameMap {
	gmap := gamemap.New(cfg.Width, cfg.Height)
	gmap.Name = cfg.Name

	root := &bspLeaf{W: cfg.Width, H: cfg.Height}
	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(gmap, cfg)
	root.connectChildren(gmap, cfg)
	placeDoors(gmap)
	growMoss(gmap, cfg)
	return gmap
}

// IndexMoss is the Front layer index of moss patches.
const IndexMoss = 10

func growMoss(gmap *gamemap.GameMap, cfg *Config) {
	if cfg.MossChance <= 0 {
		return
	}
	for _, room := range gmap.Rooms {
		for y := room.Y1; y <= room.Y2; y++ {
			for x := room.X1; x <= room.X2; x++ {
				if gmap.At(x, y).Kind != gamemap.TileFloor || cfg.Rand.Intn(100) >= cfg.MossChance {
					continue
				}
				t := gmap.At(x, y)
				t.SetIndex(gamemap.LayerFront, IndexMoss)
				t.SetProperty(gamemap.LayerFront, "Type", "Moss")
			}
		}
	}
}
