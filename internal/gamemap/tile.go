package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoor
	TileWater
)

// Layer names used by generated maps.
const (
	LayerBack      = "Back"
	LayerBuildings = "Buildings"
	LayerFront     = "Front"
)

// Back-layer sheet indices written by MakeWall, MakeFloor and MakeDoor.
const (
	IndexFloor = 0
	IndexWall  = 1
	IndexDoor  = 2
	IndexWater = 3
)

// Tile holds the kind, passability and per-layer data for one map cell.
// A layer is present when it has a sheet index; properties may exist on any
// layer name.
type Tile struct {
	Kind       TileKind
	Passable   bool
	Indices    map[string]int
	Properties map[string]map[string]string
}

// SetIndex places sheet index i on layer.
func (t *Tile) SetIndex(layer string, i int) {
	if t.Indices == nil {
		t.Indices = make(map[string]int)
	}
	t.Indices[layer] = i
}

// ClearIndex removes layer from the tile.
func (t *Tile) ClearIndex(layer string) {
	delete(t.Indices, layer)
}

// SetProperty sets key on layer to value.
func (t *Tile) SetProperty(layer, key, value string) {
	if t.Properties == nil {
		t.Properties = make(map[string]map[string]string)
	}
	if t.Properties[layer] == nil {
		t.Properties[layer] = make(map[string]string)
	}
	t.Properties[layer][key] = value
}

// Property returns the value of key on layer.
func (t *Tile) Property(layer, key string) (string, bool) {
	v, ok := t.Properties[layer][key]
	return v, ok
}

// MakeWall returns a blocking stone wall.
func MakeWall() Tile {
	t := Tile{Kind: TileWall}
	t.SetIndex(LayerBack, IndexWall)
	t.SetProperty(LayerBack, "Type", "Stone")
	return t
}

// MakeFloor returns a passable dirt floor.
func MakeFloor() Tile {
	t := Tile{Kind: TileFloor, Passable: true}
	t.SetIndex(LayerBack, IndexFloor)
	t.SetProperty(LayerBack, "Type", "Dirt")
	return t
}

// MakeDoor returns a passable wooden doorway. Nothing spawns in doorways.
func MakeDoor() Tile {
	t := Tile{Kind: TileDoor, Passable: true}
	t.SetIndex(LayerBack, IndexDoor)
	t.SetProperty(LayerBack, "Type", "Wood")
	t.SetProperty(LayerBack, "NoSpawn", "T")
	return t
}

// MakeWater returns impassable water.
func MakeWater() Tile {
	t := Tile{Kind: TileWater}
	t.SetIndex(LayerBack, IndexWater)
	t.SetProperty(LayerBack, "Water", "T")
	return t
}
