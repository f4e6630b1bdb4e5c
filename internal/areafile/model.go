// Package areafile loads map layouts and spawn areas from HCL or YAML files
// into one format-agnostic model.
package areafile

import "github.com/hashicorp/hcl/v2"

// File is everything loaded from a set of area files.
type File struct {
	Maps     []*MapDef
	AreaDefs []*AreaDef
}

// MapDef is a hand-drawn map: one string per row, one glyph per cell.
type MapDef struct {
	Name    string
	Rows    []string
	Legend  map[string]LegendEntry
	Objects []ObjectDef
	// Source is the file the map came from, for error messages.
	Source string
}

// LegendEntry says what one glyph turns into.
type LegendEntry struct {
	// Kind is wall, floor, door or water. Empty means floor.
	Kind     string
	Index    *int
	Passable *bool
	// Layers adds sheet indices on other layers, keyed by layer name.
	Layers map[string]int
	// Properties are set on the Back layer.
	Properties map[string]string
}

// ObjectDef is an object placed when the map is built.
type ObjectDef struct {
	X, Y int
	Name string
}

// AreaDef is a spawn area whose query is a template over the target map's
// dimensions (width, height, name).
type AreaDef struct {
	Name   string
	Map    string
	Query  hcl.Expression
	Count  *int // nil means one
	Spawn  string
	Kind   string
	Width  int
	Height int
	Source string
}

// defaultLegend covers glyphs a map does not define itself.
var defaultLegend = map[string]LegendEntry{
	"#": {Kind: "wall"},
	".": {Kind: "floor"},
	"+": {Kind: "door"},
	"~": {Kind: "water"},
}
