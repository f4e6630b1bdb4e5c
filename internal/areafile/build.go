package areafile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/rivo/uniseg"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
	"tilequery/internal/spawn"
)

// BuildMaps turns every map definition into a GameMap, in file order.
func (f *File) BuildMaps() ([]*gamemap.GameMap, error) {
	out := make([]*gamemap.GameMap, 0, len(f.Maps))
	for _, def := range f.Maps {
		m, err := def.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Build lays out the rows. Each grapheme is one cell, so emoji maps work;
// short rows are padded with wall.
func (def *MapDef) Build() (*gamemap.GameMap, error) {
	rows := make([][]string, len(def.Rows))
	width := 0
	for y, row := range def.Rows {
		g := uniseg.NewGraphemes(row)
		for g.Next() {
			rows[y] = append(rows[y], g.Str())
		}
		width = max(width, len(rows[y]))
	}
	if width == 0 {
		return nil, fmt.Errorf("%s: map %q has no cells", def.Source, def.Name)
	}

	m := gamemap.New(width, len(rows))
	m.Name = def.Name
	for y, row := range rows {
		for x, glyph := range row {
			t, err := def.tileFor(glyph)
			if err != nil {
				return nil, fmt.Errorf("%s: map %q at (%d,%d): %w", def.Source, def.Name, x, y, err)
			}
			m.Set(x, y, t)
		}
	}
	for _, o := range def.Objects {
		if err := m.PlaceObject(query.Cell{X: o.X, Y: o.Y}, o.Name); err != nil {
			return nil, fmt.Errorf("%s: map %q: %w", def.Source, def.Name, err)
		}
	}
	return m, nil
}

func (def *MapDef) tileFor(glyph string) (gamemap.Tile, error) {
	entry, ok := def.Legend[glyph]
	if !ok {
		entry, ok = defaultLegend[glyph]
	}
	if !ok {
		return gamemap.Tile{}, fmt.Errorf("glyph %q has no legend entry", glyph)
	}
	var t gamemap.Tile
	switch strings.ToLower(entry.Kind) {
	case "", "floor":
		t = gamemap.MakeFloor()
	case "wall":
		t = gamemap.MakeWall()
	case "door":
		t = gamemap.MakeDoor()
	case "water":
		t = gamemap.MakeWater()
	default:
		return t, fmt.Errorf("unknown tile kind %q", entry.Kind)
	}
	if entry.Index != nil {
		t.SetIndex(gamemap.LayerBack, *entry.Index)
	}
	if entry.Passable != nil {
		t.Passable = *entry.Passable
	}
	for layer, i := range entry.Layers {
		t.SetIndex(layer, i)
	}
	for k, v := range entry.Properties {
		t.SetProperty(gamemap.LayerBack, k, v)
	}
	return t, nil
}

// queryFunctions are callable from area query templates.
var queryFunctions = map[string]function.Function{
	"min":   stdlib.MinFunc,
	"max":   stdlib.MaxFunc,
	"upper": stdlib.UpperFunc,
	"lower": stdlib.LowerFunc,
}

// evalContext exposes the target map to an area's query template.
func evalContext(gmap *gamemap.GameMap) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"width":  cty.NumberIntVal(int64(gmap.Width())),
			"height": cty.NumberIntVal(int64(gmap.Height())),
			"name":   cty.StringVal(gmap.Name),
		},
		Functions: queryFunctions,
	}
}

// Areas resolves the areas that apply to gmap: those naming it and those
// naming no map at all.
func (f *File) Areas(gmap *gamemap.GameMap) ([]spawn.Area, error) {
	ctx := evalContext(gmap)
	var out []spawn.Area
	for _, def := range f.AreaDefs {
		if def.Map != "" && def.Map != gmap.Name {
			continue
		}
		expr, err := def.Expression(ctx)
		if err != nil {
			return nil, err
		}
		kind, err := spawn.ParseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: area %q: %w", def.Source, def.Name, err)
		}
		name := def.Spawn
		if name == "" {
			name = def.Name
		}
		count := 1
		if def.Count != nil {
			count = *def.Count
		}
		out = append(out, spawn.Area{
			Name:   def.Name,
			Map:    gmap.Name,
			Query:  expr,
			Spawn:  name,
			Kind:   kind,
			Count:  count,
			Width:  def.Width,
			Height: def.Height,
		})
	}
	return out, nil
}

// Expression evaluates the area's query template to a query string.
func (def *AreaDef) Expression(ctx *hcl.EvalContext) (string, error) {
	if def.Query == nil {
		return "", nil
	}
	val, diags := def.Query.Value(ctx)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: area %q: %w", def.Source, def.Name, diags)
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: area %q: query is not a string: %w", def.Source, def.Name, err)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("%s: area %q: query has no value", def.Source, def.Name)
	}
	return val.AsString(), nil
}
