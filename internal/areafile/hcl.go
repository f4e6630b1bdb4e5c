package areafile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclRoot decodes the top-level blocks of an HCL area file.
type hclRoot struct {
	Maps   []*hclMap  `hcl:"map,block"`
	Areas  []*hclArea `hcl:"area,block"`
	Remain hcl.Body   `hcl:",remain"`
}

type hclMap struct {
	Name    string       `hcl:"name,label"`
	Rows    []string     `hcl:"rows"`
	Legend  []*hclLegend `hcl:"legend,block"`
	Objects []*hclObject `hcl:"object,block"`
}

type hclLegend struct {
	Glyph      string            `hcl:"glyph,label"`
	Kind       string            `hcl:"kind,optional"`
	Index      *int              `hcl:"index,optional"`
	Passable   *bool             `hcl:"passable,optional"`
	Layers     map[string]int    `hcl:"layers,optional"`
	Properties map[string]string `hcl:"properties,optional"`
}

type hclObject struct {
	X    int    `hcl:"x"`
	Y    int    `hcl:"y"`
	Name string `hcl:"name"`
}

type hclArea struct {
	Name   string         `hcl:"name,label"`
	Map    string         `hcl:"map,optional"`
	Query  hcl.Expression `hcl:"query"`
	Count  *int           `hcl:"count,optional"`
	Spawn  string         `hcl:"spawn,optional"`
	Kind   string         `hcl:"kind,optional"`
	Width  int            `hcl:"width,optional"`
	Height int            `hcl:"height,optional"`
}

func loadHCL(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	var root hclRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	out := &File{}
	for _, m := range root.Maps {
		def := &MapDef{Name: m.Name, Rows: m.Rows, Source: path, Legend: make(map[string]LegendEntry)}
		for _, l := range m.Legend {
			def.Legend[l.Glyph] = LegendEntry{
				Kind:       l.Kind,
				Index:      l.Index,
				Passable:   l.Passable,
				Layers:     l.Layers,
				Properties: l.Properties,
			}
		}
		for _, o := range m.Objects {
			def.Objects = append(def.Objects, ObjectDef{X: o.X, Y: o.Y, Name: o.Name})
		}
		out.Maps = append(out.Maps, def)
	}
	for _, a := range root.Areas {
		out.AreaDefs = append(out.AreaDefs, &AreaDef{
			Name:   a.Name,
			Map:    a.Map,
			Query:  a.Query,
			Count:  a.Count,
			Spawn:  a.Spawn,
			Kind:   a.Kind,
			Width:  a.Width,
			Height: a.Height,
			Source: path,
		})
	}
	return out, nil
}
