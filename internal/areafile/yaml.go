package areafile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"gopkg.in/yaml.v3"
)

type yamlRoot struct {
	Maps  []yamlMap  `yaml:"maps"`
	Areas []yamlArea `yaml:"areas"`
}

type yamlMap struct {
	Name    string                `yaml:"name"`
	Rows    []string              `yaml:"rows"`
	Legend  map[string]yamlLegend `yaml:"legend"`
	Objects []ObjectDef           `yaml:"objects"`
}

type yamlLegend struct {
	Kind       string            `yaml:"kind"`
	Index      *int              `yaml:"index"`
	Passable   *bool             `yaml:"passable"`
	Layers     map[string]int    `yaml:"layers"`
	Properties map[string]string `yaml:"properties"`
}

type yamlArea struct {
	Name   string `yaml:"name"`
	Map    string `yaml:"map"`
	Query  string `yaml:"query"`
	Count  *int   `yaml:"count"`
	Spawn  string `yaml:"spawn"`
	Kind   string `yaml:"kind"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func loadYAML(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var root yamlRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	out := &File{}
	for _, m := range root.Maps {
		def := &MapDef{Name: m.Name, Rows: m.Rows, Objects: m.Objects, Source: path, Legend: make(map[string]LegendEntry)}
		for glyph, l := range m.Legend {
			def.Legend[glyph] = LegendEntry(l)
		}
		out.Maps = append(out.Maps, def)
	}
	for _, a := range root.Areas {
		expr, err := parseTemplate(a.Query, path)
		if err != nil {
			return nil, fmt.Errorf("area %q: %w", a.Name, err)
		}
		out.AreaDefs = append(out.AreaDefs, &AreaDef{
			Name:   a.Name,
			Map:    a.Map,
			Query:  expr,
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

// parseTemplate reads a YAML query string with the same ${...} interpolation
// HCL strings get.
func parseTemplate(src, filename string) (hcl.Expression, error) {
	expr, diags := hclsyntax.ParseTemplate([]byte(src), filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("query template: %w", diags)
	}
	return expr, nil
}
