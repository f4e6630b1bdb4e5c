package areafile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tilequery/internal/ctxlog"
)

// Load reads every .hcl, .yaml and .yml file under paths. Directories are
// walked recursively; paths that do not exist are skipped.
func Load(ctx context.Context, paths ...string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Area loader started.", "path_count", len(paths))

	files, err := findAreaFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered area files.", "count", len(files))

	out := &File{}
	for _, path := range files {
		var part *File
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hcl":
			part, err = loadHCL(path)
		default:
			part, err = loadYAML(path)
		}
		if err != nil {
			return nil, err
		}
		out.Maps = append(out.Maps, part.Maps...)
		out.AreaDefs = append(out.AreaDefs, part.AreaDefs...)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Area loading complete.", "maps", len(out.Maps), "areas", len(out.AreaDefs))
	return out, nil
}

func isAreaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".yaml", ".yml":
		return true
	}
	return false
}

// findAreaFiles walks all given paths and returns a flat, de-duplicated list
// of area files.
func findAreaFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if isAreaFile(path) {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isAreaFile(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return all, nil
}

// Validate checks names are unique and areas refer to known maps.
func (f *File) Validate() error {
	maps := make(map[string]*MapDef, len(f.Maps))
	for _, m := range f.Maps {
		if m.Name == "" {
			return fmt.Errorf("%s: map without a name", m.Source)
		}
		if prev, ok := maps[m.Name]; ok {
			return fmt.Errorf("%s: map %q already defined in %s", m.Source, m.Name, prev.Source)
		}
		maps[m.Name] = m
	}
	areas := make(map[string]bool, len(f.AreaDefs))
	for _, a := range f.AreaDefs {
		if areas[a.Name] {
			return fmt.Errorf("%s: area %q defined twice", a.Source, a.Name)
		}
		areas[a.Name] = true
		if a.Map != "" && maps[a.Map] == nil {
			return fmt.Errorf("%s: area %q refers to unknown map %q", a.Source, a.Name, a.Map)
		}
		if (a.Count != nil && *a.Count < 0) || a.Width < 0 || a.Height < 0 {
			return fmt.Errorf("%s: area %q has a negative count or size", a.Source, a.Name)
		}
	}
	return nil
}
