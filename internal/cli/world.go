package cli

import (
	"context"
	"fmt"

	"tilequery/internal/areafile"
	"tilequery/internal/ctxlog"
	"tilequery/internal/gamemap"
	"tilequery/internal/generate"
	"tilequery/internal/spawn"
)

// World is the set of maps a binary serves, with the spawn areas that apply
// to them.
type World struct {
	Maps  []*gamemap.GameMap
	Areas []spawn.Area
}

// MapByName returns the named map, or nil.
func (w *World) MapByName(name string) *gamemap.GameMap {
	for _, m := range w.Maps {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// LoadWorld builds the world cfg describes: the maps in its area files, or a
// generated dungeon with one crate per room when there are none.
func LoadWorld(ctx context.Context, cfg *Config) (*World, error) {
	logger := ctxlog.FromContext(ctx)
	w := &World{}

	if len(cfg.AreaPaths) == 0 {
		gmap := generate.Generate(generate.DefaultConfig(cfg.Seed))
		w.Maps = []*gamemap.GameMap{gmap}
		w.Areas = spawn.RoomAreas(gmap, "crate", spawn.KindObject, 1)
		logger.Info("Generated dungeon.", "seed", cfg.Seed, "rooms", len(gmap.Rooms))
	} else {
		f, err := areafile.Load(ctx, cfg.AreaPaths...)
		if err != nil {
			return nil, err
		}
		maps, err := f.BuildMaps()
		if err != nil {
			return nil, err
		}
		for _, m := range maps {
			areas, err := f.Areas(m)
			if err != nil {
				return nil, err
			}
			w.Maps = append(w.Maps, m)
			w.Areas = append(w.Areas, areas...)
		}
		logger.Info("Loaded area files.", "maps", len(w.Maps), "areas", len(w.Areas))
	}

	if cfg.Map != "" {
		m := w.MapByName(cfg.Map)
		if m == nil {
			return nil, fmt.Errorf("no map named %q", cfg.Map)
		}
		w.Maps = []*gamemap.GameMap{m}
	}
	if len(w.Maps) == 0 {
		return nil, fmt.Errorf("no maps found in %v", cfg.AreaPaths)
	}
	return w, nil
}
