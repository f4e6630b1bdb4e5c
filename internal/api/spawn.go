package api

import (
	"net/http"

	"tilequery/internal/spawn"
)

// PlacementJSON is one spawn on the wire.
type PlacementJSON struct {
	Area   string     `json:"area"`
	Spawn  string     `json:"spawn"`
	Kind   string     `json:"kind"`
	Anchor CellJSON   `json:"anchor"`
	Cells  []CellJSON `json:"cells"`
}

// SpawnResponse reports what a spawn run placed and which areas fell short.
type SpawnResponse struct {
	Placements []PlacementJSON `json:"placements"`
	Short      map[string]int  `json:"short"`
}

func (s *Server) spawn(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res := spawn.Populate(s.engine, m, s.areas, s.logger)

	resp := SpawnResponse{Placements: []PlacementJSON{}, Short: res.Short}
	for _, p := range res.Placements {
		pj := PlacementJSON{
			Area:   p.Area,
			Spawn:  p.Spawn,
			Kind:   p.Kind.String(),
			Anchor: CellJSON{X: p.Anchor.X, Y: p.Anchor.Y},
		}
		for _, c := range p.Cells {
			pj.Cells = append(pj.Cells, CellJSON{X: c.X, Y: c.Y})
		}
		resp.Placements = append(resp.Placements, pj)
	}
	s.logger.Info("Spawned placements.", "map", m.Name, "count", len(resp.Placements), "short", len(res.Short))
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) clearPlacements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	m.ClearPlacements()
	w.WriteHeader(http.StatusNoContent)
}
