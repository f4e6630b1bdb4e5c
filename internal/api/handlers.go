// Package api serves tile queries over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
	"tilequery/internal/spawn"
)

// Server holds the maps the API exposes. Queries share a read lock; spawning
// and clearing take the write lock because they change the maps.
type Server struct {
	engine *query.Engine
	logger *slog.Logger

	mu    sync.RWMutex
	maps  map[string]*gamemap.GameMap
	order []string
	areas []spawn.Area
}

// NewServer creates a Server over maps. Areas are used by the spawn endpoint.
func NewServer(engine *query.Engine, maps []*gamemap.GameMap, areas []spawn.Area, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine: engine,
		logger: logger,
		maps:   make(map[string]*gamemap.GameMap, len(maps)),
		areas:  areas,
	}
	for _, m := range maps {
		s.maps[m.Name] = m
		s.order = append(s.order, m.Name)
	}
	return s
}

// Routes configures all routes and returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/keywords", s.listKeywords)
		r.Get("/maps", s.listMaps)

		r.Route("/maps/{name}", func(r chi.Router) {
			r.Get("/", s.getMap)
			r.Post("/query", s.runQuery)
			r.Get("/render", s.renderMap)
			r.Post("/spawn", s.spawn)
			r.Delete("/placements", s.clearPlacements)
		})
	})
	return r
}

// MapInfo describes one map in listings.
type MapInfo struct {
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Rooms   int    `json:"rooms"`
	Objects int    `json:"objects"`
}

func (s *Server) listKeywords(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"keywords": s.engine.Registry().Keywords()})
}

func (s *Server) listMaps(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MapInfo, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.info(s.maps[name]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.info(m))
}

func (s *Server) info(m *gamemap.GameMap) MapInfo {
	objects := 0
	for c := range query.AllCells(m) {
		if m.HasObject(c) {
			objects++
		}
	}
	return MapInfo{Name: m.Name, Width: m.Width(), Height: m.Height(), Rooms: len(m.Rooms), Objects: objects}
}

// lookup resolves the {name} URL parameter, writing a 404 when it is unknown.
// Callers hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*gamemap.GameMap, bool) {
	name := chi.URLParam(r, "name")
	m, ok := s.maps[name]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown map "+name)
	}
	return m, ok
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Error encoding JSON.", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
