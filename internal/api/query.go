package api

import (
	"encoding/json"
	"iter"
	"net/http"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"tilequery/internal/query"
	"tilequery/internal/render"
)

// maxLimit caps how many cells one query response carries.
const maxLimit = 10000

// QueryRequest is the body of POST /api/maps/{name}/query.
type QueryRequest struct {
	Expression string `json:"expression"`
	// Limit caps the number of cells returned. Zero means maxLimit.
	Limit     int  `json:"limit"`
	Randomize bool `json:"randomize"`
	// Candidates restricts the search to these cells when non-empty.
	Candidates []CellJSON `json:"candidates,omitempty"`
}

// CellJSON is a cell on the wire.
type CellJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// QueryResponse lists the matching cells in the order they were produced.
type QueryResponse struct {
	Cells []CellJSON `json:"cells"`
	Count int        `json:"count"`
	// Order is the predicates in the order they are evaluated.
	Order     []string `json:"order"`
	Truncated bool     `json:"truncated,omitempty"`
}

func (s *Server) runQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	cond, err := s.engine.Condition(req.Expression, m)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var candidates iter.Seq[query.Cell]
	if len(req.Candidates) > 0 {
		candidates = func(yield func(query.Cell) bool) {
			for _, c := range req.Candidates {
				if !yield(query.Cell{X: c.X, Y: c.Y}) {
					return
				}
			}
		}
	}

	resp := QueryResponse{Cells: []CellJSON{}, Order: cond.Describe()}
	for c := range s.engine.MatchingCells(req.Expression, m, candidates, req.Randomize) {
		if len(resp.Cells) == limit {
			resp.Truncated = true
			break
		}
		resp.Cells = append(resp.Cells, CellJSON{X: c.X, Y: c.Y})
	}
	resp.Count = len(resp.Cells)
	respondJSON(w, http.StatusOK, resp)
}

// renderMap draws the map as plain text, one line per row, with matches of
// the optional ?q= expression highlighted.
func (s *Server) renderMap(w http.ResponseWriter, r *http.Request) {
	expr := r.URL.Query().Get("q")
	theme := render.ThemeByName(r.URL.Query().Get("theme"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	matched := mapset.New[query.Cell]()
	if expr != "" {
		if _, err := s.engine.Condition(expr, m); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		for c := range s.engine.MatchingCells(expr, m, nil, false) {
			matched.Put(c)
		}
	}

	var b strings.Builder
	for _, row := range render.Overlay(m, matched, theme) {
		for _, g := range row {
			b.WriteString(g.Text)
		}
		b.WriteByte('\n')
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}
