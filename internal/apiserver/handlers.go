package apiserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vidgate/internal/engine"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter: q")
		return
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 1 {
			page = p
		}
	}
	engine.IncrSearchRequests()

	doc, err := s.fetch(r.Context(), engine.SearchURL(query, page))
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}

	writeJSON(w, http.StatusOK, engine.SearchResponse{
		Query:   query,
		Results: engine.ExtractSearchResults(doc),
	})
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter: id")
		return
	}
	engine.IncrDetailRequests()

	doc, err := s.fetch(r.Context(), engine.VideoURL(id))
	if errors.Is(err, engine.ErrNotFound) {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}

	writeJSON(w, http.StatusOK, engine.ExtractDetail(doc, id))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	engine.IncrTrendingRequests()

	doc, err := s.fetch(r.Context(), engine.TrendingURL())
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}

	results := engine.ExtractTrending(doc)
	writeJSON(w, http.StatusOK, engine.TrendingResponse{
		Results: results,
		Count:   len(results),
	})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"api_keys": {s.apiKey},
	})
}

// handleAdminRevoke is a declared permanent stub: key revocation is
// exposed but not supported, and always answers 501.
func (s *Server) handleAdminRevoke(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "key revocation is not implemented")
}

type endpointDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Params string `json:"params,omitempty"`
	Auth   bool   `json:"auth"`
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "vidgate",
		"version": s.version,
		"endpoints": []endpointDoc{
			{Method: "GET", Path: "/search", Params: "q (required), page", Auth: true},
			{Method: "GET", Path: "/video", Params: "id (required)", Auth: true},
			{Method: "GET", Path: "/trending", Auth: true},
			{Method: "GET", Path: "/admin", Auth: true},
			{Method: "POST", Path: "/admin/revoke", Params: "key", Auth: true},
			{Method: "GET", Path: "/docs", Auth: false},
			{Method: "GET", Path: "/healthz", Auth: false},
			{Method: "GET", Path: "/metrics", Auth: false},
		},
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(engine.FormatMetrics()))
}
