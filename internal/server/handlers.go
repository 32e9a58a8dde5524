package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/meibo/internal/directory"
	"github.com/hyperjump/meibo/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Normalize()
	s.logger.Debug("search request",
		zap.String("search", req.Filters.Search),
		zap.String("location", req.Filters.Location),
		zap.Strings("tags", req.Filters.Tags),
	)

	start := time.Now()
	results := s.engine.Load().Search(req.Filters)
	total := len(results)
	if req.Sort != "" {
		results = directory.SortResults(results, directory.SortCriterion(req.Sort))
	}
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results:   results,
		Total:     total,
		QueryTime: time.Since(start).Milliseconds(),
		Filters:   req.Filters,
		Sort:      req.Sort,
	})
}

func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	results, err := s.engine.Load().SemanticSearch(req.Query)
	if err != nil {
		if errors.Is(err, directory.ErrSemanticSearchUnsupported) {
			s.respondError(w, http.StatusNotImplemented, err.Error())
			return
		}
		s.logger.Error("semantic search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.SearchResponse{Results: results, Total: len(results)})
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	results := s.engine.Load().Search(models.FilterSpec{})
	total := len(results)
	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		results = directory.SortResults(results, directory.SortCriterion(sortBy))
	}
	if limit := queryInt(r, "limit", 0); limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results: results,
		Total:   total,
		Sort:    r.URL.Query().Get("sort"),
	})
}

func (s *Server) handleMember(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	profile, ok := s.engine.Load().Lookup(username)
	if !ok {
		s.respondError(w, http.StatusNotFound, "member not found")
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	count := queryInt(r, "count", 5)
	results, err := s.engine.Load().FindSimilarByUsername(username, count)
	if err != nil {
		if errors.Is(err, directory.ErrMemberNotFound) {
			s.respondError(w, http.StatusNotFound, "member not found")
			return
		}
		s.logger.Error("similar lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []models.SimilarResult{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"username": username,
		"results":  results,
	})
}

func (s *Server) handleTrendingTags(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tags": s.engine.Load().TrendingTags(limit),
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	suggestions := s.engine.Load().Suggestions(q)
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":       q,
		"suggestions": suggestions,
	})
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Load().FilterOptions())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Load().Stats())
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Create()
	s.logger.Debug("session created", zap.String("id", session.ID()))
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": session.ID()})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*directory.Session, bool) {
	session, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
	}
	return session, ok
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":             session.ID(),
		"filters":        session.Filters(),
		"active_filters": session.ActiveFilters(),
	})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSessionSearch(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var patch models.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start := time.Now()
	results := session.Search(patch)
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Filters:   session.Filters(),
	})
}

func (s *Server) handleSessionSort(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Sort string `json:"sort"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	results := session.Sort(directory.SortCriterion(req.Sort))
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results: results,
		Total:   len(results),
		Filters: session.Filters(),
		Sort:    req.Sort,
	})
}

func (s *Server) handleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := session.Refresh()
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Filters:   session.Filters(),
	})
}

func (s *Server) handleSessionClear(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	results := session.ClearFilters()
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results: results,
		Total:   len(results),
		Filters: session.Filters(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"members": s.engine.Load().Len(),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
