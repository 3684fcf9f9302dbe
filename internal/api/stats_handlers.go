package api

import (
	"net/http"
)

func (s *Server) handleVocabularyStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := s.Stats.Vocabulary(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleLevelStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := s.Stats.Levels(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"levels": stats})
}

func (s *Server) handleActivityStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	days := queryInt(r, "days", 30)
	stats, err := s.Stats.Activity(r.Context(), user.ID, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"days": days, "activity": stats})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	overview, err := s.Stats.Overview(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}
