package api

import (
	"net/http"

	"github.com/linguaflash/linguaflash/internal/logger"
	"go.uber.org/zap"
)

func (s *Server) handleDueWords(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 20)
	items, err := s.Vocabulary.DueWords(r.Context(), user.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"due":   items,
		"count": len(items),
	})
}

type reviewRequest struct {
	Quality int `json:"quality"`
}

func (s *Server) handleMarkCorrect(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	wordID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	body := reviewRequest{Quality: 4}
	if r.ContentLength > 0 {
		if err := decodeBody(r, &body); err != nil {
			handleError(w, r, err)
			return
		}
	}

	item, err := s.Vocabulary.MarkCorrect(r.Context(), user.ID, wordID, body.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("review recorded",
		zap.Int64("word_id", wordID), zap.Int("quality", body.Quality))
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleMarkIncorrect(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	wordID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.Vocabulary.MarkIncorrect(r.Context(), user.ID, wordID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleMarkEncountered(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	wordID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.Vocabulary.MarkEncountered(r.Context(), user.ID, wordID, nil)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleMarkKnown(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	wordID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.Vocabulary.MarkKnown(r.Context(), user.ID, wordID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}
