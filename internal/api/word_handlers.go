package api

import (
	"net/http"
	"strings"

	"github.com/linguaflash/linguaflash/internal/models"
)

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.WordFilter{
		Level:    strings.ToUpper(q.Get("level")),
		WordType: strings.ToLower(q.Get("type")),
		Search:   q.Get("search"),
		OrderBy:  q.Get("order_by"),
		OrderDir: q.Get("order_dir"),
		Limit:    queryInt(r, "limit", 50),
		Offset:   queryInt(r, "offset", 0),
	}

	words, total, err := s.Words.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"words":  words,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.Words.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var body models.Word
	if err := decodeBody(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.Words.Create(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, word)
}

func (s *Server) handleUpdateWord(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body models.Word
	if err := decodeBody(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	body.ID = id

	word, err := s.Words.Update(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}
