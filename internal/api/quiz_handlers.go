package api

import (
	"net/http"
)

func (s *Server) handleStartQuizAttempt(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	quizID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.Quizzes.StartAttempt(r.Context(), user.ID, quizID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, attempt)
}

type submitAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	attemptID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body submitAnswerRequest
	if err := decodeBody(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	answer, err := s.Quizzes.SubmitAnswer(r.Context(), user.ID, attemptID, body.QuestionID, body.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, answer)
}

func (s *Server) handleCompleteQuizAttempt(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	attemptID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Quizzes.CompleteAttempt(r.Context(), user.ID, attemptID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
