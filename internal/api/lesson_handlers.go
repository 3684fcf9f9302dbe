package api

import (
	"net/http"

	"github.com/linguaflash/linguaflash/internal/models"
)

func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := s.Lessons.ListModules(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"modules": modules})
}

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	moduleID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lessons, err := s.Lessons.ListLessons(r.Context(), moduleID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"lessons": lessons})
}

func (s *Server) handleModuleProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	moduleID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.Lessons.ModuleProgress(r.Context(), user.ID, moduleID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.Lessons.GetLesson(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, lesson)
}

func (s *Server) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lesson, progress, err := s.Lessons.StartLesson(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"lesson":   lesson,
		"progress": progress,
	})
}

type completeComponentRequest struct {
	Component string   `json:"component"`
	Score     *float64 `json:"score,omitempty"`
}

func (s *Server) handleCompleteComponent(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body completeComponentRequest
	if err := decodeBody(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.Lessons.CompleteComponent(r.Context(), user.ID, id, body.Component, body.Score)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}

func (s *Server) handleLessonProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.Lessons.Progress(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}

func (s *Server) handleLessonQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	quiz, err := s.Quizzes.GetLessonQuiz(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publicQuiz(quiz))
}

// publicQuiz strips answer keys before a quiz goes over the wire. The
// Answer field is already json:"-" but the question list is rebuilt here so
// future fields default to hidden.
func publicQuiz(quiz *models.QuizWithQuestions) map[string]any {
	questions := make([]map[string]any, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, map[string]any{
			"id":            q.ID,
			"order":         q.Order,
			"question_type": q.QuestionType,
			"prompt":        q.Prompt,
			"options":       q.Options,
			"points":        q.Points,
		})
	}
	return map[string]any{
		"id":         quiz.ID,
		"lesson_id":  quiz.LessonID,
		"title":      quiz.Title,
		"pass_score": quiz.PassScore,
		"questions":  questions,
	}
}
