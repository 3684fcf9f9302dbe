package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(s.userMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Get("/", s.handleListWords)
			r.Post("/", s.handleCreateWord)
			r.Get("/{id}", s.handleGetWord)
			r.Put("/{id}", s.handleUpdateWord)
			r.Post("/{id}/encountered", s.handleMarkEncountered)
			r.Post("/{id}/correct", s.handleMarkCorrect)
			r.Post("/{id}/incorrect", s.handleMarkIncorrect)
			r.Post("/{id}/known", s.handleMarkKnown)
		})

		r.Get("/reviews/due", s.handleDueWords)

		r.Route("/modules", func(r chi.Router) {
			r.Get("/", s.handleListModules)
			r.Get("/{id}/lessons", s.handleListLessons)
			r.Get("/{id}/progress", s.handleModuleProgress)
		})

		r.Route("/lessons", func(r chi.Router) {
			r.Get("/{id}", s.handleGetLesson)
			r.Post("/{id}/start", s.handleStartLesson)
			r.Post("/{id}/complete", s.handleCompleteComponent)
			r.Get("/{id}/progress", s.handleLessonProgress)
			r.Get("/{id}/quiz", s.handleLessonQuiz)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/{id}/attempts", s.handleStartQuizAttempt)
		})

		r.Route("/attempts", func(r chi.Router) {
			r.Post("/{id}/answers", s.handleSubmitAnswer)
			r.Post("/{id}/complete", s.handleCompleteQuizAttempt)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/vocabulary", s.handleVocabularyStats)
			r.Get("/levels", s.handleLevelStats)
			r.Get("/activity", s.handleActivityStats)
			r.Get("/overview", s.handleOverview)
		})

		r.Route("/imports", func(r chi.Router) {
			r.Post("/", s.handleStartImport)
			r.Get("/{id}", s.handleGetImport)
		})
	})

	return r
}
