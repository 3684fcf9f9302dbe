package models

import "time"

// LessonModule groups lessons for one CEFR level ("My World", "Travel"...).
type LessonModule struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Level        string    `json:"level"`
	ModuleNumber int       `json:"module_number"`
	TotalLessons int       `json:"total_lessons"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Lesson struct {
	ID           int64     `json:"id"`
	ModuleID     int64     `json:"module_id"`
	LessonNumber int       `json:"lesson_number"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	GrammarFocus string    `json:"grammar_focus"`
	Theory       string    `json:"theory"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// LessonWithWords is a lesson plus its vocabulary list.
type LessonWithWords struct {
	Lesson
	Words []Word `json:"words"`
}

// Lesson components a learner can complete.
const (
	ComponentTheory   = "theory"
	ComponentHomework = "homework"
	ComponentQuiz     = "quiz"
)

// LessonProgress tracks one user's progress through one lesson.
type LessonProgress struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	LessonID int64  `json:"lesson_id"`
	Status   string `json:"status"`

	TheoryCompleted   bool `json:"theory_completed"`
	HomeworkCompleted bool `json:"homework_completed"`
	QuizCompleted     bool `json:"quiz_completed"`

	HomeworkScore *float64 `json:"homework_score"`
	QuizScore     *float64 `json:"quiz_score"`
	OverallScore  *float64 `json:"overall_score"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Lesson progress statuses.
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// ModuleProgress is the per-module rollup of lesson completion.
type ModuleProgress struct {
	UserID             int64    `json:"user_id"`
	ModuleID           int64    `json:"module_id"`
	LessonsTotal       int      `json:"lessons_total"`
	LessonsCompleted   int      `json:"lessons_completed"`
	ProgressPercentage float64  `json:"progress_percentage"`
	AverageScore       *float64 `json:"average_score"`
}
