package models

import "time"

// Question types supported by the quiz engine.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionFillBlank      = "fill_blank"
)

type Quiz struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	Title     string    `json:"title"`
	PassScore float64   `json:"pass_score"`
	CreatedAt time.Time `json:"created_at"`
}

type QuizQuestion struct {
	ID           int64    `json:"id"`
	QuizID       int64    `json:"quiz_id"`
	Order        int      `json:"order"`
	QuestionType string   `json:"question_type"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options,omitempty"`
	Answer       string   `json:"-"`
	Points       float64  `json:"points"`
	// Optional link back to a vocabulary word so quiz outcomes feed the
	// spaced-repetition tracker.
	WordID *int64 `json:"word_id,omitempty"`
}

// QuizWithQuestions is a quiz plus its ordered questions.
type QuizWithQuestions struct {
	Quiz
	Questions []QuizQuestion `json:"questions"`
}

// Attempt statuses.
const (
	AttemptActive    = "active"
	AttemptCompleted = "completed"
	AttemptExpired   = "expired"
)

type QuizAttempt struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	QuizID           int64      `json:"quiz_id"`
	Status           string     `json:"status"`
	Score            *float64   `json:"score"`
	Passed           *bool      `json:"passed"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

type QuizAnswer struct {
	ID           int64     `json:"id"`
	AttemptID    int64     `json:"attempt_id"`
	QuestionID   int64     `json:"question_id"`
	Answer       string    `json:"answer"`
	IsCorrect    bool      `json:"is_correct"`
	PointsEarned float64   `json:"points_earned"`
	AnsweredAt   time.Time `json:"answered_at"`
}

// QuizResult summarizes a completed attempt.
type QuizResult struct {
	AttemptID        int64   `json:"attempt_id"`
	Score            float64 `json:"score"`
	Passed           bool    `json:"passed"`
	TotalQuestions   int     `json:"total_questions"`
	CorrectAnswers   int     `json:"correct_answers"`
	TimeSpentSeconds int     `json:"time_spent_seconds"`
}
