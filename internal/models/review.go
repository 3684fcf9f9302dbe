package models

import "time"

// Review item statuses. An item is created as new on first encounter and
// moves between learning, learned, mastered and forgotten as reviews come in.
type ReviewStatus string

const (
	StatusNew       ReviewStatus = "new"
	StatusLearning  ReviewStatus = "learning"
	StatusLearned   ReviewStatus = "learned"
	StatusMastered  ReviewStatus = "mastered"
	StatusForgotten ReviewStatus = "forgotten"
)

// ReviewItem is the per-user spaced-repetition state for one word.
type ReviewItem struct {
	ID     int64        `json:"id"`
	UserID int64        `json:"user_id"`
	WordID int64        `json:"word_id"`
	Status ReviewStatus `json:"status"`

	TimesSeen      int `json:"times_seen"`
	TimesCorrect   int `json:"times_correct"`
	TimesIncorrect int `json:"times_incorrect"`

	EaseFactor   float64 `json:"ease_factor"`
	IntervalDays int     `json:"interval_days"`
	Repetitions  int     `json:"repetitions"`

	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time  `json:"next_review_at"`

	LessonID *int64 `json:"lesson_id,omitempty"`

	FirstSeenAt time.Time `json:"first_seen_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReviewItemWithWord joins an item with its word for queue responses.
type ReviewItemWithWord struct {
	ReviewItem
	Headword    string `json:"headword"`
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
	Example     string `json:"example"`
	WordType    string `json:"word_type"`
	Level       string `json:"level"`
}

// ReviewEvent is one row of review history.
type ReviewEvent struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	Quality    int       `json:"quality"`
	Correct    bool      `json:"correct"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
