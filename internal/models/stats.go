package models

import "time"

// VocabularyStat is the per-user vocabulary dashboard row.
type VocabularyStat struct {
	TotalWords      int     `json:"total_words"`
	New             int     `json:"new"`
	Learning        int     `json:"learning"`
	Learned         int     `json:"learned"`
	Mastered        int     `json:"mastered"`
	Forgotten       int     `json:"forgotten"`
	DueForReview    int     `json:"due_for_review"`
	AverageAccuracy float64 `json:"average_accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}

// LevelStat breaks vocabulary progress down by CEFR level.
type LevelStat struct {
	Level        string  `json:"level"`
	TotalWords   int     `json:"total_words"`
	Mastered     int     `json:"mastered"`
	AvgEase      float64 `json:"avg_ease"`
	AvgAccuracy  float64 `json:"avg_accuracy"`
	DueForReview int     `json:"due_for_review"`
}

// ActivityStat is one day of review activity.
type ActivityStat struct {
	Day     string `json:"day"`
	Reviews int    `json:"reviews"`
	Correct int    `json:"correct"`
}

// OverviewStat is the cross-feature dashboard summary.
type OverviewStat struct {
	Vocabulary       VocabularyStat `json:"vocabulary"`
	LessonsCompleted int            `json:"lessons_completed"`
	QuizzesPassed    int            `json:"quizzes_passed"`
	AvgQuizScore     float64        `json:"avg_quiz_score"`
}

// ReviewDigest is a nightly snapshot of how much review work a user has due.
type ReviewDigest struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	DueCount    int       `json:"due_count"`
	GeneratedAt time.Time `json:"generated_at"`
}
