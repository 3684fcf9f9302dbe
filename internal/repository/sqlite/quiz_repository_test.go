package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"github.com/linguaflash/linguaflash/internal/repository/sqlite"
	"github.com/linguaflash/linguaflash/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type QuizRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.QuizRepository
}

func (s *QuizRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuizRepository(s.db)
}

func (s *QuizRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

// setupQuiz creates a user, module, lesson and quiz with two questions.
func (s *QuizRepositorySuite) setupQuiz() (userID, quizID int64) {
	res, err := s.db.Exec(`INSERT INTO users (username) VALUES ('alice')`)
	s.Require().NoError(err)
	userID, err = res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.Exec(`INSERT INTO modules (title, level, module_number) VALUES ('My World', 'A1', 1)`)
	s.Require().NoError(err)
	moduleID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.Exec(`INSERT INTO lessons (module_id, lesson_number, title) VALUES (?, 1, 'Greetings')`, moduleID)
	s.Require().NoError(err)
	lessonID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.Exec(`INSERT INTO quizzes (lesson_id, title, pass_score) VALUES (?, 'Greetings quiz', 70.0)`, lessonID)
	s.Require().NoError(err)
	quizID, err = res.LastInsertId()
	s.Require().NoError(err)

	_, err = s.db.Exec(`
		INSERT INTO quiz_questions (quiz_id, question_order, question_type, prompt, options, answer, points)
		VALUES (?, 1, 'multiple_choice', 'Pick the greeting', '["hello","table","blue"]', 'hello', 1.0)
	`, quizID)
	s.Require().NoError(err)
	_, err = s.db.Exec(`
		INSERT INTO quiz_questions (quiz_id, question_order, question_type, prompt, options, answer, points)
		VALUES (?, 2, 'fill_blank', 'Good ___!', '[]', 'morning', 1.0)
	`, quizID)
	s.Require().NoError(err)
	return userID, quizID
}

func (s *QuizRepositorySuite) TestGetWithQuestions() {
	ctx := context.Background()
	_, quizID := s.setupQuiz()

	quiz, err := s.repo.Get(ctx, quizID)
	s.Require().NoError(err)
	s.Require().NotNil(quiz)
	s.Assert().Equal(70.0, quiz.PassScore)
	s.Require().Len(quiz.Questions, 2)
	s.Assert().Equal(1, quiz.Questions[0].Order)
	s.Assert().Equal([]string{"hello", "table", "blue"}, quiz.Questions[0].Options)
	s.Assert().Equal("hello", quiz.Questions[0].Answer)
	s.Assert().Equal("fill_blank", quiz.Questions[1].QuestionType)

	missing, err := s.repo.Get(ctx, quizID+100)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *QuizRepositorySuite) TestAttemptLifecycle() {
	ctx := context.Background()
	userID, quizID := s.setupQuiz()

	attempt, err := s.repo.CreateAttempt(ctx, userID, quizID)
	s.Require().NoError(err)
	s.Assert().Equal(models.AttemptActive, attempt.Status)

	quiz, err := s.repo.Get(ctx, quizID)
	s.Require().NoError(err)

	err = s.repo.UpsertAnswer(ctx, models.QuizAnswer{
		AttemptID:  attempt.ID,
		QuestionID: quiz.Questions[0].ID,
		Answer:     "table",
		IsCorrect:  false,
		AnsweredAt: time.Now().UTC(),
	})
	s.Require().NoError(err)

	// Resubmitting the same question overwrites the answer.
	err = s.repo.UpsertAnswer(ctx, models.QuizAnswer{
		AttemptID:    attempt.ID,
		QuestionID:   quiz.Questions[0].ID,
		Answer:       "hello",
		IsCorrect:    true,
		PointsEarned: 1.0,
		AnsweredAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)

	answers, err := s.repo.Answers(ctx, attempt.ID)
	s.Require().NoError(err)
	s.Require().Len(answers, 1)
	s.Assert().Equal("hello", answers[0].Answer)
	s.Assert().True(answers[0].IsCorrect)

	score := 50.0
	passed := false
	now := time.Now().UTC()
	attempt.Status = models.AttemptCompleted
	attempt.Score = &score
	attempt.Passed = &passed
	attempt.CompletedAt = &now
	attempt.TimeSpentSeconds = 42
	err = s.repo.CompleteAttempt(ctx, *attempt)
	s.Require().NoError(err)

	stored, err := s.repo.GetAttempt(ctx, attempt.ID)
	s.Require().NoError(err)
	s.Assert().Equal(models.AttemptCompleted, stored.Status)
	s.Require().NotNil(stored.Score)
	s.Assert().Equal(50.0, *stored.Score)
	s.Require().NotNil(stored.Passed)
	s.Assert().False(*stored.Passed)
	s.Assert().Equal(42, stored.TimeSpentSeconds)
}

func (s *QuizRepositorySuite) TestExpireStale() {
	ctx := context.Background()
	userID, quizID := s.setupQuiz()

	old := time.Now().UTC().Add(-48 * time.Hour)
	_, err := s.db.Exec(`
		INSERT INTO quiz_attempts (user_id, quiz_id, status, started_at)
		VALUES (?, ?, 'active', ?)
	`, userID, quizID, old)
	s.Require().NoError(err)

	fresh, err := s.repo.CreateAttempt(ctx, userID, quizID)
	s.Require().NoError(err)

	expired, err := s.repo.ExpireStale(ctx, time.Now().UTC().Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), expired)

	stored, err := s.repo.GetAttempt(ctx, fresh.ID)
	s.Require().NoError(err)
	s.Assert().Equal(models.AttemptActive, stored.Status)
}

func TestQuizRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuizRepositorySuite))
}
