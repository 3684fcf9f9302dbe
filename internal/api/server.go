package api

import (
	"database/sql"

	"github.com/linguaflash/linguaflash/internal/repository"
	"github.com/linguaflash/linguaflash/internal/services"
	"github.com/linguaflash/linguaflash/internal/worker"
	"go.uber.org/zap"
)

type Server struct {
	DB         *sql.DB
	Users      repository.UserRepository
	Words      services.WordService
	Vocabulary services.VocabularyService
	Lessons    services.LessonService
	Quizzes    services.QuizService
	Stats      services.StatsService
	Imports    services.ImportService
	ImportPool *worker.Pool
	Log        *zap.Logger
}
