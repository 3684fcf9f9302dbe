package services

import (
	"context"
	"strings"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

// WordService manages the vocabulary catalog.
type WordService interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error)
	Create(ctx context.Context, word models.Word) (*models.Word, error)
	Update(ctx context.Context, word models.Word) (*models.Word, error)
}

type wordService struct {
	words repository.WordRepository
}

func NewWordService(words repository.WordRepository) WordService {
	return &wordService{words: words}
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.Word, error) {
	word, err := s.words.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

func (s *wordService) List(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error) {
	words, err := s.words.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.words.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return words, total, nil
}

func (s *wordService) Create(ctx context.Context, word models.Word) (*models.Word, error) {
	if err := validateWord(&word); err != nil {
		return nil, err
	}

	existing, err := s.words.GetByHeadword(ctx, word.Headword)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("word already exists: " + word.Headword)
	}

	id, err := s.words.Insert(ctx, word)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	word.ID = id

	logger.FromContext(ctx).Info("word created",
		zap.Int64("word_id", id), zap.String("headword", word.Headword))
	return &word, nil
}

func (s *wordService) Update(ctx context.Context, word models.Word) (*models.Word, error) {
	if err := validateWord(&word); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, word.ID); err != nil {
		return nil, err
	}
	if err := s.words.Update(ctx, word); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &word, nil
}

func validateWord(word *models.Word) error {
	word.Headword = strings.TrimSpace(word.Headword)
	word.Translation = strings.TrimSpace(word.Translation)
	word.WordType = strings.ToLower(strings.TrimSpace(word.WordType))
	word.Level = strings.ToUpper(strings.TrimSpace(word.Level))

	if word.Headword == "" {
		return errors.NewValidationError("headword", "cannot be empty")
	}
	if word.Translation == "" {
		return errors.NewValidationError("translation", "cannot be empty")
	}
	if word.WordType != "" && !models.ValidWordType(word.WordType) {
		return errors.NewValidationError("word_type", "unknown word type: "+word.WordType)
	}
	if word.Level != "" && !models.ValidCEFRLevel(word.Level) {
		return errors.NewValidationError("level", "unknown CEFR level: "+word.Level)
	}
	return nil
}
