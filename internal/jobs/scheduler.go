package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

// Scheduler runs the recurring maintenance work: the nightly review digest
// and expiry of abandoned quiz attempts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	stats     repository.StatsRepository
	quizzes   repository.QuizRepository
	log       *zap.Logger

	digestHourUTC int
	attemptTTL    time.Duration
	now           func() time.Time
}

func NewScheduler(stats repository.StatsRepository, quizzes repository.QuizRepository, digestHourUTC int, attemptTTL time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		stats:         stats,
		quizzes:       quizzes,
		log:           log.Named("scheduler"),
		digestHourUTC: digestHourUTC,
		attemptTTL:    attemptTTL,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the recurring jobs and runs the scheduler in the
// background.
func (s *Scheduler) Start() error {
	digestAt := fmt.Sprintf("%02d:00", s.digestHourUTC)
	if _, err := s.scheduler.Every(1).Day().At(digestAt).Do(s.GenerateDigests); err != nil {
		return fmt.Errorf("schedule review digest: %w", err)
	}
	if _, err := s.scheduler.Every(1).Hour().Do(s.ExpireStaleAttempts); err != nil {
		return fmt.Errorf("schedule attempt expiry: %w", err)
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler started",
		zap.String("digest_at", digestAt),
		zap.Duration("attempt_ttl", s.attemptTTL))
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// GenerateDigests snapshots how many reviews each user has due. Exposed so
// an admin endpoint can trigger it outside the nightly run.
func (s *Scheduler) GenerateDigests() {
	ctx := logger.NewContext(context.Background(), s.log)
	now := s.now()

	digests, err := s.stats.DueByUser(ctx, now)
	if err != nil {
		s.log.Error("failed to compute due counts", zap.Error(err))
		return
	}

	for _, digest := range digests {
		if digest.DueCount == 0 {
			continue
		}
		if err := s.stats.InsertDigest(ctx, models.ReviewDigest{
			UserID:      digest.UserID,
			DueCount:    digest.DueCount,
			GeneratedAt: now,
		}); err != nil {
			s.log.Error("failed to store review digest",
				zap.Int64("user_id", digest.UserID), zap.Error(err))
		}
	}
	s.log.Info("review digests generated", zap.Int("users", len(digests)))
}

// ExpireStaleAttempts closes quiz attempts that were started but never
// finished within the TTL.
func (s *Scheduler) ExpireStaleAttempts() {
	ctx := logger.NewContext(context.Background(), s.log)
	cutoff := s.now().Add(-s.attemptTTL)

	expired, err := s.quizzes.ExpireStale(ctx, cutoff)
	if err != nil {
		s.log.Error("failed to expire stale quiz attempts", zap.Error(err))
		return
	}
	if expired > 0 {
		s.log.Info("expired stale quiz attempts", zap.Int64("count", expired))
	}
}
