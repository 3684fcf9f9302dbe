package services

import (
	"context"
	"sync"
	"time"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/importer"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/worker"
	"go.uber.org/zap"
)

// Import run statuses.
const (
	ImportPending   = "pending"
	ImportRunning   = "running"
	ImportCompleted = "completed"
	ImportFailed    = "failed"
)

// ImportRun is the tracked state of one background spreadsheet import.
type ImportRun struct {
	ID         int64            `json:"id"`
	FilePath   string           `json:"file_path"`
	Status     string           `json:"status"`
	Result     *importer.Result `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
}

// ImportService runs vocabulary spreadsheet imports on the worker pool and
// tracks their progress.
type ImportService interface {
	// Enqueue schedules an import of the given file and returns the run to
	// poll for progress.
	Enqueue(ctx context.Context, cfg importer.Config) (*ImportRun, error)
	Get(ctx context.Context, runID int64) (*ImportRun, error)
	// Run executes one enqueued import. Called by the worker pool.
	Run(ctx context.Context, runID int64) error
}

type importService struct {
	importer *importer.Importer
	pool     *worker.Pool
	now      func() time.Time

	mu     sync.Mutex
	nextID int64
	runs   map[int64]*ImportRun
	// configs holds the pending config per run until the worker picks it up
	configs map[int64]importer.Config
}

// NewImportService creates a new ImportService backed by the given pool.
func NewImportService(imp *importer.Importer, pool *worker.Pool) ImportService {
	return &importService{
		importer: imp,
		pool:     pool,
		now:      func() time.Time { return time.Now().UTC() },
		nextID:   1,
		runs:     make(map[int64]*ImportRun),
		configs:  make(map[int64]importer.Config),
	}
}

func (s *importService) Enqueue(ctx context.Context, cfg importer.Config) (*ImportRun, error) {
	if cfg.FilePath == "" {
		return nil, errors.NewValidationError("file_path", "cannot be empty")
	}

	s.mu.Lock()
	run := &ImportRun{
		ID:        s.nextID,
		FilePath:  cfg.FilePath,
		Status:    ImportPending,
		StartedAt: s.now(),
	}
	s.nextID++
	s.runs[run.ID] = run
	s.configs[run.ID] = cfg
	s.mu.Unlock()

	s.pool.Submit(&worker.ImportWordsJob{Imports: s, RunID: run.ID})

	logger.FromContext(ctx).Info("import enqueued",
		zap.Int64("run_id", run.ID), zap.String("file", cfg.FilePath))
	return s.snapshot(run.ID), nil
}

func (s *importService) Get(ctx context.Context, runID int64) (*ImportRun, error) {
	run := s.snapshot(runID)
	if run == nil {
		return nil, errors.NewNotFoundError("import run", runID)
	}
	return run, nil
}

func (s *importService) Run(ctx context.Context, runID int64) error {
	s.mu.Lock()
	run, ok := s.runs[runID]
	if !ok {
		s.mu.Unlock()
		return errors.NewNotFoundError("import run", runID)
	}
	cfg := s.configs[runID]
	delete(s.configs, runID)
	run.Status = ImportRunning
	s.mu.Unlock()

	result, err := s.importer.Import(ctx, cfg)

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	run.FinishedAt = &now
	if err != nil {
		run.Status = ImportFailed
		run.Error = err.Error()
		return err
	}
	run.Status = ImportCompleted
	run.Result = result
	return nil
}

// snapshot copies the run so callers never see concurrent mutations.
func (s *importService) snapshot(runID int64) *ImportRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil
	}
	copied := *run
	return &copied
}
