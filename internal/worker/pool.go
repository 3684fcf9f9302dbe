package worker

import (
	"context"
	"sync"
	"time"

	"github.com/linguaflash/linguaflash/internal/logger"
	"go.uber.org/zap"
)

// Job is a unit of background work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs on a fixed set of workers.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *zap.Logger
}

func NewPool(workers, queueSize int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log = log.Named("worker-pool")
	log.Debug("creating worker pool",
		zap.Int("workers", workers), zap.Int("queue_size", queueSize))
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool", zap.Int("workers", p.workers))

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.With(zap.Int("worker_id", id))
			workerLog.Debug("worker started")

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down")
					return
				case job := <-p.jobs:
					if job == nil {
						workerLog.Debug("worker shutting down")
						return
					}

					jobLog := workerLog.With(zap.String("job", job.Name()))
					jobLog.Debug("starting job")
					start := time.Now()

					jobCtx := logger.NewContext(ctx, jobLog)
					if err := job.Run(jobCtx); err != nil {
						jobLog.Error("job failed",
							zap.Duration("elapsed", time.Since(start)), zap.Error(err))
					} else {
						jobLog.Info("job completed",
							zap.Duration("elapsed", time.Since(start)))
					}
				}
			}
		}(i + 1)
	}
}

func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}

func (p *Pool) Submit(job Job) {
	p.log.Debug("submitting job", zap.String("job", job.Name()))
	p.jobs <- job
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
