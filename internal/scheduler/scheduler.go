package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one run of a housekeeping job.
type Task func(ctx context.Context) error

// Scheduler runs named housekeeping jobs on fixed intervals until stopped.
type Scheduler struct {
	jobs   map[string]*Job // job name -> job
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger
}

type Job struct {
	name     string
	interval time.Duration
	task     Task
	ticker   *time.Ticker
	cancel   context.CancelFunc
}

func NewScheduler(log *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
		logger: log,
	}
}

// Stop cancels every job and waits for running tasks to return.
func (s *Scheduler) Stop() {
	s.cancel()

	s.mu.Lock()
	for _, job := range s.jobs {
		job.ticker.Stop()
		job.cancel()
	}
	s.jobs = make(map[string]*Job)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// AddJob starts running task every interval, replacing any job with the
// same name. The first run happens immediately.
func (s *Scheduler) AddJob(name string, interval time.Duration, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[name]; ok {
		existing.ticker.Stop()
		existing.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)

	job := &Job{
		name:     name,
		interval: interval,
		task:     task,
		ticker:   time.NewTicker(interval),
		cancel:   jobCancel,
	}

	s.jobs[name] = job

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(jobCtx, job)
		s.run(jobCtx, job)
	}()

	s.logger.Info("scheduled job", zap.String("job", name), zap.Duration("interval", interval))
}

func (s *Scheduler) run(ctx context.Context, job *Job) {
	defer job.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-job.ticker.C:
			s.execute(ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job *Job) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()

	if err := job.task(ctx); err != nil {
		s.logger.Warn("job failed", zap.String("job", job.name), zap.Error(err))
		return
	}

	s.logger.Debug("job finished", zap.String("job", job.name), zap.Duration("took", time.Since(start)))
}

// Status reports the scheduled job names and whether the scheduler runs.
func (s *Scheduler) Status() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}

	return map[string]interface{}{
		"jobs":    names,
		"running": s.ctx.Err() == nil,
	}
}
