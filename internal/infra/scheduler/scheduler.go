package scheduler

import (
	"context"
	"sync"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Poller is the job driven by the scheduler.
type Poller interface {
	Poll(ctx context.Context) app.Outcome
}

// PollScheduler triggers the poller once at start and then every period.
// Cycles never overlap: a tick that arrives while a cycle is still running is skipped.
type PollScheduler struct {
	cronEngine *cron.Cron
	poller     Poller
	logger     *logrus.Entry
	period     time.Duration
	job        cron.Job

	ctx     context.Context
	cancel  context.CancelFunc
	initial sync.WaitGroup
}

func NewPollScheduler(poller Poller, period time.Duration, logger *logrus.Entry) *PollScheduler {
	cronLogger := cron.PrintfLogger(logger)
	s := &PollScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local), cron.WithLogger(cronLogger)),
		poller:     poller,
		logger:     logger,
		period:     period,
	}
	s.job = cron.NewChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	).Then(cron.FuncJob(s.runCycle))
	return s
}

// Start schedules the poller and runs the first cycle right away.
// ctx bounds every cycle; Stop cancels it once running cycles are done.
func (s *PollScheduler) Start(ctx context.Context) {
	s.logger.WithField("period", s.period).Info("Starting poll scheduler...")
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.cronEngine.Schedule(cron.Every(s.period), s.job)
	s.cronEngine.Start()

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.job.Run()
	}()
	s.logger.Info("Poll scheduler started.")
}

func (s *PollScheduler) runCycle() {
	ctx, cancel := context.WithTimeout(s.ctx, s.period)
	defer cancel()

	start := time.Now()
	outcome := s.poller.Poll(ctx)
	s.logger.WithFields(logrus.Fields{
		"outcome":  outcome,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("Poll cycle completed")
}

// Stop waits for a running cycle to finish and then cancels the base context.
func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	ctx := s.cronEngine.Stop() // Stops new ticks, waits for running jobs.
	<-ctx.Done()
	s.initial.Wait()
	if s.cancel != nil {
		s.cancel()
	}
	s.logger.Info("Poll scheduler gracefully stopped.")
}
