// Package worker runs the periodic weather fetch schedule.
package worker

import (
	"context"
	"time"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/pipeline"
)

// CycleRunner runs one fetch and alert cycle
type CycleRunner interface {
	RunCycle(ctx context.Context) (*pipeline.CycleResult, error)
}

// Scheduler invokes the alert pipeline on a fixed interval. An on-demand
// trigger racing a tick simply wins or loses the pipeline's in-flight gate;
// the losing side is skipped, never queued.
type Scheduler struct {
	pipeline CycleRunner
	interval time.Duration
	logger   *logging.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewScheduler creates a scheduler. Interval defaults to two hours.
func NewScheduler(p CycleRunner, interval time.Duration, logger *logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = 2 * time.Hour
	}
	return &Scheduler{
		pipeline: p,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the schedule loop in a goroutine
func (s *Scheduler) Start() {
	s.logger.WithField("interval", s.interval.String()).Info("Weather fetch scheduler started")
	go s.run()
}

// Stop signals the loop to exit and waits for it to finish
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("Weather fetch scheduler stopped")
}

func (s *Scheduler) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	result, err := s.pipeline.RunCycle(ctx)
	if err != nil {
		if apperrors.IsCategory(err, apperrors.CategoryConflict) {
			s.logger.Warn("Skipping scheduled cycle: another cycle is in flight")
			return
		}
		s.logger.WithError(err).Error("Scheduled pipeline cycle failed")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"cities":   result.CitiesProcessed,
		"readings": result.ReadingsStored,
		"alerts":   result.AlertsSent,
		"errors":   len(result.Errors),
	}).Info("Scheduled pipeline cycle finished")
}
