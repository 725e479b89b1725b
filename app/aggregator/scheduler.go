package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler drives periodic aggregation cycles. Stop waits for an in-flight
// cycle to finish and schedules nothing new afterwards.
type Scheduler struct {
	aggregator *Aggregator
	interval   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewScheduler(aggregator *Aggregator, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		aggregator: aggregator,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// warm the cache before the first tick
		s.runOnce()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) runOnce() {
	if _, err := s.aggregator.Run(s.ctx); err != nil {
		slog.Error("Scheduled aggregation cycle failed", "error", err)
	}
}
