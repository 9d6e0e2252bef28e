package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const flushTimeout = 5 * time.Second

type statsRepo interface {
	Increment(ctx context.Context, counter string, delta int64) error
	GetAll(ctx context.Context) (map[string]int64, error)
}

type statEvent struct {
	counter string
	delta   int64
}

// StatsRecorder decouples counter updates from the callers: Record never blocks and the
// repository is written from Run.
type StatsRecorder struct {
	logger    *slog.Logger
	statsRepo statsRepo

	events chan statEvent
}

func NewStatsRecorder(logger *slog.Logger, statsRepo statsRepo, buffer int) *StatsRecorder {
	return &StatsRecorder{
		logger:    logger.With("component", "stats"),
		statsRepo: statsRepo,
		events:    make(chan statEvent, buffer),
	}
}

// Record queues an increment of counter. The event is dropped when the queue is full.
func (that *StatsRecorder) Record(counter string) {
	if counter == "" {
		return
	}

	select {
	case that.events <- statEvent{counter: counter, delta: 1}:
	default:
		that.logger.Warn("stats queue full, dropping event", "counter", counter)
	}
}

// Run writes queued events until ctx is cancelled, then flushes what is left.
func (that *StatsRecorder) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			that.flush()
			log.Info("stats recorder stopped")
			return nil
		case event := <-that.events:
			that.write(ctx, event)
		}
	}
}

func (that *StatsRecorder) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case event := <-that.events:
			that.write(ctx, event)
		default:
			return
		}
	}
}

func (that *StatsRecorder) write(ctx context.Context, event statEvent) {
	if err := that.statsRepo.Increment(ctx, event.counter, event.delta); err != nil {
		that.logger.Error("failed to record stat", "counter", event.counter, "error", err)
	}
}

func (that *StatsRecorder) Stats(ctx context.Context) (map[string]int64, error) {
	counters, err := that.statsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return counters, nil
}
