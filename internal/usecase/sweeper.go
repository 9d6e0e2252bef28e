package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

type roomSweeper interface {
	SweepEmptyRooms(cutoff time.Time) int
}

// Sweeper periodically removes rooms left empty for longer than the retention window.
type Sweeper struct {
	logger    *slog.Logger
	clock     clockwork.Clock
	rooms     roomSweeper
	interval  time.Duration
	retention time.Duration
}

func NewSweeper(logger *slog.Logger, clock clockwork.Clock, rooms roomSweeper, interval, retention time.Duration) *Sweeper {
	return &Sweeper{
		logger:    logger.With("component", "sweeper"),
		clock:     clock,
		rooms:     rooms,
		interval:  interval,
		retention: retention,
	}
}

func (that *Sweeper) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	ticker := that.clock.NewTicker(that.interval)
	defer ticker.Stop()

	log.Info("sweeper started", "interval", that.interval, "retention", that.retention)

	for {
		select {
		case <-ctx.Done():
			log.Info("sweeper stopped")
			return nil
		case now := <-ticker.Chan():
			if removed := that.rooms.SweepEmptyRooms(now.Add(-that.retention)); removed > 0 {
				log.Info("removed empty rooms", "count", removed)
			}
		}
	}
}
