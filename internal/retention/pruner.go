package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/aevon-lab/chartline/internal/core/storage"
)

// RecordDeleter is the slice of storage.RecordStore the pruner needs.
type RecordDeleter interface {
	DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

var _ RecordDeleter = (storage.RecordStore)(nil)

// Pruner deletes records that have fallen out of every chart window.
// Each tick is independent: it computes a fresh cutoff and issues one delete.
type Pruner struct {
	store    RecordDeleter
	interval time.Duration
	days     int
	nowFn    func() time.Time
}

// NewPruner creates a pruner keeping the last days days of records.
func NewPruner(store RecordDeleter, interval time.Duration, days int) *Pruner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Pruner{
		store:    store,
		interval: interval,
		days:     days,
		nowFn:    time.Now,
	}
}

// Start prunes once immediately and then on every tick.
// Runs until context is cancelled.
func (p *Pruner) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("[Pruner] Starting retention pruner",
		"interval", p.interval,
		"retention_days", p.days,
	)

	p.PruneOnce(ctx)

	for {
		select {
		case <-ticker.C:
			p.PruneOnce(ctx)
		case <-ctx.Done():
			// No final prune on shutdown.
			slog.Info("[Pruner] Stopping (context cancelled)")
			return nil
		}
	}
}

// Cutoff is the instant before which records are deleted.
func (p *Pruner) Cutoff() time.Time {
	return p.nowFn().AddDate(0, 0, -p.days)
}

// PruneOnce runs a single delete and returns the number of records removed.
// Failures are logged; the next tick retries.
func (p *Pruner) PruneOnce(ctx context.Context) int64 {
	cutoff := p.Cutoff()
	deleted, err := p.store.DeleteRecordsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("[Pruner] Delete failed", "error", err, "cutoff", cutoff)
		return 0
	}
	if deleted > 0 {
		slog.Info("[Pruner] Pruned expired records", "deleted", deleted, "cutoff", cutoff)
	} else {
		slog.Debug("[Pruner] Nothing to prune", "cutoff", cutoff)
	}
	return deleted
}
