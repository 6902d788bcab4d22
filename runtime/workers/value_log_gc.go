package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gcDiscardRatio = 0.5

// ValueLogCollector is the part of *badger.DB the GC worker needs.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// ValueLogGCWorker reclaims space left in the value log by expired routes.
type ValueLogGCWorker struct {
	log      *slog.Logger
	db       ValueLogCollector
	interval time.Duration
}

func NewValueLogGCWorker(log *slog.Logger, db ValueLogCollector, interval time.Duration) *ValueLogGCWorker {
	return &ValueLogGCWorker{log: log, db: db, interval: interval}
}

func (w *ValueLogGCWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.collect(ctx)
		}
	}
}

// collect runs GC until badger has nothing left to rewrite.
func (w *ValueLogGCWorker) collect(ctx context.Context) {
	rewrites := 0
	for ctx.Err() == nil {
		err := w.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			rewrites++
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
			w.log.Error("Value log GC failed", "error", err)
		}
		break
	}
	if rewrites > 0 {
		w.log.Debug("Value log GC done", "rewrites", rewrites)
	}
}
