package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/extlink/internal/logger"
	"github.com/MrSnakeDoc/extlink/internal/seed"
)

// Importer is what the reloader runs on each tick.
type Importer interface {
	Import(ctx context.Context) (seed.Result, error)
}

// SeedReloader re-imports the seed file periodically and on demand.
type SeedReloader struct {
	importer      Importer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
	manualTrigger chan struct{}
}

// NewSeedReloader creates a reloader. An interval of zero disables the
// ticker; manualTrigger still works.
func NewSeedReloader(importer Importer, log logger.Logger, interval time.Duration, manualTrigger chan struct{}) *SeedReloader {
	return &SeedReloader{
		importer:      importer,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports once synchronously, then keeps reloading in the background.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if _, err := sr.importer.Import(ctx); err != nil {
		close(sr.done)
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if sr.interval > 0 {
		ticker = time.NewTicker(sr.interval)
		tick = ticker.C
	}

	go func() {
		defer close(sr.done)
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				sr.reload(ctx)
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				sr.reload(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (sr *SeedReloader) reload(ctx context.Context) {
	if _, err := sr.importer.Import(ctx); err != nil {
		sr.logger.Error("failed to reload seed file", logger.Error(err))
	}
}

// Stop ends the background loop and waits for it to exit. Safe to call twice.
func (sr *SeedReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
	<-sr.done
}
