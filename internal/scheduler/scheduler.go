// Package scheduler drives unattended operation. Each tick runs the
// article pipeline and a full featured-products refresh side by side.
package scheduler

import (
	"context"
	"time"

	"coolfinds/internal/core"
	"coolfinds/internal/logger"

	"golang.org/x/sync/errgroup"
)

// AutonomousRunner executes one article generation run.
type AutonomousRunner interface {
	Run(ctx context.Context) core.RunResult
}

// ProductGenerator produces a fresh featured-products batch.
type ProductGenerator interface {
	Generate(ctx context.Context) []core.FeaturedProduct
}

// ProductStore replaces the stored featured-products batch.
type ProductStore interface {
	PutFeaturedProducts(products []core.FeaturedProduct) error
}

// Scheduler ticks at a fixed interval. Both jobs on a tick run
// concurrently and a failure in one never cancels the other.
type Scheduler struct {
	interval time.Duration
	runner   AutonomousRunner
	products ProductGenerator
	store    ProductStore
	stop     chan struct{}
}

// New builds a scheduler. Intervals below one minute are raised to one
// minute to keep a misconfigured deployment from hammering the models.
func New(interval time.Duration, runner AutonomousRunner, products ProductGenerator, store ProductStore) *Scheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Scheduler{
		interval: interval,
		runner:   runner,
		products: products,
		store:    store,
	}
}

// Start launches the ticking goroutine. Calling Start twice is a no-op.
// The goroutine exits when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})

	// The goroutine selects on a local copy so Stop can clear the field
	// without racing the ticking loop.
	stop := s.stop
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		logger.Info("Scheduler started", "interval", s.interval.String())
		for {
			select {
			case t := <-ticker.C:
				s.Tick(ctx, t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the ticking goroutine. Safe to call before Start or twice.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}

// Tick runs one scheduled cycle and waits for both jobs to finish.
func (s *Scheduler) Tick(ctx context.Context, at time.Time) {
	logger.Info("Scheduled cycle starting", "at", at.Format(time.RFC3339))

	var g errgroup.Group
	g.Go(func() error {
		result := s.runner.Run(ctx)
		if !result.Success {
			logger.Warn("Scheduled article run failed", "error", result.Error)
			return nil
		}
		logger.Info("Scheduled article run finished", "article_id", result.ArticleID, "topic", result.Topic)
		return nil
	})
	g.Go(func() error {
		// The batch wholesale-replaces the stored one, an empty batch
		// included.
		batch := s.products.Generate(ctx)
		if err := s.store.PutFeaturedProducts(batch); err != nil {
			logger.Error("Failed to store refreshed products", err)
			return nil
		}
		logger.Info("Featured products refreshed", "count", len(batch))
		return nil
	})
	_ = g.Wait()
}
