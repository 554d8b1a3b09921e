package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/quirino-git/fbs-plan/pkg/config"
)

// Refresher rebuilds the cached plan on a cron schedule so the cached
// endpoint stays fresh without a request paying for a feed load.
type Refresher struct {
	cron *cron.Cron
	svc  PlanService
	cfg  *config.Config
}

func NewRefresher(svc PlanService, cfg *config.Config) *Refresher {
	return &Refresher{
		svc: svc,
		cfg: cfg,
	}
}

func (r *Refresher) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(r.cfg.RefreshCron, r.refresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.cfg.RefreshCron, err)
	}
	c.Start()
	r.cron = c

	// warm the cache immediately instead of waiting for the first tick
	go r.refresh()

	r.cfg.Log.Info("Plan refresh scheduled", "cron", r.cfg.RefreshCron)
	return nil
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RequestTimeout)
	defer cancel()

	if _, err := r.svc.BuildPlan(ctx); err != nil {
		r.cfg.Log.Warn("Scheduled plan refresh failed, keeping last cached plan", "error", err)
	}
}

func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}
