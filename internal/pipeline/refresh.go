package pipeline

import (
	"context"
	"time"
)

// Start loads once and begins the refresh loop. A zero RefreshInterval
// loads once without a loop.
func (p *Pipeline) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("pipeline started",
		"geo", p.cfg.Geo,
		"refresh_interval", p.cfg.RefreshInterval,
		"batch_policy", p.cfg.BatchPolicy,
	)

	return nil
}

// Stop shuts down the refresh loop and the extrapolator.
func (p *Pipeline) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.extrapolator.Stop()
		p.logger.Info("pipeline stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the refresh loop.
func (p *Pipeline) run() {
	defer p.wg.Done()

	// Load immediately on start.
	p.reload()

	if p.cfg.RefreshInterval <= 0 {
		return
	}

	ticker := time.NewTicker(p.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.reload()
		}
	}
}

func (p *Pipeline) reload() {
	if _, err := p.Load(p.ctx); err != nil {
		p.logger.Debug("load cycle aborted", "error", err)
	}
}
