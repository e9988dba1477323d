package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vinayprograms/edinburgh/internal/server"
	"github.com/vinayprograms/edinburgh/internal/telemetry"
)

// Run executes the serve command.
func (c *ServeCmd) Run(rt *runtime) error {
	cfg, err := rt.config()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if c.NATS != "" {
		cfg.NATS.URL = c.NATS
	}

	logger, err := rt.log()
	if err != nil {
		return err
	}
	shutdown, err := telemetry.Setup(rt.ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		// rt.ctx is already cancelled here; give the exporter its own deadline
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("telemetry shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// the registry picks its tracer from the provider installed above
	reg, err := rt.registry()
	if err != nil {
		return err
	}
	catalog, err := rt.catalog()
	if err != nil {
		return err
	}
	if err := catalog.Validate(reg); err != nil {
		logger.Warn("agent definitions reference missing tools", map[string]interface{}{"error": err.Error()})
	}

	g, ctx := errgroup.WithContext(rt.ctx)
	g.Go(func() error {
		return server.New(reg, catalog, logger.WithComponent("http")).ListenAndServe(ctx, cfg.Server.Addr)
	})
	if cfg.NATS.URL != "" {
		g.Go(func() error {
			return server.NewResponder(reg, cfg.NATS.SubjectPrefix, logger.WithComponent("nats")).Serve(ctx, cfg.NATS.URL)
		})
	}
	return g.Wait()
}
