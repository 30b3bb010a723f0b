package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/executor/browser"
	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/logging"
)

// runBrowser opens a Chromium window and executes gestures drawn in it
// until ctx is cancelled.
func runBrowser(ctx context.Context, cfg *Config, manager *config.Manager, logger *logging.Logger) error {
	engine := gesture.NewEngine(manager.Snapshot(), gesture.WithLogger(logger.Component("engine")))
	unsubscribe := manager.Subscribe(func(c gesture.Config) { engine.UpdateConfig(c) })
	defer unsubscribe()

	sess, err := browser.Launch(browser.Options{Headless: cfg.Headless})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warnf("failed to close browser: %v", cerr)
		}
	}()

	host := browser.NewHost(engine, sess.Executor(), logger.Component("browser"))
	if err := sess.Attach(host); err != nil {
		return err
	}
	if err := sess.Open(cfg.URL); err != nil {
		return fmt.Errorf("failed to open %s: %w", cfg.URL, err)
	}
	logger.Infof("browser ready at %s", cfg.URL)

	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
