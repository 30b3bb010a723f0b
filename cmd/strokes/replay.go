package main

import (
	"context"
	"fmt"
	"os"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/executor/replay"
	"github.com/entrhq/strokes/pkg/logging"
)

// runReplay replays every trace and fails when any expectation disagrees.
func runReplay(ctx context.Context, cfg *Config, manager *config.Manager, logger *logging.Logger) error {
	level, ok := replay.ParseLevel(cfg.ReportLevel)
	if !ok {
		return fmt.Errorf("unknown report level %q", cfg.ReportLevel)
	}
	reporter := replay.NewReporter(os.Stdout, level)
	runner := replay.NewRunner(manager, replay.WithEngineLogger(logger.Component("engine")))

	reporter.Header(fmt.Sprintf("strokes replay v%s", version))

	reports := make([]*replay.Report, 0, len(cfg.Traces))
	for _, path := range cfg.Traces {
		trace, err := replay.LoadTrace(path)
		if err != nil {
			return err
		}
		if trace.Name == "" {
			trace.Name = path
		}

		report, err := runner.Run(ctx, trace)
		if err != nil {
			return fmt.Errorf("replay %s: %w", path, err)
		}
		for _, w := range report.Warnings {
			logger.Warnf("%s: %s", path, w)
		}
		logger.Infof("replayed %s: %d gestures, %d failed in %s",
			path, len(report.Results), report.Failed(), report.Duration)
		reporter.Report(report)
		reports = append(reports, report)
	}
	reporter.Summary(reports...)

	failed := 0
	for _, r := range reports {
		failed += r.Failed()
	}
	if failed > 0 {
		return fmt.Errorf("%d gestures did not match their expectations", failed)
	}
	return nil
}
