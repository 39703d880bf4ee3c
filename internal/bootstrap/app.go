// Package bootstrap provides dependency injection wiring using Google Wire.
// It isolates all dependency construction from the main entry point,
// allowing for a minimal main.go and better testability.
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	domaincollect "github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	domainconfig "github.com/mostafa-wahied/portracker-core/internal/domain/config"
	domainlogging "github.com/mostafa-wahied/portracker-core/internal/domain/logging"
	collectcore "github.com/mostafa-wahied/portracker-core/internal/core/collect"
)

// App holds all application dependencies injected by Wire. It is the
// root object of the dependency graph.
type App struct {
	// Config is the agent's runtime configuration.
	Config *domainconfig.Config
	// Logger receives structured collection-lifecycle events.
	Logger domainlogging.Logger
	// Orchestrator drives each collection pass.
	Orchestrator *collectcore.Orchestrator
}

// NewApp creates the App struct from its wired dependencies. This is the
// final provider in the dependency graph.
//
// Params:
//   - cfg: the agent's runtime configuration.
//   - logger: the configured logger.
//   - orchestrator: the collection orchestrator.
//
// Returns:
//   - *App: the application container with all dependencies wired.
func NewApp(cfg *domainconfig.Config, logger domainlogging.Logger, orchestrator *collectcore.Orchestrator) *App {
	return &App{Config: cfg, Logger: logger, Orchestrator: orchestrator}
}

// RunOnce runs exactly one collection pass and returns its report. Used
// by cmd/portracker's --once dry-run mode.
//
// Params:
//   - ctx: bounds the single pass.
//
// Returns:
//   - *domaincollect.Report: the assembled report.
//   - error: non-nil only when every source failed.
func (a *App) RunOnce(ctx context.Context) (*domaincollect.Report, error) {
	return a.Orchestrator.Collect(ctx)
}

// Run drives the agent's main loop: an immediate collection pass,
// followed by one pass per CollectInterval tick, until ctx is canceled
// or a termination signal arrives.
//
// Params:
//   - ctx: the parent context; Run installs its own signal-driven
//     cancellation layered on top.
//
// Returns:
//   - error: nil on a clean shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	a.Logger.Info("", "agent_started", "portracker agent started", map[string]any{
		"collect_interval": a.Config.CollectInterval.String(),
	})

	a.collectAndLog(ctx)

	ticker := time.NewTicker(a.Config.CollectInterval.Duration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.collectAndLog(ctx)
		case sig := <-sigCh:
			a.Logger.Info("", "agent_stopping", fmt.Sprintf("received signal %v", sig), nil)
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// collectAndLog runs one collection pass and logs its outcome: a fatal
// error is logged at error level, a degraded report at warn, and a clean
// report at info.
func (a *App) collectAndLog(ctx context.Context) {
	report, err := a.Orchestrator.Collect(ctx)
	if err != nil {
		a.Logger.Error("", "collect_failed", err.Error(), nil)
		return
	}
	if report.Degraded() {
		a.Logger.Warn("", "collect_degraded", report.Error, map[string]any{"ports": len(report.Ports)})
		return
	}
	a.Logger.Info("", "collect_ok", "collection pass complete", map[string]any{"ports": len(report.Ports)})
}

// PrintJSON writes report to w as indented JSON, for --once dry-run
// output.
//
// Params:
//   - report: the report to print.
//
// Returns:
//   - error: any JSON marshaling error.
func PrintJSON(report *domaincollect.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
