//go:build linux

package collect

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mostafa-wahied/portracker-core/internal/core/reconcile"
	"github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	"github.com/mostafa-wahied/portracker-core/internal/domain/collecterr"
	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/platformapi"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/selector"
)

// platformPhaseTimeout is the single hard deadline the platform source's
// RPC calls run under, independent of the rest of the collection pass.
const platformPhaseTimeout = 15 * time.Second

// Orchestrator drives one Collect() pass: it fans out to every source,
// cross-references their results, reconciles the port list, and emits the
// final report.
type Orchestrator struct {
	engine   ContainerEngine
	sockets  SocketSource
	resolver OwnerResolver
	platform PlatformSource
	facts    HostFacts
	cfg      *config.Config
	logger   logging.Logger
	host     selector.Collector
}

// New creates an Orchestrator wired to its sources, reading host facts
// from the real /proc filesystem. The host collector is detected once
// here via selector.Detect, since the host's identity does not change
// within a process's lifetime.
//
// Params:
//   - engine: the container engine adapter, nil if no engine is configured.
//   - sockets: the kernel socket enumerator.
//   - resolver: the process-ownership resolver.
//   - platform: the platform RPC adapter, nil or disabled if unconfigured.
//   - cfg: the agent's runtime configuration.
//   - logger: receives structured collection-lifecycle events.
//
// Returns:
//   - *Orchestrator: ready to run Collect.
func New(engine ContainerEngine, sockets SocketSource, resolver OwnerResolver, platform PlatformSource, cfg *config.Config, logger logging.Logger) *Orchestrator {
	return NewWithHostFacts(engine, sockets, resolver, platform, kernelHostFacts{}, cfg, logger)
}

// NewWithHostFacts creates an Orchestrator with an explicit HostFacts
// source, for tests that substitute a fixture in place of the real host's
// /proc filesystem.
func NewWithHostFacts(engine ContainerEngine, sockets SocketSource, resolver OwnerResolver, platform PlatformSource, facts HostFacts, cfg *config.Config, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		engine:   engine,
		sockets:  sockets,
		resolver: resolver,
		platform: platform,
		facts:    facts,
		cfg:      cfg,
		logger:   logger,
		host:     selector.Detect(cfg),
	}
}

// platformOutcome carries the platform phase's result back to the main
// drive once it completes or the caller stops waiting.
type platformOutcome struct {
	ran    bool
	result platformapi.Result
	err    error
}

// Collect runs one full collection pass: the platform source is started
// fire-and-forget under its own 15s deadline; system info, the container
// source, and the socket source run concurrently; their outputs are
// cross-referenced and reconciled; the platform phase is then awaited (or
// the pass proceeds without it) and merged into the final report.
//
// Params:
//   - ctx: bounds the whole pass. A deadline shorter than
//     platformPhaseTimeout bounds the platform phase too.
//
// Returns:
//   - *collect.Report: the assembled report.
//   - error: non-nil only when every source failed and the report would
//     carry no data (collecterr.Fatal, wrapping collecterr.ErrNoSourceProduced).
func (o *Orchestrator) Collect(ctx context.Context) (*collect.Report, error) {
	platformCh := o.startPlatformPhase(ctx)

	g, gctx := errgroup.WithContext(ctx)

	var sysInfo collect.SystemInfo
	g.Go(func() error {
		sysInfo = o.facts.SystemInfo(gctx)
		return nil
	})

	var containers []*container.Container
	var hostProcs map[string][]int
	g.Go(func() error {
		containers, hostProcs = o.collectContainers(gctx)
		return nil
	})

	var systemPorts []port.Record
	g.Go(func() error {
		systemPorts = o.collectSystemPorts(gctx)
		return nil
	})

	var starts map[int]time.Time
	g.Go(func() error {
		starts = o.facts.ProcessStartTimes(gctx)
		return nil
	})

	_ = g.Wait()

	pidToContainer, hostProcToContainer, creations := buildContainerMaps(containers, hostProcs)

	reconciled := reconcile.Reconcile(reconcile.Input{
		DockerPorts:         expandContainerPorts(containers),
		SystemPorts:         systemPorts,
		Containers:          containers,
		PIDToContainer:      pidToContainer,
		HostProcToContainer: hostProcToContainer,
		ContainerCreations:  creations,
		ProcessStartTimes:   starts,
		SelfPort:            o.cfg.ListenPort,
		SelfContainerName:   o.cfg.SelfContainerName,
		Filter: reconcile.FilterPolicy{
			IncludeUDP:       o.cfg.IncludeUDP,
			IncludeSystemUDP: o.cfg.IncludeSystemUDP,
		},
	})

	platform := o.awaitPlatformPhase(ctx, platformCh)

	report := assembleReport(o.host, sysInfo, reconciled, platform)
	if len(report.Ports) == 0 && len(report.Applications) == 0 && len(report.VMs) == 0 {
		return nil, collecterr.New(collecterr.Fatal, "collect", collecterr.ErrNoSourceProduced)
	}
	return report, nil
}

// startPlatformPhase launches the platform source, if configured, under
// its own hard deadline. The returned channel carries exactly one
// platformOutcome.
func (o *Orchestrator) startPlatformPhase(ctx context.Context) <-chan platformOutcome {
	ch := make(chan platformOutcome, 1)
	if o.platform == nil || !o.platform.Enabled() {
		ch <- platformOutcome{}
		return ch
	}

	go func() {
		pctx, cancel := context.WithTimeout(ctx, platformPhaseTimeout)
		defer cancel()
		res, err := o.platform.Collect(pctx)
		ch <- platformOutcome{ran: true, result: res, err: err}
	}()
	return ch
}

// awaitPlatformPhase waits for the platform phase to finish or for ctx to
// be done, whichever comes first. A platform failure is logged as
// collecterr.Timeout or collecterr.SourceUnavailable and degrades the
// report rather than failing it.
func (o *Orchestrator) awaitPlatformPhase(ctx context.Context, ch <-chan platformOutcome) platformOutcome {
	select {
	case out := <-ch:
		if out.ran && out.err != nil {
			kind := collecterr.SourceUnavailable
			if errors.Is(out.err, context.DeadlineExceeded) {
				kind = collecterr.Timeout
			}
			o.logSourceFailure("platformapi", kind, out.err)
		}
		return out
	case <-ctx.Done():
		return platformOutcome{err: ctx.Err()}
	}
}

// collectContainers lists and fully inspects every container. A listing
// failure is logged and degrades to an empty container set.
func (o *Orchestrator) collectContainers(ctx context.Context) ([]*container.Container, map[string][]int) {
	if o.engine == nil {
		return nil, nil
	}
	summaries, err := o.engine.ListContainers(ctx, false)
	if err != nil {
		o.logSourceFailure("dockerengine", collecterr.SourceUnavailable, err)
		return nil, nil
	}
	return inspectAll(ctx, o.engine, summaries, o.logger)
}

// collectSystemPorts enumerates and resolves kernel listeners. An
// enumeration failure is logged and degrades to an empty port list.
func (o *Orchestrator) collectSystemPorts(ctx context.Context) []port.Record {
	if o.sockets == nil {
		return nil
	}
	listeners, err := o.sockets.EnumerateListeners(o.cfg.IncludeUDP)
	if err != nil {
		o.logSourceFailure("sysnet", collecterr.SourceUnavailable, err)
		return nil
	}
	if o.resolver != nil {
		listeners = o.resolver.ResolveOwners(ctx, listeners)
	}
	return toSystemRecords(listeners)
}

func (o *Orchestrator) logSourceFailure(source string, kind collecterr.Kind, err error) {
	if o.logger == nil {
		return
	}
	cerr := collecterr.New(kind, source, err)
	o.logger.Warn("collect", "source_degraded", cerr.Error(), nil)
}
