package platformapi

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// defaultHTTPTimeout bounds a single JSON-RPC round trip. The 15 s whole-
// phase deadline from spec.md §4.4 is the caller's responsibility, applied
// to the ctx passed into Collect.
const defaultHTTPTimeout = 10 * time.Second

// Client is a JSON-RPC 2.0 client for the optional platform control plane.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New builds a platform API client. endpoint and apiKey are read verbatim
// from configuration; an empty apiKey means the platform phase is disabled,
// checked by Enabled.
//
// Params:
//   - endpoint: the platform RPC endpoint URL.
//   - apiKey: the bearer key used to authenticate every call.
//
// Returns:
//   - *Client: a ready-to-use client.
func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Enabled reports whether both an endpoint and a credential are configured.
//
// Returns:
//   - bool: true if the platform phase should run.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

// Result is everything the platform phase contributes to a collection pass.
type Result struct {
	// SystemInfo is the platform's richer view of host facts.
	SystemInfo collect.SystemInfo
	// Applications lists platform-native applications.
	Applications []collect.Application
	// Ports lists the port records the platform reported for those
	// applications, already attributed (Source: SourcePlatform).
	Ports []port.Record
	// VMs lists virtualized instances.
	VMs []collect.VM
}

// Collect runs the three platform RPC calls concurrently and assembles a
// Result. The caller is expected to bound ctx with the phase's hard
// deadline (spec.md §4.4: 15 s for the whole phase); Collect itself applies
// no additional timeout beyond that and the per-request client timeout.
//
// Params:
//   - ctx: the phase context, carrying the overall deadline.
//
// Returns:
//   - Result: the combined system info, applications, ports, and VMs.
//   - error: non-nil if any of the three calls failed; callers should
//     degrade gracefully rather than fail the whole collection pass.
func (c *Client) Collect(ctx context.Context) (Result, error) {
	var sysInfo systemInfoResult
	var apps appQueryResult
	var vms virtInstanceQueryResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.call(gctx, "system.info", nil, &sysInfo) })
	g.Go(func() error { return c.call(gctx, "app.query", nil, &apps) })
	g.Go(func() error { return c.call(gctx, "virt.instance.query", nil, &vms) })

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		SystemInfo:   convertSystemInfo(sysInfo),
		Applications: convertApps(apps.Apps),
		Ports:        convertAppPorts(apps.Apps),
		VMs:          convertVMs(vms.Instances),
	}, nil
}
