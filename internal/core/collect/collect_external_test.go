//go:build linux

package collect_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	collectcore "github.com/mostafa-wahied/portracker-core/internal/core/collect"
	"github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/platformapi"
)

// fixtureHostFacts implements collectcore.HostFacts with literal data, so
// tests never touch the real host's /proc filesystem.
type fixtureHostFacts struct {
	info collect.SystemInfo
}

func (f fixtureHostFacts) SystemInfo(_ context.Context) collect.SystemInfo {
	return f.info
}

func (fixtureHostFacts) ProcessStartTimes(_ context.Context) map[int]time.Time {
	return map[int]time.Time{}
}

// fakeEngine implements collectcore.ContainerEngine for tests.
type fakeEngine struct {
	summaries   []*container.Container
	inspected   map[string]*container.Container
	listErr     error
	inspectErrs map[string]error
}

func (f *fakeEngine) ListContainers(_ context.Context, _ bool) ([]*container.Container, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.summaries, nil
}

func (f *fakeEngine) InspectContainer(_ context.Context, id string, _ bool) (*container.Container, error) {
	if err, ok := f.inspectErrs[id]; ok {
		return nil, err
	}
	return f.inspected[id], nil
}

func (f *fakeEngine) ContainerProcesses(_ context.Context, _ string) ([]int, error) {
	return nil, nil
}

// fakeSockets implements collectcore.SocketSource.
type fakeSockets struct {
	listeners []socket.Listener
	err       error
}

func (f *fakeSockets) EnumerateListeners(_ bool) ([]socket.Listener, error) {
	return f.listeners, f.err
}

// fakeResolver implements collectcore.OwnerResolver as a no-op passthrough.
type fakeResolver struct{}

func (fakeResolver) ResolveOwners(_ context.Context, listeners []socket.Listener) []socket.Listener {
	return listeners
}

// fakePlatform implements collectcore.PlatformSource.
type fakePlatform struct {
	enabled bool
	result  platformapi.Result
	err     error
}

func (f *fakePlatform) Enabled() bool { return f.enabled }

func (f *fakePlatform) Collect(_ context.Context) (platformapi.Result, error) {
	return f.result, f.err
}

func newTestConfig() *config.Config {
	cfg := config.New()
	cfg.DisableCache = true
	return cfg
}

func TestCollect_MergesContainerAndSystemPorts(t *testing.T) {
	web := container.New("webcontainerid01")
	web.Names = []string{"web"}
	web.PID = 4242
	full := container.New("webcontainerid01")
	full.Names = []string{"web"}
	full.PID = 4242
	full.NetworkMode = "bridge"
	full.PortBindings["80/tcp"] = []container.PortBinding{{HostIP: "0.0.0.0", HostPort: 8080}}

	engine := &fakeEngine{
		summaries: []*container.Container{web},
		inspected: map[string]*container.Container{"webcontainerid01": full},
	}
	sockets := &fakeSockets{listeners: []socket.Listener{
		{Protocol: "tcp", HostIP: "0.0.0.0", HostPort: 22, PID: 1, Owner: "sshd"},
	}}

	orch := collectcore.NewWithHostFacts(engine, sockets, fakeResolver{}, &fakePlatform{enabled: false}, fixtureHostFacts{}, newTestConfig(), nil)

	report, err := orch.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Ports, 2)
	assert.False(t, report.EnhancedFeaturesEnabled)
	assert.False(t, report.Degraded())
}

func TestCollect_PlatformDisabledLeavesReportUndegraded(t *testing.T) {
	engine := &fakeEngine{summaries: nil}
	sockets := &fakeSockets{listeners: []socket.Listener{
		{Protocol: "tcp", HostIP: "0.0.0.0", HostPort: 22, PID: 1, Owner: "sshd"},
	}}

	orch := collectcore.NewWithHostFacts(engine, sockets, fakeResolver{}, &fakePlatform{enabled: false}, fixtureHostFacts{}, newTestConfig(), nil)

	report, err := orch.Collect(context.Background())
	require.NoError(t, err)
	assert.False(t, report.EnhancedFeaturesEnabled)
	assert.Empty(t, report.Error)
}

func TestCollect_PlatformFailureDegradesReport(t *testing.T) {
	engine := &fakeEngine{summaries: nil}
	sockets := &fakeSockets{listeners: []socket.Listener{
		{Protocol: "tcp", HostIP: "0.0.0.0", HostPort: 22, PID: 1, Owner: "sshd"},
	}}
	platform := &fakePlatform{enabled: true, err: errors.New("rpc timeout")}

	orch := collectcore.NewWithHostFacts(engine, sockets, fakeResolver{}, platform, fixtureHostFacts{}, newTestConfig(), nil)

	report, err := orch.Collect(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Degraded())
	assert.False(t, report.EnhancedFeaturesEnabled)
}

func TestCollect_PlatformSuccessEnrichesReport(t *testing.T) {
	engine := &fakeEngine{summaries: nil}
	sockets := &fakeSockets{}
	platform := &fakePlatform{
		enabled: true,
		result: platformapi.Result{
			Applications: []collect.Application{{ID: "app1", Name: "nginx", State: "running"}},
		},
	}

	orch := collectcore.NewWithHostFacts(engine, sockets, fakeResolver{}, platform, fixtureHostFacts{}, newTestConfig(), nil)

	report, err := orch.Collect(context.Background())
	require.NoError(t, err)
	assert.True(t, report.EnhancedFeaturesEnabled)
	require.Len(t, report.Applications, 1)
	assert.Equal(t, "nginx", report.Applications[0].Name)
}

func TestCollect_FatalWhenNoSourceProducesData(t *testing.T) {
	engine := &fakeEngine{summaries: nil}
	sockets := &fakeSockets{}

	orch := collectcore.NewWithHostFacts(engine, sockets, fakeResolver{}, &fakePlatform{enabled: false}, fixtureHostFacts{}, newTestConfig(), nil)

	report, err := orch.Collect(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestCollect_ContainerInspectFailureFallsBackToSummary(t *testing.T) {
	web := container.New("abc123def456gh")
	web.Names = []string{"web"}

	engine := &fakeEngine{
		summaries:   []*container.Container{web},
		inspected:   map[string]*container.Container{},
		inspectErrs: map[string]error{"abc123def456gh": errors.New("inspect failed")},
	}
	sockets := &fakeSockets{}

	orch := collectcore.NewWithHostFacts(engine, sockets, fakeResolver{}, &fakePlatform{enabled: false}, fixtureHostFacts{}, newTestConfig(), nil)

	report, err := orch.Collect(context.Background())
	require.Error(t, err, "summary-only container has no ports, so this still degrades to fatal")
	assert.Nil(t, report)
}
