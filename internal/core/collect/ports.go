//go:build linux

// Package collect implements the orchestrator that drives one collection
// pass: it fans out to the container, socket, and platform sources, builds
// the cross-reference maps the reconciler needs, and assembles the final
// report.
package collect

import (
	"context"

	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/platformapi"
)

// ContainerEngine is the subset of dockerengine.Client the orchestrator
// depends on, narrowed to an interface so tests can substitute a fake.
type ContainerEngine interface {
	ListContainers(ctx context.Context, all bool) ([]*container.Container, error)
	InspectContainer(ctx context.Context, id string, withSize bool) (*container.Container, error)
	ContainerProcesses(ctx context.Context, id string) ([]int, error)
}

// SocketSource is the subset of sysnet.Enumerator the orchestrator depends
// on.
type SocketSource interface {
	EnumerateListeners(includeUDP bool) ([]socket.Listener, error)
}

// OwnerResolver is the subset of resolver.Resolver the orchestrator
// depends on.
type OwnerResolver interface {
	ResolveOwners(ctx context.Context, listeners []socket.Listener) []socket.Listener
}

// PlatformSource is the subset of platformapi.Client the orchestrator
// depends on.
type PlatformSource interface {
	Enabled() bool
	Collect(ctx context.Context) (platformapi.Result, error)
}
