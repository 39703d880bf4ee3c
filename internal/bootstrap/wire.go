//go:build wireinject

// Package bootstrap provides dependency injection wiring using Google Wire.
package bootstrap

import (
	"github.com/google/wire"

	collectcore "github.com/mostafa-wahied/portracker-core/internal/core/collect"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/config/yaml"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/dockerengine"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/platformapi"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/resolver"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/sysnet"
)

// sourceBindings maps the orchestrator's narrow source interfaces onto
// the concrete infrastructure types that satisfy them.
var sourceBindings = wire.NewSet(
	wire.Bind(new(collectcore.ContainerEngine), new(*dockerengine.Client)),
	wire.Bind(new(collectcore.SocketSource), new(*sysnet.Enumerator)),
	wire.Bind(new(collectcore.OwnerResolver), new(*resolver.Resolver)),
	wire.Bind(new(collectcore.PlatformSource), new(*platformapi.Client)),
)

// InitializeApp builds the fully wired App for the agent, starting from a
// configuration file path.
//
// Params:
//   - configPath: path to the agent's YAML configuration file.
//
// Returns:
//   - *App: the application container with all dependencies wired.
//   - error: any error constructing a dependency (config load, container
//     engine, or socket enumerator).
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		yaml.New,
		LoadConfig,
		ProvideCache,
		ProvideContainerEngine,
		ProvideEnumerator,
		ProvideResolver,
		ProvidePlatformSource,
		ProvideLogger,
		ProvideOrchestrator,
		NewApp,
		sourceBindings,
	)
	return nil, nil
}
