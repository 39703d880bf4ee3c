// Package bootstrap provides Wire dependency injection for the agent.
// This file contains custom providers that require more than a direct
// constructor call.
package bootstrap

import (
	"fmt"
	"os"

	collectcore "github.com/mostafa-wahied/portracker-core/internal/core/collect"
	domainconfig "github.com/mostafa-wahied/portracker-core/internal/domain/config"
	domainlogging "github.com/mostafa-wahied/portracker-core/internal/domain/logging"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/config/yaml"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/dockerengine"
	infralogging "github.com/mostafa-wahied/portracker-core/internal/infrastructure/logging"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/platformapi"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/resolver"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/sysnet"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/ttlcache"
)

// LoadConfig loads the agent configuration from the given path using the
// YAML loader, then applies environment-variable overrides.
//
// Params:
//   - loader: the YAML configuration loader.
//   - configPath: the path to the configuration file.
//
// Returns:
//   - *domainconfig.Config: the loaded configuration.
//   - error: any error during loading.
func LoadConfig(loader *yaml.Loader, configPath string) (*domainconfig.Config, error) {
	return loader.Load(configPath)
}

// ProvideCache creates the shared TTL cache used by every upstream
// source, honoring the configuration's disable flag.
//
// Params:
//   - cfg: the agent's runtime configuration.
//
// Returns:
//   - *ttlcache.Cache: the shared cache instance.
func ProvideCache(cfg *domainconfig.Config) *ttlcache.Cache {
	return ttlcache.New(cfg.DisableCache)
}

// ProvideContainerEngine creates the container-engine client from the
// configured endpoint and TLS settings.
//
// Params:
//   - cfg: the agent's runtime configuration.
//   - cache: the shared TTL cache.
//
// Returns:
//   - *dockerengine.Client: the created client.
//   - error: non-nil only if the endpoint URI could not be parsed.
func ProvideContainerEngine(cfg *domainconfig.Config, cache *ttlcache.Cache) (*dockerengine.Client, error) {
	client, err := dockerengine.New(cfg.ContainerEndpoint, cfg.TLSVerify, cfg.CertPath, cache)
	if err != nil {
		return nil, fmt.Errorf("building container engine client: %w", err)
	}
	return client, nil
}

// ProvideEnumerator creates the kernel socket-table enumerator, resolving
// a usable proc root up front.
//
// Params:
//   - cfg: the agent's runtime configuration.
//
// Returns:
//   - *sysnet.Enumerator: ready to enumerate listening sockets.
//   - error: non-nil if no proc root candidate is usable.
func ProvideEnumerator(cfg *domainconfig.Config) (*sysnet.Enumerator, error) {
	enumerator, err := sysnet.NewEnumerator(cfg.ProcRoot)
	if err != nil {
		return nil, fmt.Errorf("building socket enumerator: %w", err)
	}
	return enumerator, nil
}

// ProvideResolver creates the process-ownership resolver, scanning the
// same proc root the enumerator resolved to.
//
// Params:
//   - enumerator: the socket enumerator, already bound to a proc root.
//   - cache: the shared TTL cache.
//
// Returns:
//   - *resolver.Resolver: ready to resolve listener ownership.
func ProvideResolver(enumerator *sysnet.Enumerator, cache *ttlcache.Cache) *resolver.Resolver {
	return resolver.New([]string{enumerator.ProcRoot()}, cache)
}

// ProvidePlatformSource creates the platform RPC client. The client is a
// no-op (Enabled() == false) when no API key is configured.
//
// Params:
//   - cfg: the agent's runtime configuration.
//
// Returns:
//   - *platformapi.Client: the created client.
func ProvidePlatformSource(cfg *domainconfig.Config) *platformapi.Client {
	return platformapi.New(cfg.PlatformEndpoint, cfg.PlatformAPIKey)
}

// ProvideLogger builds the structured logger from configuration, falling
// back to a console-only default if the configured JSON file writer
// could not be opened (there is no logger yet to report that failure
// through, so it goes to stderr directly).
//
// Params:
//   - cfg: the agent's runtime configuration.
//
// Returns:
//   - domainlogging.Logger: the configured logger, or a console-only
//     fallback on build failure.
func ProvideLogger(cfg *domainconfig.Config) domainlogging.Logger {
	logger, err := infralogging.BuildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to build logger: %v\n", err)
		return infralogging.DefaultLogger()
	}
	return logger
}

// ProvideOrchestrator wires the four collection sources, configuration,
// and logger into an Orchestrator ready to run Collect passes.
//
// Params:
//   - engine: the container engine source.
//   - enumerator: the kernel socket source.
//   - resolver: the process-ownership resolver.
//   - platform: the platform RPC source.
//   - cfg: the agent's runtime configuration.
//   - logger: receives structured collection-lifecycle events.
//
// Returns:
//   - *collectcore.Orchestrator: ready to run Collect.
func ProvideOrchestrator(
	engine *dockerengine.Client,
	enumerator *sysnet.Enumerator,
	resolverSrc *resolver.Resolver,
	platform *platformapi.Client,
	cfg *domainconfig.Config,
	logger domainlogging.Logger,
) *collectcore.Orchestrator {
	return collectcore.New(engine, enumerator, resolverSrc, platform, cfg, logger)
}
