// Package yaml provides YAML configuration loading infrastructure.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/shared"
)

// envPrefix namespaces every environment-variable override this loader
// recognizes, so a deployment can tweak one field without shipping a new
// config file.
const envPrefix string = "PORTRACKER_"

// ErrNoConfigurationLoaded is returned when Reload is called without a prior Load.
var ErrNoConfigurationLoaded error = errors.New("no configuration loaded")

// Loader loads agent configuration from a YAML file, supporting reload from
// the last successfully loaded path.
type Loader struct {
	lastPath string
}

// New creates a new YAML configuration loader.
//
// Returns:
//   - *Loader: a new loader instance ready to load configurations.
func New() *Loader {
	return &Loader{}
}

// Load reads and parses a configuration file from the given path.
//
// Params:
//   - path: absolute or relative path to the YAML configuration file.
//
// Returns:
//   - *config.Config: parsed configuration, defaults applied for unset fields.
//   - error: any error during reading or parsing.
func (l *Loader) Load(path string) (*config.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - config path is trusted input
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return nil, err
	}

	ApplyEnvOverrides(cfg)

	l.lastPath = path

	return cfg, nil
}

// Parse parses configuration from YAML bytes.
//
// Params:
//   - data: raw YAML configuration bytes.
//
// Returns:
//   - *config.Config: parsed configuration, defaults applied for unset fields.
//   - error: any error during parsing.
func (l *Loader) Parse(data []byte) (*config.Config, error) {
	var dto ConfigDTO

	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	return dto.ToDomain(), nil
}

// Reload reloads configuration from the last loaded path.
//
// Returns:
//   - *config.Config: reloaded configuration.
//   - error: ErrNoConfigurationLoaded if Load was never called, or a reload error.
func (l *Loader) Reload() (*config.Config, error) {
	if l.lastPath == "" {
		return nil, fmt.Errorf("%w", ErrNoConfigurationLoaded)
	}
	return l.Load(l.lastPath)
}

// ApplyEnvOverrides overlays PORTRACKER_*-prefixed environment variables
// onto an already-parsed configuration, taking precedence over the YAML
// document for any variable that is set. Unset variables leave their field
// untouched.
//
// Params:
//   - cfg: the configuration to mutate in place.
func ApplyEnvOverrides(cfg *config.Config) {
	if v, ok := os.LookupEnv(envPrefix + "PROC_ROOT"); ok {
		cfg.ProcRoot = v
	}
	if v, ok := os.LookupEnv(envPrefix + "CONTAINER_ENDPOINT"); ok {
		cfg.ContainerEndpoint = v
	}
	if v, ok := os.LookupEnv(envPrefix + "TLS_VERIFY"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TLSVerify = b
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "CERT_PATH"); ok {
		cfg.CertPath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PLATFORM_API_KEY"); ok {
		cfg.PlatformAPIKey = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PLATFORM_ENDPOINT"); ok {
		cfg.PlatformEndpoint = v
	}
	if v, ok := os.LookupEnv(envPrefix + "INCLUDE_UDP"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IncludeUDP = b
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "INCLUDE_SYSTEM_UDP"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IncludeSystemUDP = b
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "CACHE_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTimeout = shared.FromTimeDuration(d)
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "DISABLE_CACHE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DisableCache = b
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "LISTEN_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.ListenPort = p
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "SELF_CONTAINER_NAME"); ok {
		cfg.SelfContainerName = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_FILE_PATH"); ok {
		cfg.LogFilePath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "COLLECT_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CollectInterval = shared.FromTimeDuration(d)
		}
	}
}
