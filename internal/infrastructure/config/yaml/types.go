// Package yaml provides YAML configuration loading infrastructure.
package yaml

import (
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/shared"
)

// Duration is a wrapper around time.Duration for YAML serialization. It
// enables parsing of human-readable duration strings like "30s" or "1m"
// from configuration files.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
//
// Params:
//   - unmarshal: callback function to unmarshal the YAML value.
//
// Returns:
//   - error: parsing error if the duration string is invalid.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string

	if err := unmarshal(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}

	*d = Duration(parsed)

	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
//
// Returns:
//   - []byte: the duration as a formatted string in bytes.
//   - error: always nil for this implementation.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(*d).String()), nil
}

// ConfigDTO is the YAML representation of the agent's configuration file.
type ConfigDTO struct {
	ProcRoot string `yaml:"proc_root,omitempty"`

	ContainerEndpoint string `yaml:"container_endpoint,omitempty"`
	TLSVerify         bool   `yaml:"tls_verify,omitempty"`
	CertPath          string `yaml:"cert_path,omitempty"`

	PlatformAPIKey   string `yaml:"platform_api_key,omitempty"`
	PlatformEndpoint string `yaml:"platform_endpoint,omitempty"`

	IncludeUDP       bool `yaml:"include_udp,omitempty"`
	IncludeSystemUDP bool `yaml:"include_system_udp,omitempty"`

	CacheTimeout Duration `yaml:"cache_timeout,omitempty"`
	DisableCache bool     `yaml:"disable_cache,omitempty"`

	ListenPort        int    `yaml:"listen_port,omitempty"`
	SelfContainerName string `yaml:"self_container_name,omitempty"`

	LogLevel    string `yaml:"log_level,omitempty"`
	LogFilePath string `yaml:"log_file_path,omitempty"`

	CollectInterval Duration `yaml:"collect_interval,omitempty"`
}

// ToDomain converts ConfigDTO to the domain Config, applying defaults for
// any field the YAML document left unset.
//
// Returns:
//   - *config.Config: the converted domain configuration object.
func (c *ConfigDTO) ToDomain() *config.Config {
	cfg := config.New()

	cfg.ProcRoot = c.ProcRoot
	cfg.ContainerEndpoint = c.ContainerEndpoint
	cfg.TLSVerify = c.TLSVerify
	cfg.CertPath = c.CertPath
	cfg.PlatformAPIKey = c.PlatformAPIKey
	cfg.PlatformEndpoint = c.PlatformEndpoint
	cfg.IncludeUDP = c.IncludeUDP
	cfg.IncludeSystemUDP = c.IncludeSystemUDP
	cfg.DisableCache = c.DisableCache
	cfg.SelfContainerName = c.SelfContainerName

	if c.CacheTimeout > 0 {
		cfg.CacheTimeout = shared.FromTimeDuration(time.Duration(c.CacheTimeout))
	}
	if c.ListenPort > 0 {
		cfg.ListenPort = c.ListenPort
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	cfg.LogFilePath = c.LogFilePath
	if c.CollectInterval > 0 {
		cfg.CollectInterval = shared.FromTimeDuration(time.Duration(c.CollectInterval))
	}

	return cfg
}
