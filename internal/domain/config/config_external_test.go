package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
)

// TestNew_AppliesDocumentedDefaults verifies New populates CacheTimeout,
// ListenPort, LogLevel, and CollectInterval with their documented
// defaults, leaving every other field zero-valued.
func TestNew_AppliesDocumentedDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	assert.Equal(t, 60, int(cfg.CacheTimeout.Seconds()))
	assert.Equal(t, 8120, cfg.ListenPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, int(cfg.CollectInterval.Seconds()))
	assert.Empty(t, cfg.ProcRoot)
	assert.Empty(t, cfg.ContainerEndpoint)
	assert.False(t, cfg.TLSVerify)
	assert.Empty(t, cfg.PlatformAPIKey)
	assert.Empty(t, cfg.LogFilePath)
}

// TestConfig_PlatformEnabled verifies PlatformEnabled tracks whether an
// API key has been configured.
func TestConfig_PlatformEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		apiKey   string
		expected bool
	}{
		{name: "unset", apiKey: "", expected: false},
		{name: "set", apiKey: "secret", expected: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			cfg.PlatformAPIKey = tt.apiKey

			assert.Equal(t, tt.expected, cfg.PlatformEnabled())
		})
	}
}

// TestConfig_MutualTLSEnabled verifies MutualTLSEnabled requires both
// TLSVerify and a non-empty CertPath.
func TestConfig_MutualTLSEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verify   bool
		certPath string
		expected bool
	}{
		{name: "neither set", verify: false, certPath: "", expected: false},
		{name: "verify only", verify: true, certPath: "", expected: false},
		{name: "cert path only", verify: false, certPath: "/certs", expected: false},
		{name: "both set", verify: true, certPath: "/certs", expected: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			cfg.TLSVerify = tt.verify
			cfg.CertPath = tt.certPath

			assert.Equal(t, tt.expected, cfg.MutualTLSEnabled())
		})
	}
}

// TestKnownUDPPorts_ReturnsIndependentCopy verifies mutating the
// returned slice does not affect subsequent calls.
func TestKnownUDPPorts_ReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	first := config.KnownUDPPorts()
	assert.NotEmpty(t, first)

	first[0] = -1

	second := config.KnownUDPPorts()
	assert.NotEqual(t, -1, second[0])
}

// TestIsKnownUDPPort verifies membership checks against the fixed
// allow-list.
func TestIsKnownUDPPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		port     int
		expected bool
	}{
		{name: "dns", port: 53, expected: true},
		{name: "ntp", port: 123, expected: true},
		{name: "wireguard", port: 51820, expected: true},
		{name: "unknown high port", port: 54321, expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, config.IsKnownUDPPort(tt.port))
		})
	}
}
