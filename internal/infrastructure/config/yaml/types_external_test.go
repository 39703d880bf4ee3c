package yaml_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goyaml "gopkg.in/yaml.v3"

	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/config/yaml"
)

// TestDuration_UnmarshalYAML verifies human-readable duration strings
// parse into the underlying time.Duration.
func TestDuration_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	var d yaml.Duration
	require.NoError(t, goyaml.Unmarshal([]byte("30s"), &d))
	assert.Equal(t, 30*time.Second, time.Duration(d))
}

// TestDuration_UnmarshalYAML_InvalidStringErrors verifies a malformed
// duration string is rejected rather than silently zeroed.
func TestDuration_UnmarshalYAML_InvalidStringErrors(t *testing.T) {
	t.Parallel()

	var d yaml.Duration
	require.Error(t, goyaml.Unmarshal([]byte("not-a-duration"), &d))
}

// TestDuration_MarshalText verifies the round-trip back to a
// human-readable string.
func TestDuration_MarshalText(t *testing.T) {
	t.Parallel()

	d := yaml.Duration(45 * time.Second)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "45s", string(text))
}

// TestConfigDTO_ToDomain_EmptyDTOAppliesDefaults verifies an
// unpopulated DTO converts to New()'s documented defaults.
func TestConfigDTO_ToDomain_EmptyDTOAppliesDefaults(t *testing.T) {
	t.Parallel()

	var dto yaml.ConfigDTO
	cfg := dto.ToDomain()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8120, cfg.ListenPort)
	assert.Equal(t, 30*time.Second, cfg.CollectInterval.Duration())
}
