package dockerengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/dockerengine"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/ttlcache"
)

func TestNew_UnixEndpoint(t *testing.T) {
	t.Parallel()

	c, err := dockerengine.New("unix:///var/run/docker.sock", false, "", ttlcache.New(true))
	require.NoError(t, err)
	assert.Equal(t, dockerengine.PatternSocket, c.Pattern())
	assert.Empty(t, c.Warning())
}

func TestNew_EmptyEndpointDefaultsToSocket(t *testing.T) {
	t.Parallel()

	c, err := dockerengine.New("", false, "", ttlcache.New(true))
	require.NoError(t, err)
	assert.Equal(t, dockerengine.PatternSocket, c.Pattern())
}

func TestNew_TCPEndpointWithoutTLS(t *testing.T) {
	t.Parallel()

	c, err := dockerengine.New("tcp://127.0.0.1:2375", false, "", ttlcache.New(true))
	require.NoError(t, err)
	assert.Equal(t, dockerengine.PatternProxy, c.Pattern())
	assert.Empty(t, c.Warning())
}

func TestNew_TCPEndpointWithMissingTLSMaterialDowngrades(t *testing.T) {
	t.Parallel()

	c, err := dockerengine.New("tcp://127.0.0.1:2376", true, "/nonexistent", ttlcache.New(true))
	require.NoError(t, err)
	assert.Equal(t, dockerengine.PatternProxy, c.Pattern())
	assert.NotEmpty(t, c.Warning())
}

func TestNew_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := dockerengine.New("ftp://example.com", false, "", ttlcache.New(true))
	require.Error(t, err)
}
