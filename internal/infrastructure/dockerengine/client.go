package dockerengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/ttlcache"
)

const (
	listTTL    = 4 * time.Second
	inspectTTL = 5 * time.Second
	statsTTL   = 1500 * time.Millisecond
)

// Client is the container source: it speaks the standard container-engine
// HTTP/JSON API over whichever transport newTransport resolved, caching
// the list, inspect, health, and stats reads through a shared TTL cache.
// Ping, Version, Info, and ContainerProcesses query the engine on every
// call.
type Client struct {
	http    *http.Client
	pattern Pattern
	warning string
	cache   *ttlcache.Cache
}

// New creates a Client for endpoint, downgrading mutual TLS to plaintext
// (with a recorded warning) rather than failing to connect.
//
// Params:
//   - endpoint: "unix://...", "npipe://...", "tcp://...", or empty.
//   - tlsVerify: whether to attempt mutual TLS for tcp:// endpoints.
//   - certPath: directory containing ca.pem/cert.pem/key.pem.
//   - cache: the shared TTL cache used by the list, inspect, health, and
//     stats methods.
//
// Returns:
//   - *Client: ready to use.
//   - error: non-nil only if endpoint could not be parsed.
func New(endpoint string, tlsVerify bool, certPath string, cache *ttlcache.Cache) (*Client, error) {
	transport, pattern, warning, err := newTransport(endpoint, tlsVerify, certPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    &http.Client{Transport: transport, Timeout: requestTimeout},
		pattern: pattern,
		warning: warning,
		cache:   cache,
	}, nil
}

// Pattern reports which connection pattern this client resolved to, for
// diagnostics.
//
// Returns:
//   - Pattern: "socket", "npipe", or "proxy".
func (c *Client) Pattern() Pattern {
	return c.pattern
}

// Warning returns the non-fatal TLS downgrade warning recorded at
// construction, empty if none occurred.
//
// Returns:
//   - string: the warning message, or empty.
func (c *Client) Warning() string {
	return c.warning
}

// Ping verifies the engine is reachable.
//
// Params:
//   - ctx: request context.
//
// Returns:
//   - error: non-nil if the engine could not be reached.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/_ping", nil)
	return err
}

// Version returns the engine's reported version string.
//
// Params:
//   - ctx: request context.
//
// Returns:
//   - string: the engine version.
//   - error: non-nil on connection or decode failure.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/version", nil)
	if err != nil {
		return "", err
	}
	var v versionDTO
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("decoding engine version: %w", err)
	}
	return v.Version, nil
}

// Info returns the engine's server version and running container count.
//
// Params:
//   - ctx: request context.
//
// Returns:
//   - string: the engine's ServerVersion field.
//   - int: the reported container count.
//   - error: non-nil on connection or decode failure.
func (c *Client) Info(ctx context.Context) (string, int, error) {
	body, err := c.do(ctx, http.MethodGet, "/info", nil)
	if err != nil {
		return "", 0, err
	}
	var i infoDTO
	if err := json.Unmarshal(body, &i); err != nil {
		return "", 0, fmt.Errorf("decoding engine info: %w", err)
	}
	return i.ServerVersion, i.Containers, nil
}

// ListContainers returns every container known to the engine.
//
// Params:
//   - ctx: request context.
//   - all: when true, includes stopped containers; otherwise only running ones.
//
// Returns:
//   - []*container.Container: the listed containers, normalized.
//   - error: non-nil on connection failure; per-container conversion never fails.
func (c *Client) ListContainers(ctx context.Context, all bool) ([]*container.Container, error) {
	key := "docker:list:" + strconv.FormatBool(all)

	v, err := c.cache.GetOrSet(key, listTTL, func() (any, error) {
		path := "/containers/json"
		if all {
			path += "?all=true"
		}
		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		var summaries []containerSummaryDTO
		if err := json.Unmarshal(body, &summaries); err != nil {
			return nil, fmt.Errorf("decoding container list: %w", err)
		}
		out := make([]*container.Container, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, summaryToDomain(s))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*container.Container), nil
}

// InspectContainer returns full details for a single container. When
// withSize is true the cache is bypassed, since size computation is
// expensive and its cost should never be hidden behind a stale cache hit.
//
// Params:
//   - ctx: request context.
//   - id: the container id or name.
//   - withSize: whether to request the engine's size computation.
//
// Returns:
//   - *container.Container: the inspected container.
//   - error: non-nil on connection or decode failure.
func (c *Client) InspectContainer(ctx context.Context, id string, withSize bool) (*container.Container, error) {
	fetch := func() (any, error) {
		path := "/containers/" + id + "/json"
		if withSize {
			path += "?size=true"
		}
		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		var dto inspectDTO
		if err := json.Unmarshal(body, &dto); err != nil {
			return nil, fmt.Errorf("decoding container inspect: %w", err)
		}
		return inspectToDomain(dto), nil
	}

	if withSize {
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		return v.(*container.Container), nil
	}

	v, err := c.cache.GetOrSet("docker:inspect:"+id, inspectTTL, fetch)
	if err != nil {
		return nil, err
	}
	return v.(*container.Container), nil
}

// ContainerHealth returns a container's engine-reported health snapshot.
//
// Params:
//   - ctx: request context.
//   - id: the container id or name.
//
// Returns:
//   - container.Health: empty Status when no healthcheck is configured.
//   - error: non-nil on connection or decode failure.
func (c *Client) ContainerHealth(ctx context.Context, id string) (container.Health, error) {
	v, err := c.cache.GetOrSet("docker:inspect:"+id, inspectTTL, func() (any, error) {
		body, err := c.do(ctx, http.MethodGet, "/containers/"+id+"/json", nil)
		if err != nil {
			return nil, err
		}
		var dto inspectDTO
		if err := json.Unmarshal(body, &dto); err != nil {
			return nil, fmt.Errorf("decoding container inspect: %w", err)
		}
		return inspectToDomain(dto), nil
	})
	if err != nil {
		return container.Health{}, err
	}
	c2 := v.(*container.Container)
	return container.Health{Status: c2.Health}, nil
}

// ContainerProcesses returns the pids of a container's running processes,
// read from the engine's top endpoint.
//
// Params:
//   - ctx: request context.
//   - id: the container id or name.
//
// Returns:
//   - []int: the container's process ids in the host pid namespace.
//   - error: non-nil on connection or decode failure.
func (c *Client) ContainerProcesses(ctx context.Context, id string) ([]int, error) {
	body, err := c.do(ctx, http.MethodGet, "/containers/"+id+"/top", nil)
	if err != nil {
		return nil, err
	}
	var dto topDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decoding container top: %w", err)
	}

	pidCol := -1
	for i, title := range dto.Titles {
		if strings.EqualFold(title, "PID") {
			pidCol = i
			break
		}
	}
	if pidCol < 0 {
		return nil, nil
	}

	out := make([]int, 0, len(dto.Processes))
	for _, row := range dto.Processes {
		if pidCol >= len(row) {
			continue
		}
		pid, err := strconv.Atoi(row[pidCol])
		if err != nil {
			continue
		}
		out = append(out, pid)
	}
	return out, nil
}

// ContainerStats takes two successive non-streaming stats snapshots and
// returns the derived CPU/memory usage.
//
// Params:
//   - ctx: request context.
//   - id: the container id or name.
//
// Returns:
//   - container.Stats: CPUPercent/MemPercent nil when undeterminable.
//   - error: non-nil on connection or decode failure.
func (c *Client) ContainerStats(ctx context.Context, id string) (container.Stats, error) {
	v, err := c.cache.GetOrSet("docker:stats:"+id, statsTTL, func() (any, error) {
		body, err := c.do(ctx, http.MethodGet, "/containers/"+id+"/stats?stream=false", nil)
		if err != nil {
			return nil, err
		}
		var dto statsDTO
		if err := json.Unmarshal(body, &dto); err != nil {
			return nil, fmt.Errorf("decoding container stats: %w", err)
		}
		return statsToDomain(dto), nil
	})
	if err != nil {
		return container.Stats{}, err
	}
	return v.(container.Stats), nil
}

// do issues a request against the engine and returns the response body,
// treating any non-2xx status as an error.
//
// Params:
//   - ctx: request context.
//   - method: the HTTP method.
//   - path: the API path, beginning with "/".
//   - body: the request body, nil for none.
//
// Returns:
//   - []byte: the response body.
//   - error: non-nil on transport failure or a non-2xx status.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody *strings.Reader
	if body != nil {
		reqBody = strings.NewReader(string(body))
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, "http://docker"+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, "http://docker"+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("container engine request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading container engine response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("container engine returned status %d", resp.StatusCode)
	}

	return buf, nil
}
