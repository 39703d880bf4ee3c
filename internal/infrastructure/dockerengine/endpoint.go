// Package dockerengine is the container source: a client for the standard
// container-engine HTTP/JSON API, reached over a Unix socket, a Windows
// named pipe, or TCP with optional mutual TLS.
package dockerengine

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dialTimeout bounds establishing the underlying socket/pipe/TCP connection.
const dialTimeout = 5 * time.Second

// requestTimeout bounds a single non-streaming API call.
const requestTimeout = 10 * time.Second

// defaultUnixSocket is the OS-default local socket used when no endpoint
// is configured.
const defaultUnixSocket = "/var/run/docker.sock"

// Pattern identifies how the client reached the engine, recorded for
// diagnostics.
type Pattern string

// Recognized connection patterns.
const (
	PatternSocket Pattern = "socket"
	PatternNpipe  Pattern = "npipe"
	PatternProxy  Pattern = "proxy" // tcp
)

// newTransport builds an *http.Transport for endpoint, downgrading to
// plaintext and returning a warning when TLS material fails to load
// rather than refusing to connect.
//
// Params:
//   - endpoint: "unix://...", "npipe://...", "tcp://...", or empty for the
//     OS-default local socket.
//   - tlsVerify: whether mutual TLS should be attempted for tcp:// endpoints.
//   - certPath: directory containing ca.pem/cert.pem/key.pem.
//
// Returns:
//   - *http.Transport: ready to install on an *http.Client.
//   - Pattern: the connection pattern used, for diagnostics.
//   - string: a non-fatal warning, e.g. when TLS material failed to load.
//   - error: non-nil only if endpoint itself cannot be parsed.
func newTransport(endpoint string, tlsVerify bool, certPath string) (*http.Transport, Pattern, string, error) {
	if endpoint == "" {
		return unixTransport(defaultUnixSocket), PatternSocket, "", nil
	}

	switch {
	case strings.HasPrefix(endpoint, "unix://"):
		return unixTransport(strings.TrimPrefix(endpoint, "unix://")), PatternSocket, "", nil
	case strings.HasPrefix(endpoint, "npipe://"):
		return npipeTransport(strings.TrimPrefix(endpoint, "npipe://")), PatternNpipe, "", nil
	case strings.HasPrefix(endpoint, "tcp://"):
		return tcpTransport(strings.TrimPrefix(endpoint, "tcp://"), tlsVerify, certPath)
	default:
		return nil, "", "", fmt.Errorf("unsupported container endpoint scheme: %s", endpoint)
	}
}

// unixTransport dials a fixed Unix socket path regardless of the
// request's own network/address, the standard trick for speaking HTTP
// over a local socket.
//
// Params:
//   - socketPath: the Unix socket path.
//
// Returns:
//   - *http.Transport: a transport that always dials socketPath.
func unixTransport(socketPath string) *http.Transport {
	dialer := &net.Dialer{Timeout: dialTimeout}
	return &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", socketPath)
		},
	}
}

// npipeTransport dials a fixed Windows named pipe path the same way
// unixTransport dials a socket.
//
// Params:
//   - pipePath: the named pipe path.
//
// Returns:
//   - *http.Transport: a transport that always dials pipePath.
func npipeTransport(pipePath string) *http.Transport {
	dialer := &net.Dialer{Timeout: dialTimeout}
	return &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "npipe", pipePath)
		},
	}
}

// tcpTransport dials a TCP address, attempting mutual TLS when tlsVerify
// is set. A failure to load the TLS material downgrades to plaintext and
// returns a warning instead of an error.
//
// Params:
//   - addr: the host:port to dial.
//   - tlsVerify: whether to attempt loading mTLS material.
//   - certPath: directory containing ca.pem/cert.pem/key.pem.
//
// Returns:
//   - *http.Transport: the configured transport.
//   - Pattern: always PatternProxy.
//   - string: a warning describing the TLS downgrade, empty if TLS was not
//     requested or loaded successfully.
//   - error: always nil; connect-time failures surface from the caller's
//     request, not from transport construction.
func tcpTransport(addr string, tlsVerify bool, certPath string) (*http.Transport, Pattern, string, error) {
	dialer := &net.Dialer{Timeout: dialTimeout}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp", addr)
		},
	}

	if !tlsVerify {
		return transport, PatternProxy, "", nil
	}

	tlsConfig, warning := loadMutualTLS(certPath)
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}

	return transport, PatternProxy, warning, nil
}

// loadMutualTLS loads ca.pem/cert.pem/key.pem from certPath.
//
// Params:
//   - certPath: directory containing the TLS material.
//
// Returns:
//   - *tls.Config: nil if loading failed.
//   - string: a warning message when loading failed, empty on success.
func loadMutualTLS(certPath string) (*tls.Config, string) {
	cert, err := tls.LoadX509KeyPair(filepath.Join(certPath, "cert.pem"), filepath.Join(certPath, "key.pem"))
	if err != nil {
		return nil, fmt.Sprintf("loading client certificate: %v; downgrading to plaintext", err)
	}

	caBytes, err := os.ReadFile(filepath.Join(certPath, "ca.pem")) // #nosec G304 - operator-controlled cert directory
	if err != nil {
		return nil, fmt.Sprintf("loading ca certificate: %v; downgrading to plaintext", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caBytes) {
		return nil, "ca certificate contained no usable certificates; downgrading to plaintext"
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, ""
}
