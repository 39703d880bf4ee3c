// Package platformapi is the optional platform source: a JSON-RPC 2.0
// client for the platform's system.info/app.query/virt.instance.query
// methods, authenticated by a bearer key.
package platformapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// requestEnvelope is a single JSON-RPC 2.0 request.
type requestEnvelope struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      int    `json:"id"`
}

// responseEnvelope is a single JSON-RPC 2.0 response.
type responseEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      int             `json:"id"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface for rpcError.
//
// Returns:
//   - string: "rpc error <code>: <message>".
func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call issues a single JSON-RPC 2.0 request and decodes its result into out.
//
// Params:
//   - ctx: request context.
//   - method: the JSON-RPC method name, e.g. "system.info".
//   - params: the method's params value, nil for none.
//   - out: a pointer the result is unmarshaled into.
//
// Returns:
//   - error: non-nil on transport failure, a non-2xx status, or an RPC-level error.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	reqBody, err := json.Marshal(requestEnvelope{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return fmt.Errorf("encoding rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("building rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform rpc request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("platform rpc returned status %d", resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding rpc response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decoding rpc result: %w", err)
	}
	return nil
}
