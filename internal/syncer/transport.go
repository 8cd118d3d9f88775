package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vitthal2611/goal-tracker/internal/sheet"
)

// Transport is the abstract collaborator carrying rows to and from the
// remote store. Implementations report batch-level success only; per-row
// outcomes are not part of the contract.
type Transport interface {
	// Pull fetches the full remote row set.
	Pull(ctx context.Context) ([]sheet.Row, error)
	// Push applies a snapshot to the remote store under the given mode.
	Push(ctx context.Context, mode Mode, rows []sheet.Row) error
}

// pullResponse is the wire shape of a pull.
type pullResponse struct {
	Rows []sheet.Row `json:"rows"`
}

// pushRequest is the wire shape of a push.
type pushRequest struct {
	Mode  Mode        `json:"mode"`
	Rows  []sheet.Row `json:"rows"`
	Token string      `json:"token,omitempty"`
}

// pushResponse is the acknowledgment shape of a push.
type pushResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HTTPTransport talks to a spreadsheet-backed web endpoint.
//
// Pushes are POSTed with Content-Type text/plain carrying a JSON body, which
// keeps the request a CORS "simple request" so browser-hosted peers of the
// same endpoint never trigger a preflight OPTIONS exchange. The endpoint
// parses the body as JSON regardless of the declared type.
type HTTPTransport struct {
	endpoint string
	token    string
	client   *http.Client
}

// HTTPConfig configures an HTTPTransport. Endpoint is required; Token is
// passed through in the push body when set. Client defaults to a plain
// http.Client relying on the transport's own timeouts.
type HTTPConfig struct {
	Endpoint string
	Token    string
	Client   *http.Client
}

// NewHTTPTransport creates a transport for the given endpoint.
func NewHTTPTransport(cfg HTTPConfig) (*HTTPTransport, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("transport endpoint not configured")
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		client:   client,
	}, nil
}

// Pull fetches the remote rows. An HTML body (e.g. an authentication or
// error page served where data was expected) is classified as a
// ConfigurationError, distinct from a ParseError on malformed data, because
// it means the endpoint itself is wrong rather than the payload transiently
// garbled.
func (t *HTTPTransport) Pull(ctx context.Context) ([]sheet.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building pull request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "pull", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "pull", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{Op: "pull", Detail: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return nil, &ConfigurationError{Detail: "pull returned an HTML document instead of data; check the endpoint URL and its access settings"}
	}

	var decoded pullResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Empty result, not partial data.
		return []sheet.Row{}, &ParseError{Op: "pull", Err: err}
	}
	if decoded.Rows == nil {
		return []sheet.Row{}, nil
	}
	return decoded.Rows, nil
}

// Push applies rows to the remote store under the given mode. Failure is
// batch-level: a non-success acknowledgment fails the whole push.
func (t *HTTPTransport) Push(ctx context.Context, mode Mode, rows []sheet.Row) error {
	payload, err := json.Marshal(pushRequest{Mode: mode, Rows: rows, Token: t.token})
	if err != nil {
		return fmt.Errorf("encoding push payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building push request: %w", err)
	}
	// text/plain keeps this a simple request: no preflight round trip.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := t.client.Do(req)
	if err != nil {
		return &TransportError{Op: "push", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "push", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &ProtocolError{Op: "push", Detail: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return &ConfigurationError{Detail: "push returned an HTML document; check the endpoint URL and its access settings"}
	}

	var ack pushResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return &ParseError{Op: "push", Err: err}
	}
	if !ack.OK {
		detail := ack.Error
		if detail == "" {
			detail = "remote reported failure without detail"
		}
		return &ProtocolError{Op: "push", Detail: detail}
	}
	return nil
}

// looksLikeHTML sniffs for a document response where structured data was
// expected.
func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}
