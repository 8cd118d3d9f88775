package syncer

import "fmt"

// The sync path classifies failures into four kinds so callers can tell a
// flaky network from a misconfigured endpoint. All of them are caught at the
// boundary, logged, and turned into non-fatal status; none terminates the
// process.

// TransportError wraps a network-level failure (endpoint unreachable,
// connection reset, timeout from the underlying client).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a reachable endpoint that answered outside the
// contract: a non-success acknowledgment or an unusable status.
type ProtocolError struct {
	Op     string
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error during %s: %s", e.Op, e.Detail)
}

// ParseError reports a body that claims to be structured data but fails to
// parse. Decoders hitting this condition return an empty result alongside
// the error rather than partial data.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigurationError reports an endpoint that returned a non-data document,
// typically an HTML login or error page. Unlike ParseError this is not
// transient: it means the endpoint is misconfigured or inaccessible and
// retrying will not help.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("endpoint misconfigured: %s", e.Detail)
}
