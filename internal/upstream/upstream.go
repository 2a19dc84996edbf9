// Package upstream provides the outbound HTTP collaborator used by feature
// executors. Two implementations exist: a live client for deployed
// environments and a simulator that honors the failure-injection tokens used
// in testing.
package upstream

import "context"

// Response is the outcome of one upstream call: an HTTP-style status and the
// raw response body. Executors interpret the status; the body is kept for
// the audit trail.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports whether the status is a 2xx success.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Caller posts a JSON payload to an upstream endpoint. Implementations must
// be safe for concurrent use; executors share one Caller across requests.
type Caller interface {
	Post(ctx context.Context, url string, payload map[string]any) (Response, error)
}
