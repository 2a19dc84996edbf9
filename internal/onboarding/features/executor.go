// Package features contains the per-feature executors and the machinery that
// orders and dispatches them: the order builder derives the execution
// sequence from product configuration, the registry routes each feature kind
// to its executor, and every executor performs exactly one upstream call with
// an audit record written before any failure is reported.
package features

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"onboarding/internal/audit"
	"onboarding/internal/catalog"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/upstream"
	id "onboarding/pkg/domain"
)

// Executor runs one onboarding feature against the upstream gateway.
//
// Invariant: an executor audits its call before reporting failure, so every
// upstream interaction leaves a call-log row regardless of outcome.
type Executor interface {
	Kind() id.FeatureKind
	Execute(ctx context.Context, reqCtx models.RequestContext, product *catalog.Product) error
}

// UpstreamFailure reports a non-2xx answer from a feature endpoint. It
// carries enough identity to build an escalation case without re-deriving
// anything from the request.
type UpstreamFailure struct {
	Feature       id.FeatureKind
	TransactionID string
	FKN           string
	ProductCode   string
	StatusCode    int
}

func (e *UpstreamFailure) Error() string {
	return fmt.Sprintf("feature %s failed with upstream status %d (transaction %s, fkn %s, product %s)",
		e.Feature, e.StatusCode, e.TransactionID, e.FKN, e.ProductCode)
}

// gateway is the shared plumbing embedded by every executor: it builds the
// endpoint URL, attaches the failure-injection tokens, posts, audits, and
// turns a non-2xx status into an UpstreamFailure.
type gateway struct {
	caller  upstream.Caller
	auditor *audit.Service
	baseURL string
	logger  *slog.Logger
}

func newGateway(caller upstream.Caller, auditor *audit.Service, baseURL string, logger *slog.Logger) gateway {
	return gateway{
		caller:  caller,
		auditor: auditor,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (g gateway) endpoint(kind id.FeatureKind) string {
	return g.baseURL + "/" + kind.String()
}

// call performs the upstream POST for one feature. The failure-injection
// tokens ride along in every payload so the simulator can match them against
// the endpoint; the live gateway ignores them.
func (g gateway) call(ctx context.Context, reqCtx models.RequestContext, kind id.FeatureKind, payload map[string]any) error {
	payload["simulateFailure"] = reqCtx.SimulateFailure
	payload["failureTarget"] = reqCtx.FailureTarget

	url := g.endpoint(kind)
	g.logger.InfoContext(ctx, "executing feature",
		"feature", kind.String(),
		"transaction_id", reqCtx.TransactionID,
	)

	resp, err := g.caller.Post(ctx, url, payload)
	if err != nil {
		g.audit(ctx, reqCtx, kind, payload, "0", err.Error())
		return &UpstreamFailure{
			Feature:       kind,
			TransactionID: reqCtx.TransactionID,
			FKN:           reqCtx.FKN,
			ProductCode:   reqCtx.ProductCode,
			StatusCode:    0,
		}
	}

	g.audit(ctx, reqCtx, kind, payload, strconv.Itoa(resp.StatusCode), resp.Body)

	if !resp.OK() {
		return &UpstreamFailure{
			Feature:       kind,
			TransactionID: reqCtx.TransactionID,
			FKN:           reqCtx.FKN,
			ProductCode:   reqCtx.ProductCode,
			StatusCode:    resp.StatusCode,
		}
	}
	return nil
}

func (g gateway) audit(ctx context.Context, reqCtx models.RequestContext, kind id.FeatureKind, payload map[string]any, status, responseBody string) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}
	g.auditor.Record(ctx, reqCtx.TransactionID, kind.String(), reqCtx.FKN, reqCtx.ProductCode, status, string(raw), responseBody)
}
