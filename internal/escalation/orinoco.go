package escalation

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"onboarding/internal/upstream"
	dErrors "onboarding/pkg/domain-errors"
)

// OrinocoClient files case records with the Orinoco case-management API.
type OrinocoClient struct {
	caller  upstream.Caller
	baseURL string
	logger  *slog.Logger
}

// NewOrinocoClient creates the case-management notifier.
func NewOrinocoClient(caller upstream.Caller, baseURL string, logger *slog.Logger) *OrinocoClient {
	return &OrinocoClient{
		caller:  caller,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Notify posts the case record. If the response body carries a caseId the
// remote identifier is returned and takes precedence over the local one.
func (c *OrinocoClient) Notify(ctx context.Context, record CaseRecord) (string, error) {
	payload := map[string]any{
		"transactionId":         record.TransactionID,
		"fkn":                   record.FKN,
		"productCode":           record.ProductCode,
		"customerType":          record.CustomerType.String(),
		"caseId":                record.CaseID,
		"caseCreationTimestamp": record.CreatedAt,
		"errorMessage":          record.ErrorMessage,
		"channel":               record.Channel,
		"severity":              record.Severity.String(),
		"additionalContext":     record.AdditionalContext,
	}

	resp, err := c.caller.Post(ctx, c.baseURL+"/case-management", payload)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "posting case record")
	}
	if !resp.OK() {
		return "", dErrors.Newf(dErrors.CodeUnavailable, "case management returned status %d", resp.StatusCode)
	}

	remoteID := parseCaseID(resp.Body)
	if remoteID != "" && remoteID != record.CaseID {
		c.logger.InfoContext(ctx, "case management assigned its own case id",
			"local_case_id", record.CaseID,
			"remote_case_id", remoteID,
		)
	}
	return remoteID, nil
}

// parseCaseID extracts an optional caseId from the response body. Bodies
// without one are fine; the caller falls back to the local ID.
func parseCaseID(body string) string {
	var parsed struct {
		CaseID string `json:"caseId"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return ""
	}
	return parsed.CaseID
}
