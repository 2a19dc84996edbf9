package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"onboarding/internal/onboarding/models"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// Notifier delivers a case record to the case-management system and returns
// the case identifier under which it was filed. A pass-through implementation
// may return an empty string, in which case the locally generated ID stands.
type Notifier interface {
	Notify(ctx context.Context, record CaseRecord) (string, error)
}

// Builder constructs case records from a request context and hands them to
// the case-management collaborator.
type Builder struct {
	notifier Notifier
	logger   *slog.Logger
}

// NewBuilder creates an escalation builder.
func NewBuilder(notifier Notifier, logger *slog.Logger) *Builder {
	return &Builder{notifier: notifier, logger: logger}
}

// Build derives a case record from the request context. It always succeeds:
// severity falls back to LOW for unknown failure tokens and the case ID is
// generated locally.
func (b *Builder) Build(reqCtx models.RequestContext, errorMessage string) CaseRecord {
	now := time.Now()
	return CaseRecord{
		TransactionID:     reqCtx.TransactionID,
		FKN:               reqCtx.FKN,
		ProductCode:       reqCtx.ProductCode,
		CustomerType:      reqCtx.CustomerType,
		CaseID:            newCaseID(now),
		CreatedAt:         now,
		ErrorMessage:      errorMessage,
		Channel:           CaseChannel,
		Severity:          id.SeverityForFailure(reqCtx.SimulateFailure),
		AdditionalContext: reqCtx.Snapshot(),
	}
}

// Escalate builds a case record and notifies case management. A notifier
// failure surfaces as CodeUnavailable: at that point neither success nor a
// confirmed escalation exists.
func (b *Builder) Escalate(ctx context.Context, reqCtx models.RequestContext, errorMessage string) (string, error) {
	record := b.Build(reqCtx, errorMessage)

	b.logger.InfoContext(ctx, "escalating failed onboarding",
		"transaction_id", record.TransactionID,
		"case_id", record.CaseID,
		"severity", record.Severity.String(),
	)

	remoteID, err := b.notifier.Notify(ctx, record)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "case management notification failed")
	}
	if remoteID != "" {
		return remoteID, nil
	}
	return record.CaseID, nil
}

// newCaseID generates a case identifier. The millisecond prefix keeps IDs
// sortable by creation time; the random suffix keeps concurrent requests
// from colliding.
func newCaseID(now time.Time) string {
	return fmt.Sprintf("CASE-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
