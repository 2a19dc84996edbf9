package audit

import (
	"context"
	"log/slog"
	"time"
)

// Store persists audit records. Memory and postgres implementations live in
// the store subpackages.
type Store interface {
	Append(ctx context.Context, record Record) error
	List(ctx context.Context, filter Filter) ([]Record, error)
}

// Service is the audit collaborator handed to feature executors and the
// onboarding handler.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService builds an audit service on top of a store.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Record appends one call-log row. Audit failure is a diagnostics concern,
// not a business outcome: errors are logged and swallowed so they can never
// mask the upstream result being recorded.
func (s *Service) Record(ctx context.Context, transactionID, featureName, fkn, productCode, httpStatus, requestPayload, responseBody string) {
	record := Record{
		TransactionID:  transactionID,
		FeatureName:    featureName,
		FKN:            fkn,
		ProductCode:    productCode,
		HTTPStatus:     httpStatus,
		RequestPayload: requestPayload,
		ResponseBody:   responseBody,
		CreatedAt:      time.Now(),
	}
	if err := s.store.Append(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to append audit record",
			"transaction_id", transactionID,
			"feature", featureName,
			"error", err,
		)
	}
}

// Find returns the records matching the filter.
func (s *Service) Find(ctx context.Context, filter Filter) ([]Record, error) {
	return s.store.List(ctx, filter)
}
