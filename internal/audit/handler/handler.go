package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onboarding/internal/audit"
	dErrors "onboarding/pkg/domain-errors"
	"onboarding/pkg/platform/httputil"
)

// Handler serves read access to the API call log.
type Handler struct {
	service *audit.Service
	logger  *slog.Logger
}

// New creates the audit log handler.
func New(service *audit.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the call-log routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/call-logs", h.handleGetCallLogs)
}

// handleGetCallLogs lists call-log rows filtered by the optional query
// parameters transactionId, featureName, fkn, productCode, fromDate, toDate
// (RFC 3339 timestamps).
func (h *Handler) handleGetCallLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := audit.Filter{
		TransactionID: q.Get("transactionId"),
		FeatureName:   q.Get("featureName"),
		FKN:           q.Get("fkn"),
		ProductCode:   q.Get("productCode"),
	}

	var err error
	if filter.From, err = parseTimeParam(q.Get("fromDate")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "fromDate must be an RFC 3339 timestamp"))
		return
	}
	if filter.To, err = parseTimeParam(q.Get("toDate")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "toDate must be an RFC 3339 timestamp"))
		return
	}

	records, err := h.service.Find(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to query call logs", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to query call logs"))
		return
	}
	if records == nil {
		records = []audit.Record{}
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}

func parseTimeParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
