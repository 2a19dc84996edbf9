package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"onboarding/internal/audit"
	"onboarding/internal/catalog"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/service"
	dErrors "onboarding/pkg/domain-errors"
	"onboarding/pkg/platform/httputil"
)

// EntryFeatureName tags the call-log row written for the inbound request
// itself, as opposed to the rows written per upstream feature call.
const EntryFeatureName = "onboard-product"

// Service defines the interface for onboarding orchestration.
type Service interface {
	Onboard(ctx context.Context, reqCtx models.RequestContext) (service.Result, error)
}

// Handler handles the product onboarding endpoints.
type Handler struct {
	service Service
	catalog *catalog.Catalog
	auditor *audit.Service
	logger  *slog.Logger
}

// New creates a new onboarding Handler.
func New(svc Service, cat *catalog.Catalog, auditor *audit.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: svc,
		catalog: cat,
		auditor: auditor,
		logger:  logger,
	}
}

// Register registers the onboarding routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/products/onboard", h.handleOnboard)
	r.Get("/api/products/config", h.handleGetConfig)
}

// handleOnboard runs one onboarding request to its terminal state and
// reports the customer-facing outcome message.
func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid onboarding request body", "error", err.Error())
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	reqCtx, err := req.ToRequestContext()
	if err != nil {
		h.logger.WarnContext(ctx, "rejected onboarding request",
			"transaction_id", req.TransactionID,
			"error", err.Error(),
		)
		h.recordEntry(ctx, req, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), err.Error())
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Onboard(ctx, reqCtx)
	if err != nil {
		status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
		h.recordEntry(ctx, req, status, err.Error())
		httputil.WriteError(w, err)
		return
	}

	resp := OnboardResponse{
		Status:        result.Status.String(),
		TransactionID: reqCtx.TransactionID,
		CaseID:        result.CaseID,
	}
	if result.Status == models.StatusEscalated {
		resp.Message = fmt.Sprintf(
			"An issue occurred. Case ID: %s. The bank will contact you for further processing.",
			result.CaseID)
	} else {
		resp.Message = fmt.Sprintf(
			"Onboarding for product %s Transaction Id: %s linked to FKN %s completed successfully.",
			req.ProductCode, reqCtx.TransactionID, reqCtx.FKN)
	}

	h.recordEntry(ctx, req, http.StatusOK, resp.Message)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleGetConfig exposes the product catalog for the channel frontends.
func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog.Brands())
}

// recordEntry writes the boundary call-log row for the inbound request.
func (h *Handler) recordEntry(ctx context.Context, req OnboardRequest, status int, responseBody string) {
	raw, err := json.Marshal(req)
	if err != nil {
		raw = []byte("{}")
	}
	h.auditor.Record(ctx, req.TransactionID, EntryFeatureName, req.FKN, req.ProductCode,
		strconv.Itoa(status), string(raw), responseBody)
}
