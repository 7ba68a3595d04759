package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/internal/usecase"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

type ReconcileHandler struct {
	service usecase.ReconcileService
	void    usecase.VoidService
	log     *zap.Logger
}

func NewReconcileHandler(service usecase.ReconcileService, void usecase.VoidService, log *zap.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		service: service,
		void:    void,
		log:     log.With(zap.String("handler", "reconcile")),
	}
}

// Reconcile handles POST /api/reconcile
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req request.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	report, err := h.service.Reconcile(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "reconcile")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// DispatchVoids handles POST /api/admin/void (API key, feature gated)
func (h *ReconcileHandler) DispatchVoids(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Candidates []response.VoidCandidate `json:"candidates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.Candidates) == 0 {
		utils.ResponseBadRequest(w, "No void candidates supplied", nil)
		return
	}

	report, err := h.void.DispatchVoids(r.Context(), req.Candidates)
	if err != nil {
		if errors.Is(err, usecase.ErrVoidDisabled) {
			h.log.Warn("Void dispatch rejected - feature disabled")
			utils.ResponseForbidden(w, err.Error())
			return
		}
		h.handleServiceError(w, err, "dispatch voids")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

func (h *ReconcileHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not configured"):
		h.log.Warn(operation+" failed - not configured",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
