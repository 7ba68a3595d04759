package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/usecase"
	"booking-reconcile/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FeeHandler struct {
	service usecase.FeeService
	log     *zap.Logger
}

func NewFeeHandler(service usecase.FeeService, log *zap.Logger) *FeeHandler {
	return &FeeHandler{
		service: service,
		log:     log.With(zap.String("handler", "fee")),
	}
}

// CreateFee handles POST /api/fees
func (h *FeeHandler) CreateFee(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	fee, err := h.service.CreateFee(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create fee")
		return
	}

	utils.ResponseCreated(w, "success", fee)
}

// GetFees handles GET /api/fees
func (h *FeeHandler) GetFees(w http.ResponseWriter, r *http.Request) {
	fees, err := h.service.GetFees(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get fees")
		return
	}

	utils.ResponseSuccess(w, "success", fees)
}

// GetFeeByID handles GET /api/fees/{id}
func (h *FeeHandler) GetFeeByID(w http.ResponseWriter, r *http.Request) {
	feeID := chi.URLParam(r, "id")
	if feeID == "" {
		utils.ResponseBadRequest(w, "Fee ID is required", nil)
		return
	}

	fee, err := h.service.GetFeeByID(r.Context(), feeID)
	if err != nil {
		h.handleServiceError(w, err, "get fee by ID")
		return
	}

	utils.ResponseSuccess(w, "success", fee)
}

// UpdateFee handles PUT /api/fees/{id}
func (h *FeeHandler) UpdateFee(w http.ResponseWriter, r *http.Request) {
	feeID := chi.URLParam(r, "id")
	if feeID == "" {
		utils.ResponseBadRequest(w, "Fee ID is required", nil)
		return
	}

	var req request.UpdateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	fee, err := h.service.UpdateFee(r.Context(), feeID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update fee")
		return
	}

	utils.ResponseSuccess(w, "success", fee)
}

// DeleteFee handles DELETE /api/fees/{id}
func (h *FeeHandler) DeleteFee(w http.ResponseWriter, r *http.Request) {
	feeID := chi.URLParam(r, "id")
	if feeID == "" {
		utils.ResponseBadRequest(w, "Fee ID is required", nil)
		return
	}

	if err := h.service.DeleteFee(r.Context(), feeID); err != nil {
		h.handleServiceError(w, err, "delete fee")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *FeeHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
