package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/usecase"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

type InvoiceHandler struct {
	service usecase.InvoiceService
	log     *zap.Logger
}

func NewInvoiceHandler(service usecase.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log.With(zap.String("handler", "invoice")),
	}
}

// BuildInvoice handles POST /api/invoice/build
func (h *InvoiceHandler) BuildInvoice(w http.ResponseWriter, r *http.Request) {
	var req request.BuildInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.BuildInvoice(r.Context(), &req)
	if err != nil {
		// The diagnostics record travels with the error response so the
		// caller always sees what the builder got through.
		var diagnostics any
		if result != nil {
			diagnostics = result.Diagnostics
		}

		switch {
		case errors.Is(err, usecase.ErrMissingBooking):
			h.log.Warn("Invoice build rejected - missing booking", zap.Error(err))
			utils.ResponseBadRequest(w, err.Error(), diagnostics)

		case errors.Is(err, usecase.ErrUnsafeUpdate):
			h.log.Warn("Invoice build rejected - unsafe update", zap.Error(err))
			utils.ResponseUnprocessable(w, err.Error(), diagnostics)

		case strings.Contains(err.Error(), "validation failed"):
			h.log.Warn("Invoice build validation failed", zap.Error(err))
			utils.ResponseBadRequest(w, err.Error(), diagnostics)

		default:
			h.log.Error("Failed to build invoice", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
