package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/usecase"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

type MappingHandler struct {
	service usecase.MappingService
	log     *zap.Logger
}

func NewMappingHandler(service usecase.MappingService, log *zap.Logger) *MappingHandler {
	return &MappingHandler{
		service: service,
		log:     log.With(zap.String("handler", "mapping")),
	}
}

// GetMappings handles GET /api/mappings
func (h *MappingHandler) GetMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.service.GetMappings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get mappings")
		return
	}

	utils.ResponseSuccess(w, "success", mappings)
}

// SaveMappings handles PUT /api/mappings (API key)
func (h *MappingHandler) SaveMappings(w http.ResponseWriter, r *http.Request) {
	var req request.SaveMappingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.SaveMappings(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "save mappings")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetCatalog handles GET /api/catalog
func (h *MappingHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.GetCatalog(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get catalog")
		return
	}

	utils.ResponseSuccess(w, "success", catalog)
}

func (h *MappingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
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
