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

type NoteHandler struct {
	service usecase.NoteService
	log     *zap.Logger
}

func NewNoteHandler(service usecase.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		log:     log.With(zap.String("handler", "note")),
	}
}

// GetNotes handles GET /api/notes/{category}
func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	notes, err := h.service.GetNotes(r.Context(), category)
	if err != nil {
		h.handleServiceError(w, err, "get notes")
		return
	}

	utils.ResponseSuccess(w, "success", notes)
}

// UpsertNote handles PUT /api/notes/{category}
func (h *NoteHandler) UpsertNote(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var req request.UpsertNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	note, err := h.service.UpsertNote(r.Context(), category, &req)
	if err != nil {
		h.handleServiceError(w, err, "save note")
		return
	}

	utils.ResponseSuccess(w, "success", note)
}

// GetNote handles GET /api/notes/{category}/{bookingID}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	bookingID := chi.URLParam(r, "bookingID")

	note, err := h.service.GetNote(r.Context(), category, bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get note")
		return
	}

	utils.ResponseSuccess(w, "success", note)
}

// DeleteNote handles DELETE /api/notes/{category}/{bookingID}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	bookingID := chi.URLParam(r, "bookingID")

	if err := h.service.DeleteNote(r.Context(), category, bookingID); err != nil {
		h.handleServiceError(w, err, "delete note")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ClearCategory handles DELETE /api/notes/{category}
func (h *NoteHandler) ClearCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	if err := h.service.ClearCategory(r.Context(), category); err != nil {
		h.handleServiceError(w, err, "clear notes")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *NoteHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"), strings.Contains(errMsg, "required"):
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
