package adaptor

import (
	"booking-reconcile/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Invoice   *InvoiceHandler
	Reconcile *ReconcileHandler
	Note      *NoteHandler
	Mapping   *MappingHandler
	Fee       *FeeHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Invoice:   NewInvoiceHandler(service.Invoice, log),
		Reconcile: NewReconcileHandler(service.Reconcile, service.Void, log),
		Note:      NewNoteHandler(service.Note, log),
		Mapping:   NewMappingHandler(service.Mapping, log),
		Fee:       NewFeeHandler(service.Fee, log),
	}
}
