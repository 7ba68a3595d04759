package usecase

import (
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Invoice   InvoiceService
	Reconcile ReconcileService
	Note      NoteService
	Mapping   MappingService
	Fee       FeeService
	Void      VoidService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Invoice:   NewInvoiceService(repo, config, log),
		Reconcile: NewReconcileService(repo, log),
		Note:      NewNoteService(repo.Note, log),
		Mapping:   NewMappingService(repo.Mapping, log),
		Fee:       NewFeeService(repo.Fee, log),
		Void:      NewVoidService(config, log),
	}
}
