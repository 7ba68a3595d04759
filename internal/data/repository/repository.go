package repository

import (
	"booking-reconcile/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Note    NoteRepository
	Mapping MappingRepository
	Fee     FeeRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Note:    NewNoteRepository(db, log),
		Mapping: NewMappingRepository(db, log),
		Fee:     NewFeeRepository(db, log),
	}
}
