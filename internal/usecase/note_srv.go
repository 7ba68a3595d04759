package usecase

import (
	"context"
	"fmt"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

type NoteService interface {
	UpsertNote(ctx context.Context, category string, req *request.UpsertNoteRequest) (*response.Note, error)
	GetNotes(ctx context.Context, category string) ([]response.Note, error)
	GetNote(ctx context.Context, category, bookingID string) (*response.Note, error)
	DeleteNote(ctx context.Context, category, bookingID string) error
	ClearCategory(ctx context.Context, category string) error
}

type noteService struct {
	repo repository.NoteRepository
	log  *zap.Logger
}

func NewNoteService(repo repository.NoteRepository, log *zap.Logger) NoteService {
	return &noteService{
		repo: repo,
		log:  log.With(zap.String("service", "note")),
	}
}

func (s *noteService) UpsertNote(ctx context.Context, category string, req *request.UpsertNoteRequest) (*response.Note, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Upsert note validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	note := &entity.Note{
		Category:  cat,
		BookingID: req.BookingID,
		Body:      req.Body,
	}

	if err := s.repo.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}

	s.log.Info("Note saved",
		zap.String("category", category),
		zap.String("booking_id", req.BookingID),
	)

	return noteToResponse(note), nil
}

func (s *noteService) GetNotes(ctx context.Context, category string) ([]response.Note, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	notes, err := s.repo.FindByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("get notes: %w", err)
	}

	result := make([]response.Note, len(notes))
	for i, note := range notes {
		result[i] = *noteToResponse(note)
	}

	return result, nil
}

func (s *noteService) GetNote(ctx context.Context, category, bookingID string) (*response.Note, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	if bookingID == "" {
		return nil, fmt.Errorf("booking id is required")
	}

	note, err := s.repo.FindByCategoryAndBooking(ctx, cat, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("note for booking %s not found", bookingID)
	}

	return noteToResponse(note), nil
}

func (s *noteService) DeleteNote(ctx context.Context, category, bookingID string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}
	if bookingID == "" {
		return fmt.Errorf("booking id is required")
	}

	if err := s.repo.Delete(ctx, cat, bookingID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.Info("Note deleted",
		zap.String("category", category),
		zap.String("booking_id", bookingID),
	)

	return nil
}

func (s *noteService) ClearCategory(ctx context.Context, category string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByCategory(ctx, cat); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}

	s.log.Info("Note category cleared", zap.String("category", category))
	return nil
}

func parseCategory(category string) (entity.NoteCategory, error) {
	cat := entity.NoteCategory(category)
	if !entity.ValidNoteCategory(cat) {
		return "", fmt.Errorf("note category %s not found", category)
	}
	return cat, nil
}

func noteToResponse(note *entity.Note) *response.Note {
	return &response.Note{
		ID:        note.ID.String(),
		Category:  string(note.Category),
		BookingID: note.BookingID,
		Body:      note.Body,
		UpdatedAt: note.UpdatedAt,
	}
}
