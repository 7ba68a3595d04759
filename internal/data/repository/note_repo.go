package repository

import (
	"context"
	"fmt"
	"time"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type NoteRepository interface {
	Upsert(ctx context.Context, note *entity.Note) error
	FindByCategory(ctx context.Context, category entity.NoteCategory) ([]*entity.Note, error)
	FindByCategoryAndBooking(ctx context.Context, category entity.NoteCategory, bookingID string) (*entity.Note, error)
	Delete(ctx context.Context, category entity.NoteCategory, bookingID string) error
	DeleteByCategory(ctx context.Context, category entity.NoteCategory) error
}

type noteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNoteRepository(db database.PgxIface, log *zap.Logger) NoteRepository {
	return &noteRepository{
		db:  db,
		log: log.With(zap.String("repository", "note")),
	}
}

func (r *noteRepository) Upsert(ctx context.Context, note *entity.Note) error {
	query := `
		INSERT INTO reconciliation_notes (id, category, booking_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category, booking_id) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		note.ID,
		note.Category,
		note.BookingID,
		note.Body,
		note.CreatedAt,
		note.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert note",
			zap.Error(err),
			zap.String("category", string(note.Category)),
			zap.String("booking_id", note.BookingID),
		)
		return fmt.Errorf("upsert note %s/%s: %w", note.Category, note.BookingID, err)
	}

	return nil
}

func (r *noteRepository) FindByCategory(ctx context.Context, category entity.NoteCategory) ([]*entity.Note, error) {
	query := `
		SELECT id, category, booking_id, body, created_at, updated_at
		FROM reconciliation_notes
		WHERE category = $1
		ORDER BY booking_id
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		r.log.Error("Failed to find notes by category",
			zap.Error(err),
			zap.String("category", string(category)),
		)
		return nil, fmt.Errorf("find notes by category %s: %w", category, err)
	}
	defer rows.Close()

	var notes []*entity.Note
	for rows.Next() {
		var note entity.Note
		if err := rows.Scan(
			&note.ID,
			&note.Category,
			&note.BookingID,
			&note.Body,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note row: %w", err)
		}
		notes = append(notes, &note)
	}

	return notes, rows.Err()
}

func (r *noteRepository) FindByCategoryAndBooking(ctx context.Context, category entity.NoteCategory, bookingID string) (*entity.Note, error) {
	query := `
		SELECT id, category, booking_id, body, created_at, updated_at
		FROM reconciliation_notes
		WHERE category = $1 AND booking_id = $2
	`

	var note entity.Note
	err := r.db.QueryRow(ctx, query, category, bookingID).Scan(
		&note.ID,
		&note.Category,
		&note.BookingID,
		&note.Body,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find note",
			zap.Error(err),
			zap.String("category", string(category)),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find note %s/%s: %w", category, bookingID, err)
	}

	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, category entity.NoteCategory, bookingID string) error {
	query := `DELETE FROM reconciliation_notes WHERE category = $1 AND booking_id = $2`

	if _, err := r.db.Exec(ctx, query, category, bookingID); err != nil {
		r.log.Error("Failed to delete note",
			zap.Error(err),
			zap.String("category", string(category)),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("delete note %s/%s: %w", category, bookingID, err)
	}

	return nil
}

func (r *noteRepository) DeleteByCategory(ctx context.Context, category entity.NoteCategory) error {
	query := `DELETE FROM reconciliation_notes WHERE category = $1`

	if _, err := r.db.Exec(ctx, query, category); err != nil {
		r.log.Error("Failed to clear notes",
			zap.Error(err),
			zap.String("category", string(category)),
		)
		return fmt.Errorf("clear notes %s: %w", category, err)
	}

	return nil
}
