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

type FeeRepository interface {
	Create(ctx context.Context, fee *entity.Fee) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Fee, error)
	FindAllActive(ctx context.Context) ([]*entity.Fee, error)
	Update(ctx context.Context, fee *entity.Fee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type feeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeeRepository(db database.PgxIface, log *zap.Logger) FeeRepository {
	return &feeRepository{
		db:  db,
		log: log.With(zap.String("repository", "fee")),
	}
}

func (r *feeRepository) Create(ctx context.Context, fee *entity.Fee) error {
	query := `
		INSERT INTO fees (id, name, amount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		fee.ID,
		fee.Name,
		fee.Amount,
		fee.IsActive,
		fee.CreatedAt,
		fee.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create fee",
			zap.Error(err),
			zap.String("name", fee.Name),
		)
		return fmt.Errorf("create fee %s: %w", fee.Name, err)
	}

	return nil
}

func (r *feeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Fee, error) {
	query := `
		SELECT id, name, amount, is_active, created_at, updated_at
		FROM fees
		WHERE id = $1
	`

	var fee entity.Fee
	err := r.db.QueryRow(ctx, query, id).Scan(
		&fee.ID,
		&fee.Name,
		&fee.Amount,
		&fee.IsActive,
		&fee.CreatedAt,
		&fee.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find fee by ID",
			zap.Error(err),
			zap.String("fee_id", id.String()),
		)
		return nil, fmt.Errorf("find fee by ID %s: %w", id.String(), err)
	}

	return &fee, nil
}

func (r *feeRepository) FindAllActive(ctx context.Context) ([]*entity.Fee, error) {
	query := `
		SELECT id, name, amount, is_active, created_at, updated_at
		FROM fees
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active fees", zap.Error(err))
		return nil, fmt.Errorf("find active fees: %w", err)
	}
	defer rows.Close()

	var fees []*entity.Fee
	for rows.Next() {
		var fee entity.Fee
		if err := rows.Scan(
			&fee.ID,
			&fee.Name,
			&fee.Amount,
			&fee.IsActive,
			&fee.CreatedAt,
			&fee.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fee row: %w", err)
		}
		fees = append(fees, &fee)
	}

	return fees, rows.Err()
}

func (r *feeRepository) Update(ctx context.Context, fee *entity.Fee) error {
	query := `
		UPDATE fees
		SET name = $2, amount = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`

	fee.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		fee.ID,
		fee.Name,
		fee.Amount,
		fee.IsActive,
		fee.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update fee",
			zap.Error(err),
			zap.String("fee_id", fee.ID.String()),
		)
		return fmt.Errorf("update fee %s: %w", fee.ID.String(), err)
	}

	return nil
}

func (r *feeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM fees WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete fee",
			zap.Error(err),
			zap.String("fee_id", id.String()),
		)
		return fmt.Errorf("delete fee %s: %w", id.String(), err)
	}

	return nil
}
