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

type MappingRepository interface {
	FindActive(ctx context.Context) ([]*entity.AccountMapping, error)
	FindActiveByType(ctx context.Context, mappingType entity.MappingType) ([]*entity.AccountMapping, error)
	DeactivateAll(ctx context.Context) error
	Upsert(ctx context.Context, mapping *entity.AccountMapping) error
}

type mappingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMappingRepository(db database.PgxIface, log *zap.Logger) MappingRepository {
	return &mappingRepository{
		db:  db,
		log: log.With(zap.String("repository", "mapping")),
	}
}

func (r *mappingRepository) FindActive(ctx context.Context) ([]*entity.AccountMapping, error) {
	query := `
		SELECT id, mapping_type, source_item, account, account_type, account_id, is_active, created_at, updated_at
		FROM account_mappings
		WHERE is_active = true
		ORDER BY mapping_type, source_item
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active mappings", zap.Error(err))
		return nil, fmt.Errorf("find active mappings: %w", err)
	}
	defer rows.Close()

	return scanMappings(rows)
}

func (r *mappingRepository) FindActiveByType(ctx context.Context, mappingType entity.MappingType) ([]*entity.AccountMapping, error) {
	query := `
		SELECT id, mapping_type, source_item, account, account_type, account_id, is_active, created_at, updated_at
		FROM account_mappings
		WHERE is_active = true AND mapping_type = $1
		ORDER BY source_item
	`

	rows, err := r.db.Query(ctx, query, mappingType)
	if err != nil {
		r.log.Error("Failed to find mappings by type",
			zap.Error(err),
			zap.String("mapping_type", string(mappingType)),
		)
		return nil, fmt.Errorf("find mappings by type %s: %w", mappingType, err)
	}
	defer rows.Close()

	return scanMappings(rows)
}

// DeactivateAll retires the current mapping generation before a save-all.
func (r *mappingRepository) DeactivateAll(ctx context.Context) error {
	query := `UPDATE account_mappings SET is_active = false, updated_at = $1`

	if _, err := r.db.Exec(ctx, query, time.Now()); err != nil {
		r.log.Error("Failed to deactivate mappings", zap.Error(err))
		return fmt.Errorf("deactivate mappings: %w", err)
	}

	return nil
}

func (r *mappingRepository) Upsert(ctx context.Context, mapping *entity.AccountMapping) error {
	query := `
		INSERT INTO account_mappings (id, mapping_type, source_item, account, account_type, account_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
		ON CONFLICT (mapping_type, source_item) DO UPDATE SET
			account = EXCLUDED.account,
			account_type = EXCLUDED.account_type,
			account_id = EXCLUDED.account_id,
			is_active = true,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if mapping.ID == uuid.Nil {
		mapping.ID = uuid.New()
		mapping.CreatedAt = now
	}
	mapping.UpdatedAt = now
	mapping.IsActive = true

	_, err := r.db.Exec(ctx, query,
		mapping.ID,
		mapping.MappingType,
		mapping.SourceItem,
		mapping.Account,
		mapping.AccountType,
		mapping.AccountID,
		mapping.CreatedAt,
		mapping.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert mapping",
			zap.Error(err),
			zap.String("mapping_type", string(mapping.MappingType)),
			zap.String("source_item", mapping.SourceItem),
		)
		return fmt.Errorf("upsert mapping %s/%s: %w", mapping.MappingType, mapping.SourceItem, err)
	}

	return nil
}

func scanMappings(rows pgx.Rows) ([]*entity.AccountMapping, error) {
	var mappings []*entity.AccountMapping
	for rows.Next() {
		var m entity.AccountMapping
		if err := rows.Scan(
			&m.ID,
			&m.MappingType,
			&m.SourceItem,
			&m.Account,
			&m.AccountType,
			&m.AccountID,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan mapping row: %w", err)
		}
		mappings = append(mappings, &m)
	}

	return mappings, rows.Err()
}
