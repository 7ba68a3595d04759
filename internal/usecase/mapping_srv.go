package usecase

import (
	"context"
	"fmt"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/matcher"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

type MappingService interface {
	GetMappings(ctx context.Context) ([]response.Mapping, error)
	SaveMappings(ctx context.Context, req *request.SaveMappingsRequest) (*response.SaveMappingsResult, error)
	GetCatalog(ctx context.Context) ([]matcher.CatalogItem, error)
}

type mappingService struct {
	repo repository.MappingRepository
	log  *zap.Logger
}

func NewMappingService(repo repository.MappingRepository, log *zap.Logger) MappingService {
	return &mappingService{
		repo: repo,
		log:  log.With(zap.String("service", "mapping")),
	}
}

func (s *mappingService) GetMappings(ctx context.Context) ([]response.Mapping, error) {
	mappings, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get mappings: %w", err)
	}

	result := make([]response.Mapping, len(mappings))
	for i, m := range mappings {
		result[i] = response.Mapping{
			ID:          m.ID.String(),
			MappingType: string(m.MappingType),
			SourceItem:  m.SourceItem,
			Account:     m.Account,
			AccountType: m.AccountType,
			AccountID:   m.AccountID,
		}
	}

	return result, nil
}

// SaveMappings replaces the active mapping generation: everything currently
// active is retired, then each submitted row with an account is upserted.
// Rows without an account are counted as skipped, not errors.
func (s *mappingService) SaveMappings(ctx context.Context, req *request.SaveMappingsRequest) (*response.SaveMappingsResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Save mappings validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.repo.DeactivateAll(ctx); err != nil {
		return nil, fmt.Errorf("save mappings: %w", err)
	}

	result := &response.SaveMappingsResult{}
	for _, input := range req.Mappings {
		if input.Account == "" {
			result.Skipped++
			continue
		}

		mapping := &entity.AccountMapping{
			MappingType: entity.MappingType(input.MappingType),
			SourceItem:  input.SourceItem,
			Account:     input.Account,
			AccountType: input.AccountType,
			AccountID:   input.AccountID,
		}

		if err := s.repo.Upsert(ctx, mapping); err != nil {
			return nil, fmt.Errorf("save mapping %s/%s: %w", input.MappingType, input.SourceItem, err)
		}
		result.Saved++
	}

	s.log.Info("Mappings saved",
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// GetCatalog lists the active item mappings as the fuzzy-match catalog:
// tour items first, then fee items, each ordered by source name. Payment-type
// mappings never enter the catalog. This order is the documented match
// tie-break.
func (s *mappingService) GetCatalog(ctx context.Context) ([]matcher.CatalogItem, error) {
	var catalog []matcher.CatalogItem
	for _, mappingType := range []entity.MappingType{entity.MappingTypeTourRevenue, entity.MappingTypeFeeRevenue} {
		mappings, err := s.repo.FindActiveByType(ctx, mappingType)
		if err != nil {
			return nil, fmt.Errorf("get catalog: %w", err)
		}
		for _, m := range mappings {
			if m.AccountID == "" {
				continue
			}
			catalog = append(catalog, matcher.CatalogItem{ID: m.AccountID, Name: m.SourceItem})
		}
	}

	return catalog, nil
}
