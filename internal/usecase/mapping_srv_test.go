package usecase

import (
	"context"
	"testing"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/internal/dto/request"

	"go.uber.org/zap"
)

// fakeMappingRepo serves mappings from memory.
type fakeMappingRepo struct {
	mappings    []*entity.AccountMapping
	deactivated bool
	upserted    []*entity.AccountMapping
}

func (f *fakeMappingRepo) FindActive(ctx context.Context) ([]*entity.AccountMapping, error) {
	var out []*entity.AccountMapping
	for _, m := range f.mappings {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMappingRepo) FindActiveByType(ctx context.Context, mappingType entity.MappingType) ([]*entity.AccountMapping, error) {
	var out []*entity.AccountMapping
	for _, m := range f.mappings {
		if m.IsActive && m.MappingType == mappingType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMappingRepo) DeactivateAll(ctx context.Context) error {
	f.deactivated = true
	for _, m := range f.mappings {
		m.IsActive = false
	}
	return nil
}

func (f *fakeMappingRepo) Upsert(ctx context.Context, mapping *entity.AccountMapping) error {
	mapping.IsActive = true
	f.upserted = append(f.upserted, mapping)
	f.mappings = append(f.mappings, mapping)
	return nil
}

func mixedMappings() []*entity.AccountMapping {
	return []*entity.AccountMapping{
		{MappingType: entity.MappingTypePaymentType, SourceItem: "Cash", AccountID: "77", IsActive: true},
		{MappingType: entity.MappingTypeTourRevenue, SourceItem: "Whale Watching Tour", AccountID: "10", IsActive: true},
		{MappingType: entity.MappingTypeFeeRevenue, SourceItem: "Stewardship Fee", AccountID: "20", IsActive: true},
		{MappingType: entity.MappingTypeFeeRevenue, SourceItem: "Unmapped Fee", AccountID: "", IsActive: true},
	}
}

func TestGetCatalogExcludesPaymentTypes(t *testing.T) {
	svc := NewMappingService(&fakeMappingRepo{mappings: mixedMappings()}, zap.NewNop())

	catalog, err := svc.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("GetCatalog returned error: %v", err)
	}

	if len(catalog) != 2 {
		t.Fatalf("catalog = %+v, want 2 entries", catalog)
	}
	// Tour items first, then fee items.
	if catalog[0].ID != "10" || catalog[1].ID != "20" {
		t.Errorf("catalog order = [%s %s], want [10 20]", catalog[0].ID, catalog[1].ID)
	}
	for _, item := range catalog {
		if item.ID == "77" {
			t.Errorf("payment-type mapping %q entered the catalog", item.Name)
		}
	}
}

func TestSaveMappingsDeactivatesThenUpserts(t *testing.T) {
	repo := &fakeMappingRepo{mappings: mixedMappings()}
	svc := NewMappingService(repo, zap.NewNop())

	result, err := svc.SaveMappings(context.Background(), &request.SaveMappingsRequest{
		Mappings: []request.MappingInput{
			{MappingType: "tour_revenue", SourceItem: "Whale Watching Tour", Account: "Tour Sales", AccountID: "10"},
			{MappingType: "payment_type", SourceItem: "Visa", Account: ""},
		},
	})
	if err != nil {
		t.Fatalf("SaveMappings returned error: %v", err)
	}

	if !repo.deactivated {
		t.Error("existing generation was not deactivated before the save")
	}
	if result.Saved != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 1 saved and 1 skipped", result)
	}
	if len(repo.upserted) != 1 || repo.upserted[0].SourceItem != "Whale Watching Tour" {
		t.Errorf("upserted = %+v, want only the mapped row", repo.upserted)
	}
}
