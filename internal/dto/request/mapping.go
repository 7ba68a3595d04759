package request

// SaveMappingsRequest replaces the active mapping generation. Entries with
// no account selected are skipped, matching the operator workflow where
// unmapped rows stay in the editor.
type SaveMappingsRequest struct {
	Mappings []MappingInput `json:"mappings" validate:"required,min=1,dive"`
}

type MappingInput struct {
	MappingType string `json:"mapping_type" validate:"required,oneof=tour_revenue fee_revenue payment_type"`
	SourceItem  string `json:"source_item" validate:"required"`
	Account     string `json:"account"`
	AccountType string `json:"account_type,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
}
