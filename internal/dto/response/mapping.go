package response

type Mapping struct {
	ID          string `json:"id"`
	MappingType string `json:"mapping_type"`
	SourceItem  string `json:"source_item"`
	Account     string `json:"account"`
	AccountType string `json:"account_type,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
}

type SaveMappingsResult struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}
