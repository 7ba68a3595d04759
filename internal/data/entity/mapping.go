package entity

// MappingType separates the three mapping tables the operator maintains.
type MappingType string

const (
	MappingTypeTourRevenue MappingType = "tour_revenue"
	MappingTypeFeeRevenue  MappingType = "fee_revenue"
	MappingTypePaymentType MappingType = "payment_type"
)

// AccountMapping links one booking-platform item (tour name, fee name or
// payment type) to an accounting-system account. Saves deactivate the old
// generation instead of deleting it.
type AccountMapping struct {
	Base
	MappingType MappingType `db:"mapping_type"`
	SourceItem  string      `db:"source_item"`
	Account     string      `db:"account"`
	AccountType string      `db:"account_type"`
	AccountID   string      `db:"account_id"`
	IsActive    bool        `db:"is_active"`
}
