package entity

// Fee is an administrative fee definition. Amount is in minor currency
// units to match the booking platform's custom-field offsets.
type Fee struct {
	Base
	Name     string `db:"name"`
	Amount   int64  `db:"amount"`
	IsActive bool   `db:"is_active"`
}
