package request

// ReconcileRequest carries one reconciliation batch: the booking-platform
// export and the accounting-ledger export. Rows arrive pre-parsed; file
// handling is the caller's concern.
type ReconcileRequest struct {
	Bookings []BookingRow `json:"bookings" validate:"required,min=1,dive"`
	Ledger   []LedgerRow  `json:"ledger" validate:"dive"`
}

// BookingRow is one row of the booking-platform export. Amounts are major
// currency units as exported.
type BookingRow struct {
	BookingID string  `json:"booking_id" validate:"required"`
	Contact   string  `json:"contact,omitempty"`
	Item      string  `json:"item,omitempty"`
	Total     float64 `json:"total"`
	TotalPaid float64 `json:"total_paid"`
	TotalTax  float64 `json:"total_tax"`
	AmountDue float64 `json:"amount_due"`
	Paid      bool    `json:"paid"`
	Cancelled bool    `json:"cancelled"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// LedgerRow is one accounting-ledger transaction. The booking identifier is
// not structured; it is extracted from the doc number or memo text.
// Positive amounts are payments, negative amounts refunds.
type LedgerRow struct {
	DocNumber   string  `json:"doc_number,omitempty"`
	Memo        string  `json:"memo,omitempty"`
	Name        string  `json:"name,omitempty"`
	Amount      float64 `json:"amount"`
	TaxAmount   float64 `json:"tax_amount"`
	OpenBalance float64 `json:"open_balance"`
}
