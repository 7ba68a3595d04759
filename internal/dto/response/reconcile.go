package response

// ReconcileReport bundles the four independent classifications produced by
// one reconciliation run, with operator notes merged in.
type ReconcileReport struct {
	Summary           ReconcileSummary     `json:"summary"`
	Missing           []MissingBookingRow  `json:"missing_bookings"`
	CancelledOpen     []CancelledOpenRow   `json:"cancelled_but_open"`
	AmountMismatches  []AmountMismatchRow  `json:"amount_mismatches"`
	PaymentMismatches []PaymentMismatchRow `json:"payment_mismatches"`
	VoidCandidates    []VoidCandidate      `json:"void_candidates,omitempty"`
}

type ReconcileSummary struct {
	BookingCount         int `json:"booking_count"`
	LedgerCount          int `json:"ledger_count"`
	MissingCount         int `json:"missing_count"`
	CancelledOpenCount   int `json:"cancelled_open_count"`
	AmountMismatchCount  int `json:"amount_mismatch_count"`
	PaymentMismatchCount int `json:"payment_mismatch_count"`
}

// MissingBookingRow is a booking with no ledger presence at all.
type MissingBookingRow struct {
	BookingID string  `json:"booking_id"`
	Contact   string  `json:"contact,omitempty"`
	Item      string  `json:"item,omitempty"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// CancelledOpenRow is a cancelled booking whose ledger document still
// carries an open balance.
type CancelledOpenRow struct {
	BookingID   string  `json:"booking_id"`
	Contact     string  `json:"contact,omitempty"`
	DocNumber   string  `json:"doc_number,omitempty"`
	OpenBalance float64 `json:"open_balance"`
	Note        string  `json:"note,omitempty"`
}

// AmountMismatchRow compares the booking total against the ledger amount.
// Cancelled bookings compare against their effective total: the paid amount
// when anything was collected, zero otherwise.
type AmountMismatchRow struct {
	BookingID      string  `json:"booking_id"`
	Contact        string  `json:"contact,omitempty"`
	BookingTotal   float64 `json:"booking_total"`
	EffectiveTotal float64 `json:"effective_total"`
	LedgerAmount   float64 `json:"ledger_amount"`
	Difference     float64 `json:"difference"`
	Cancelled      bool    `json:"cancelled"`
	Note           string  `json:"note,omitempty"`
}

type PaymentMismatchRow struct {
	BookingID      string  `json:"booking_id"`
	Issue          string  `json:"issue"`
	BookingPaid    float64 `json:"booking_paid"`
	LedgerPayments float64 `json:"ledger_payments"`
	LedgerRefunds  float64 `json:"ledger_refunds"`
	Difference     float64 `json:"difference"`
	Note           string  `json:"note,omitempty"`
}

// VoidCandidate is a ledger document eligible for voiding because its
// booking was cancelled with nothing collected.
type VoidCandidate struct {
	DocNumber string `json:"doc_number"`
	BookingID string `json:"booking_id"`
}
