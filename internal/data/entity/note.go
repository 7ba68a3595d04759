package entity

// NoteCategory keys a note to the discrepancy table it annotates.
type NoteCategory string

const (
	NoteCategoryMissing       NoteCategory = "missing_bookings"
	NoteCategoryCancelledOpen NoteCategory = "cancelled_vs_open"
	NoteCategoryAmountDiff    NoteCategory = "amount_differences"
	NoteCategoryPaymentRefund NoteCategory = "payment_refund"
)

// ValidNoteCategory reports whether c is one of the four fixed categories.
func ValidNoteCategory(c NoteCategory) bool {
	switch c {
	case NoteCategoryMissing, NoteCategoryCancelledOpen, NoteCategoryAmountDiff, NoteCategoryPaymentRefund:
		return true
	}
	return false
}

// Note is an operator annotation on one booking in one discrepancy table,
// keyed by (category, booking_id).
type Note struct {
	Base
	Category  NoteCategory `db:"category"`
	BookingID string       `db:"booking_id"`
	Body      string       `db:"body"`
}
