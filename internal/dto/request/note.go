package request

type UpsertNoteRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Body      string `json:"body" validate:"required,max=500"`
}
