package response

import "time"

type Note struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	BookingID string    `json:"booking_id"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}
