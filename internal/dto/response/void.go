package response

// VoidDispatchResult is the per-document outcome of a void dispatch run.
type VoidDispatchResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DocNumber   string `json:"doc_number"`
	FHBookingID string `json:"fh_booking_id"`
	Timestamp   string `json:"timestamp"`
}

type VoidDispatchReport struct {
	Dispatched int                  `json:"dispatched"`
	Failed     int                  `json:"failed"`
	Results    []VoidDispatchResult `json:"results"`
}
