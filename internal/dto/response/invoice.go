package response

// InvoiceBuildResult is the full output of one invoice derivation: the
// payload to send to the accounting system plus a diagnostics record that is
// produced on every run, including failures surfaced alongside an error.
type InvoiceBuildResult struct {
	Action      string             `json:"action"`
	Payload     *InvoicePayload    `json:"payload,omitempty"`
	Diagnostics InvoiceDiagnostics `json:"diagnostics"`
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// InvoicePayload mirrors the accounting system's invoice shape. Amounts are
// major currency units.
type InvoicePayload struct {
	DocNumber string        `json:"doc_number"`
	InvoiceID string        `json:"invoice_id,omitempty"`
	SyncToken string        `json:"sync_token,omitempty"`
	Memo      string        `json:"memo"`
	BookingID string        `json:"booking_id"`
	Lines     []InvoiceLine `json:"lines"`
	Subtotal  float64       `json:"subtotal"`
	Discount  float64       `json:"discount,omitempty"`
	Tax       TaxSummary    `json:"tax"`
}

type InvoiceLine struct {
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	DetailType  string           `json:"detail_type"`
	SalesItem   *SalesItemDetail `json:"sales_item_detail,omitempty"`
	Discount    *DiscountDetail  `json:"discount_detail,omitempty"`
}

const (
	DetailSalesItem = "SalesItemLineDetail"
	DetailDiscount  = "DiscountLineDetail"
)

type SalesItemDetail struct {
	ItemRef   string  `json:"item_ref"`
	ItemName  string  `json:"item_name,omitempty"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	TaxCode   string  `json:"tax_code,omitempty"`
	ClassRef  string  `json:"class_ref,omitempty"`
}

type DiscountDetail struct {
	Amount       float64 `json:"amount"`
	PercentBased bool    `json:"percent_based"`
}

// TaxSummary reports the flat-rate tax block appended to every invoice.
type TaxSummary struct {
	RatePercent float64 `json:"rate_percent"`
	TaxTotal    float64 `json:"tax_total"`
	NetSubtotal float64 `json:"net_subtotal"`
}

// InvoiceDiagnostics records what the derivation did, for operator review.
type InvoiceDiagnostics struct {
	StartedAt         string   `json:"started_at"`
	BookingID         string   `json:"booking_id"`
	Action            string   `json:"action"`
	MatchedRebooking  bool     `json:"matched_rebooking"`
	FallbackTriggered bool     `json:"fallback_triggered"`
	SubtotalBefore    float64  `json:"subtotal_before"`
	SubtotalAfter     float64  `json:"subtotal_after"`
	BookingSubtotal   float64  `json:"booking_subtotal"`
	UnmatchedItems    []string `json:"unmatched_items,omitempty"`
}
