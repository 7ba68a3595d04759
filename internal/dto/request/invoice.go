package request

// BuildInvoiceRequest carries one booking payload plus the accounting-item
// catalog to match lines against. Catalog order is significant: the fuzzy
// matcher returns the first qualifying entry. When the catalog is omitted
// the service loads active item mappings ordered by name.
type BuildInvoiceRequest struct {
	Booking  *Booking         `json:"booking" validate:"required"`
	Catalog  []CatalogItem    `json:"catalog,omitempty" validate:"omitempty,dive"`
	Existing *ExistingInvoice `json:"existing_invoice,omitempty"`
	// UpdateNeeded forces the update path even without a rebooking link.
	UpdateNeeded bool `json:"update_needed"`
}

type CatalogItem struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ExistingInvoice describes the invoice a rebooked booking may replace.
type ExistingInvoice struct {
	ID        string `json:"id"`
	SyncToken string `json:"sync_token"`
	Memo      string `json:"memo"`
}

// Booking is the booking-platform payload the invoice builder consumes.
// All money fields are minor currency units (cents).
type Booking struct {
	PK              int64        `json:"pk" validate:"required"`
	UUID            string       `json:"uuid" validate:"required"`
	Availability    Availability `json:"availability"`
	Customers       []Customer   `json:"customers"`
	ReceiptSubtotal int64        `json:"receipt_subtotal"`
	ReceiptTaxes    int64        `json:"receipt_taxes"`
	RebookedFrom    string       `json:"rebooked_from,omitempty"`
	CreatedAt       string       `json:"created_at,omitempty"`
}

type Availability struct {
	Item                 Item                  `json:"item"`
	CustomFieldInstances []CustomFieldInstance `json:"custom_field_instances,omitempty"`
	CustomerTypeRates    []CustomerTypeRate    `json:"customer_type_rates,omitempty"`
}

type Item struct {
	PK   int64  `json:"pk"`
	Name string `json:"name"`
}

// CustomerTypeRate is one priced customer type on the availability
// ("Adult", "Private Charter"). Total is the prototype's listed price;
// zero means variable pricing resolved per customer.
type CustomerTypeRate struct {
	CustomerPrototype    CustomerPrototype     `json:"customer_prototype"`
	Total                int64                 `json:"total"`
	CustomFieldInstances []CustomFieldInstance `json:"custom_field_instances,omitempty"`
}

type CustomerPrototype struct {
	DisplayName string `json:"display_name"`
}

type Customer struct {
	CustomerTypeRate CustomerTypeRate `json:"customer_type_rate"`
	// TotalCost is this customer's individual price, used when the
	// prototype total is zero (variable-priced products).
	TotalCost         int64              `json:"total_cost"`
	CustomFieldValues []CustomFieldValue `json:"custom_field_values,omitempty"`
}

type CustomFieldInstance struct {
	CustomField CustomField `json:"custom_field"`
}

// CustomField is a chargeable extra. Offset is the fee amount in minor
// units; zero or negative means not chargeable. Type "yes-no" fields only
// count when their value is affirmative.
type CustomField struct {
	Name                string `json:"name"`
	Offset              int64  `json:"offset"`
	IsAlwaysPerCustomer bool   `json:"is_always_per_customer"`
	Type                string `json:"type,omitempty"`
}

type CustomFieldValue struct {
	CustomField CustomField `json:"custom_field"`
	Value       string      `json:"value"`
}
