package request

type CreateFeeRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	// Amount in minor currency units.
	Amount int64 `json:"amount" validate:"min=0"`
}

type UpdateFeeRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Amount   int64  `json:"amount" validate:"min=0"`
	IsActive bool   `json:"is_active"`
}
