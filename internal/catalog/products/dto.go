package products

type CostComponentRequest struct {
	MaterialID string  `json:"material_id" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
}

type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required,max=120"`
	Description string                 `json:"description,omitempty" validate:"max=500"`
	Category    string                 `json:"category,omitempty" validate:"max=60"`
	Items       []CostComponentRequest `json:"items" validate:"required,min=1,dive"`
	// SuggestedPrice overrides the 2x-cost default when positive.
	SuggestedPrice float64 `json:"suggested_price,omitempty" validate:"gte=0"`
	ImageRef       *string `json:"image_ref,omitempty"`
}

type UpdateProductRequest struct {
	Name           *string                 `json:"name,omitempty" validate:"omitempty,max=120"`
	Description    *string                 `json:"description,omitempty" validate:"omitempty,max=500"`
	Category       *string                 `json:"category,omitempty" validate:"omitempty,max=60"`
	Items          *[]CostComponentRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	SuggestedPrice *float64                `json:"suggested_price,omitempty" validate:"omitempty,gte=0"`
	ImageRef       *string                 `json:"image_ref,omitempty"`
}
