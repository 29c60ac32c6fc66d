package materials

type CreateMaterialRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Category    string  `json:"category" validate:"required,oneof=perlas cadenas dijes otros"`
	Unit        string  `json:"unit" validate:"required,max=30"`
	CostPerUnit float64 `json:"cost_per_unit" validate:"gte=0"`
	Stock       float64 `json:"stock" validate:"gte=0"`
}

type UpdateMaterialRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=perlas cadenas dijes otros"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=30"`
	CostPerUnit *float64 `json:"cost_per_unit,omitempty" validate:"omitempty,gte=0"`
	Stock       *float64 `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
