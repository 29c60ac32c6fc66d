package products

import "time"

// CostComponent is one raw-material line of a product's cost breakdown.
// Subtotal is snapshotted when the component is added or edited, not
// live-linked to the material's current cost.
type CostComponent struct {
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

// Product is a catalogue design. TotalCost is the roll-up of its
// components; SuggestedPrice defaults to twice the cost and may be
// overridden manually.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category,omitempty"`
	Items          []CostComponent `json:"items"`
	TotalCost      float64         `json:"total_cost"`
	SuggestedPrice float64         `json:"suggested_price"`
	ImageRef       *string         `json:"image_ref,omitempty"`
	DateCreated    time.Time       `json:"date_created"`
}

// RollUpCost returns the sum of component subtotals.
func RollUpCost(items []CostComponent) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return total
}

// DefaultSuggestedPrice is the standard workshop markup over raw cost.
func DefaultSuggestedPrice(totalCost float64) float64 {
	return 2 * totalCost
}
