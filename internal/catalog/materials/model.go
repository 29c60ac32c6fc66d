package materials

// Category buckets match the ones the workshop actually uses.
const (
	CategoryPearls = "perlas"
	CategoryChains = "cadenas"
	CategoryCharms = "dijes"
	CategoryOther  = "otros"
)

// Material is a raw input kept in stock; products reference it through
// their cost breakdown.
type Material struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	CostPerUnit float64 `json:"cost_per_unit"`
	Stock       float64 `json:"stock"`
}
