package budgets

type LineItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	// UnitCost carries the editor's snapshot. When absent the cost is
	// re-snapshotted from the catalogue (item added or product changed);
	// when present it is kept as-is (quantity-only edits).
	UnitCost *float64 `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
}

type DiscountRequest struct {
	Kind   DiscountKind `json:"kind" validate:"required,oneof=none percent fixed"`
	Value  float64      `json:"value,omitempty" validate:"gte=0"`
	Reason string       `json:"reason,omitempty" validate:"max=120"`
}

type SaveBudgetRequest struct {
	ClientID             *string           `json:"client_id,omitempty"`
	Items                []LineItemRequest `json:"items" validate:"dive"`
	UtilityMarginPercent float64           `json:"utility_margin_percent" validate:"gte=0"`
	Discount             DiscountRequest   `json:"discount"`
}

// ConfirmResult reports everything a caller needs to judge a confirmation,
// including the warning the source only ever showed as an alert.
type ConfirmResult struct {
	Budget      *Budget         `json:"budget"`
	Breakdown   PriceBreakdown  `json:"breakdown"`
	LedgerEntry string          `json:"ledger_entry_id"`
	Warning     string          `json:"warning,omitempty"`
}
