package budgets

// PriceBreakdown carries every intermediate figure of the pricing ladder so
// documents can show them without recomputing anything.
type PriceBreakdown struct {
	RawCost            float64 `json:"raw_cost"`
	MarginAmount       float64 `json:"margin_amount"`
	SubtotalWithMargin float64 `json:"subtotal_with_margin"`
	DiscountAmount     float64 `json:"discount_amount"`
	FinalTotal         float64 `json:"final_total"`
}

// Price derives the full breakdown from the budget's mutable fields. Pure
// and total over numeric input; the order matters because a percent
// discount applies to the post-margin subtotal, not the raw cost. The
// final total is not clamped at zero; callers decide what a non-positive
// total means.
func Price(items []LineItem, utilityMarginPercent float64, discount Discount) PriceBreakdown {
	var raw float64
	for _, item := range items {
		raw += item.Subtotal
	}

	margin := raw * utilityMarginPercent / 100
	subtotal := raw + margin

	var off float64
	switch discount.Kind {
	case DiscountPercent:
		off = subtotal * discount.Value / 100
	case DiscountFixed:
		off = discount.Value
	}

	return PriceBreakdown{
		RawCost:            raw,
		MarginAmount:       margin,
		SubtotalWithMargin: subtotal,
		DiscountAmount:     off,
		FinalTotal:         subtotal - off,
	}
}

// PriceOf prices a whole budget document.
func PriceOf(b Budget) PriceBreakdown {
	return Price(b.Items, b.UtilityMarginPercent, b.Discount)
}
