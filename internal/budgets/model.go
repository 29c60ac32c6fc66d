package budgets

import (
	"errors"
	"fmt"
	"time"

	"github.com/jana-studio/taller/internal/catalog/products"
)

// Status is the budget lifecycle state. There are exactly two states and
// one legal transition; confirmed is terminal and freezes the document.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
)

// ErrConfirmed is returned by every operation that would mutate a
// confirmed budget.
var ErrConfirmed = errors.New("budget is confirmed and can no longer be modified")

// Transition is the single place status changes are decided.
func Transition(from, to Status) (Status, error) {
	if from == StatusDraft && to == StatusConfirmed {
		return StatusConfirmed, nil
	}
	return from, fmt.Errorf("%w: cannot move %s to %s", ErrConfirmed, from, to)
}

// DiscountKind discriminates the two mutually exclusive discount
// representations. The kind is stored explicitly, never inferred from the
// reason text.
type DiscountKind string

const (
	DiscountNone    DiscountKind = "none"
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

type Discount struct {
	Kind   DiscountKind `json:"kind"`
	Value  float64      `json:"value,omitempty"`
	Reason string       `json:"reason,omitempty"`
}

// Label renders the human-readable text shown on documents.
func (d Discount) Label() string {
	switch d.Kind {
	case DiscountPercent:
		return fmt.Sprintf("Descuento %g%%", d.Value)
	case DiscountFixed:
		if d.Reason != "" {
			return d.Reason
		}
		return "Descuento"
	default:
		return ""
	}
}

// LineItem is one catalogue product plus quantity inside a budget. It has
// no identity of its own; it lives and dies with the budget.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	Subtotal  float64 `json:"subtotal"`
}

// NewLineItem snapshots the product's current cost. The snapshot does not
// follow later catalogue changes.
func NewLineItem(p products.Product, quantity int) LineItem {
	item := LineItem{ProductID: p.ID, Quantity: quantity, UnitCost: p.TotalCost}
	item.recompute()
	return item
}

// SetQuantity keeps the stored unit cost; quantity edits never re-fetch.
func (li *LineItem) SetQuantity(quantity int) {
	li.Quantity = quantity
	li.recompute()
}

// SetProduct re-snapshots the cost from the newly selected product.
func (li *LineItem) SetProduct(p products.Product) {
	li.ProductID = p.ID
	li.UnitCost = p.TotalCost
	li.recompute()
}

func (li *LineItem) recompute() {
	li.Subtotal = li.UnitCost * float64(li.Quantity)
}

// DefaultUtilityMargin is the percentage a fresh draft starts with.
const DefaultUtilityMargin = 100.0

// Budget is the central document: a priced quote, draft or confirmed.
// Total is the snapshot persisted at save time, never recomputed on read.
type Budget struct {
	ID                   string     `json:"id"`
	Date                 time.Time  `json:"date"`
	ClientID             *string    `json:"client_id,omitempty"`
	Items                []LineItem `json:"items"`
	UtilityMarginPercent float64    `json:"utility_margin_percent"`
	Discount             Discount   `json:"discount"`
	Status               Status     `json:"status"`
	Total                float64    `json:"total"`
}

// ShortID is the human-readable identifier printed on documents.
func (b Budget) ShortID() string {
	if len(b.ID) <= 6 {
		return b.ID
	}
	return b.ID[len(b.ID)-6:]
}

// Editable reports whether the document may still be mutated.
func (b Budget) Editable() bool {
	return b.Status == StatusDraft
}
