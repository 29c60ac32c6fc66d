// Package storefront is the public, read-only face of the catalogue: a
// listing, a per-device cart snapshot and a WhatsApp order hand-off.
// There is no checkout; the order leaves the system as a text message.
package storefront

// ListingItem is the public projection of a catalogue product. Costs and
// margins are never exposed here.
type ListingItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category,omitempty"`
	SuggestedPrice float64 `json:"suggested_price"`
	ImageRef       *string `json:"image_ref,omitempty"`
}

// CartItem is one product reference inside a device's cart.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// Cart is the snapshot stored per device id. It mirrors what the
// visitor's browser holds; the server copy survives device storage loss.
type Cart struct {
	DeviceID string     `json:"device_id"`
	Items    []CartItem `json:"items"`
}

// SaveCartRequest replaces the device's cart wholesale.
type SaveCartRequest struct {
	Items []CartItem `json:"items" validate:"dive"`
}

// OrderLine is one resolved, priced row of the order summary.
type OrderLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Order is the hand-off payload: the plain-text summary plus the
// WhatsApp link that carries it.
type Order struct {
	Lines       []OrderLine `json:"lines"`
	Total       float64     `json:"total"`
	Message     string      `json:"message"`
	WhatsAppURL string      `json:"whatsapp_url"`
}
