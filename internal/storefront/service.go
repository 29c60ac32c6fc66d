package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/document"
	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/settings"
)

const cartTTL = 90 * 24 * time.Hour

// ErrNoCart is returned when a device has no stored cart snapshot.
var ErrNoCart = fmt.Errorf("%w: no cart for this device", httpx.ErrNotFound)

// ErrEmptyOrder rejects a hand-off with nothing to order.
var ErrEmptyOrder = fmt.Errorf("%w: the cart is empty", httpx.ErrValidation)

type Service struct {
	products products.Repository
	cache    *redis.Client
	settings *settings.Service
	fallback string
}

// NewService wires the storefront. fallbackNumber is used when the brand
// settings carry no contact number.
func NewService(productRepo products.Repository, cache *redis.Client, settingsSvc *settings.Service, fallbackNumber string) *Service {
	return &Service{products: productRepo, cache: cache, settings: settingsSvc, fallback: fallbackNumber}
}

// Listing returns the public catalogue projection.
func (s *Service) Listing(ctx context.Context) ([]ListingItem, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ListingItem, 0, len(all))
	for _, p := range all {
		items = append(items, ListingItem{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Category:       p.Category,
			SuggestedPrice: p.SuggestedPrice,
			ImageRef:       p.ImageRef,
		})
	}
	return items, nil
}

func cartKey(deviceID string) string {
	return "cart:" + deviceID
}

// GetCart loads the device's snapshot.
func (s *Service) GetCart(ctx context.Context, deviceID string) (*Cart, error) {
	raw, err := s.cache.Get(ctx, cartKey(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoCart
	}
	if err != nil {
		return nil, fmt.Errorf("storefront: load cart: %w", err)
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("storefront: decode cart: %w", err)
	}
	return &cart, nil
}

// SaveCart replaces the device's snapshot wholesale, the same way the
// browser overwrites its local copy.
func (s *Service) SaveCart(ctx context.Context, deviceID string, req SaveCartRequest) (*Cart, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}
	cart := Cart{DeviceID: deviceID, Items: req.Items}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("storefront: encode cart: %w", err)
	}
	if err := s.cache.Set(ctx, cartKey(deviceID), data, cartTTL).Err(); err != nil {
		return nil, fmt.Errorf("storefront: save cart: %w", err)
	}
	return &cart, nil
}

// ClearCart drops the device's snapshot. Clearing an absent cart is fine.
func (s *Service) ClearCart(ctx context.Context, deviceID string) error {
	if err := s.cache.Del(ctx, cartKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("storefront: clear cart: %w", err)
	}
	return nil
}

// BuildOrder turns the device's cart into the hand-off message and link.
// Cart lines whose product vanished from the catalogue are dropped; an
// order with no surviving lines is rejected.
func (s *Service) BuildOrder(ctx context.Context, deviceID string) (*Order, error) {
	cart, err := s.GetCart(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	catalogue, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]products.Product, len(catalogue))
	for _, p := range catalogue {
		byID[p.ID] = p
	}

	var (
		lines []OrderLine
		total float64
	)
	for _, item := range cart.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		line := OrderLine{
			Name:      p.Name,
			Quantity:  item.Quantity,
			UnitPrice: p.SuggestedPrice,
			LineTotal: p.SuggestedPrice * float64(item.Quantity),
		}
		lines = append(lines, line)
		total += line.LineTotal
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	message := buildMessage(lines, total)
	return &Order{
		Lines:       lines,
		Total:       total,
		Message:     message,
		WhatsAppURL: s.whatsAppURL(ctx, message),
	}, nil
}

func buildMessage(lines []OrderLine, total float64) string {
	var sb strings.Builder
	sb.WriteString("Hola! Quiero hacer un pedido:\n")
	for _, line := range lines {
		fmt.Fprintf(&sb, "- %s x%d = %s\n", line.Name, line.Quantity, document.FormatMoney(line.LineTotal))
	}
	fmt.Fprintf(&sb, "Total: %s", document.FormatMoney(total))
	return sb.String()
}

func (s *Service) whatsAppURL(ctx context.Context, message string) string {
	number := s.fallback
	if s.settings != nil {
		if brand, err := s.settings.Get(ctx); err == nil && brand.ContactNumber != "" {
			number = brand.ContactNumber
		}
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}
