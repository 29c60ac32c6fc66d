package storefront

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

func newFixture(t *testing.T) (*Service, *rowstore.Memory) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })
	store := rowstore.NewMemory()
	return NewService(products.NewRepository(store), cache, nil, "5491155550000"), store
}

func seedProducts(t *testing.T, store *rowstore.Memory) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, rowstore.TableProducts, products.Product{
		ID: "p-1", Name: "Collar de perlas", TotalCost: 1000, SuggestedPrice: 2000,
	}))
	require.NoError(t, store.Upsert(ctx, rowstore.TableProducts, products.Product{
		ID: "p-2", Name: "Pulsera", TotalCost: 300, SuggestedPrice: 600,
	}))
}

func TestListingHidesCosts(t *testing.T) {
	svc, store := newFixture(t)
	seedProducts(t, store)

	items, err := svc.Listing(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2000.0, items[0].SuggestedPrice)
	require.Equal(t, "Collar de perlas", items[0].Name)
}

func TestCartRoundTrip(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.GetCart(ctx, "dev-1")
	require.ErrorIs(t, err, httpx.ErrNotFound)

	saved, err := svc.SaveCart(ctx, "dev-1", SaveCartRequest{Items: []CartItem{{ProductID: "p-1", Quantity: 2}}})
	require.NoError(t, err)
	require.Equal(t, "dev-1", saved.DeviceID)

	got, err := svc.GetCart(ctx, "dev-1")
	require.NoError(t, err)
	require.Equal(t, saved.Items, got.Items)

	// Carts are isolated per device.
	_, err = svc.GetCart(ctx, "dev-2")
	require.ErrorIs(t, err, httpx.ErrNotFound)

	require.NoError(t, svc.ClearCart(ctx, "dev-1"))
	_, err = svc.GetCart(ctx, "dev-1")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestSaveCartRejectsZeroQuantity(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.SaveCart(context.Background(), "dev-1", SaveCartRequest{Items: []CartItem{{ProductID: "p-1", Quantity: 0}}})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestBuildOrderMessageAndLink(t *testing.T) {
	svc, store := newFixture(t)
	seedProducts(t, store)
	ctx := context.Background()

	_, err := svc.SaveCart(ctx, "dev-1", SaveCartRequest{Items: []CartItem{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-2", Quantity: 1},
	}})
	require.NoError(t, err)

	order, err := svc.BuildOrder(ctx, "dev-1")
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	require.Equal(t, 4600.0, order.Total)
	require.Contains(t, order.Message, "Collar de perlas x2")
	require.Contains(t, order.Message, "Pulsera x1")

	require.True(t, strings.HasPrefix(order.WhatsAppURL, "https://wa.me/5491155550000?text="))
	parsed, err := url.Parse(order.WhatsAppURL)
	require.NoError(t, err)
	require.Equal(t, order.Message, parsed.Query().Get("text"))
}

func TestBuildOrderDropsVanishedProducts(t *testing.T) {
	svc, store := newFixture(t)
	seedProducts(t, store)
	ctx := context.Background()

	_, err := svc.SaveCart(ctx, "dev-1", SaveCartRequest{Items: []CartItem{
		{ProductID: "p-1", Quantity: 1},
		{ProductID: "gone", Quantity: 3},
	}})
	require.NoError(t, err)

	order, err := svc.BuildOrder(ctx, "dev-1")
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	require.Equal(t, 2000.0, order.Total)
}

func TestBuildOrderRejectsEmptyCart(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.SaveCart(ctx, "dev-1", SaveCartRequest{})
	require.NoError(t, err)

	_, err = svc.BuildOrder(ctx, "dev-1")
	require.ErrorIs(t, err, httpx.ErrValidation)
}
