package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jana-studio/taller/internal/catalog/materials"
	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

func newService(t *testing.T) (*Service, *rowstore.Memory) {
	t.Helper()
	store := rowstore.NewMemory()
	return NewService(NewRepository(store), materials.NewRepository(store)), store
}

func seedMaterials(t *testing.T, store *rowstore.Memory) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, rowstore.TableMaterials, materials.Material{
		ID: "m-perla", Name: "Perla blanca", Category: materials.CategoryPearls, CostPerUnit: 100,
	}))
	require.NoError(t, store.Upsert(ctx, rowstore.TableMaterials, materials.Material{
		ID: "m-cadena", Name: "Cadena de plata", Category: materials.CategoryChains, CostPerUnit: 800,
	}))
}

func TestCreateRollsUpCostAndDefaultsPrice(t *testing.T) {
	svc, store := newService(t)
	seedMaterials(t, store)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Name: "Collar de perlas",
		Items: []CostComponentRequest{
			{MaterialID: "m-perla", Quantity: 10},
			{MaterialID: "m-cadena", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1800.0, p.TotalCost)
	require.Equal(t, 3600.0, p.SuggestedPrice)
	require.Len(t, p.Items, 2)
	require.Equal(t, 1000.0, p.Items[0].Subtotal)
}

func TestCreateKeepsPriceOverride(t *testing.T) {
	svc, store := newService(t)
	seedMaterials(t, store)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Name:           "Collar de perlas",
		Items:          []CostComponentRequest{{MaterialID: "m-perla", Quantity: 5}},
		SuggestedPrice: 1500,
	})
	require.NoError(t, err)
	require.Equal(t, 500.0, p.TotalCost)
	require.Equal(t, 1500.0, p.SuggestedPrice)
}

func TestCreateRejectsUnknownMaterial(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "Collar",
		Items: []CostComponentRequest{{MaterialID: "m-missing", Quantity: 1}},
	})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateItemsRecomputesCostAndResetsDefaultPrice(t *testing.T) {
	svc, store := newService(t)
	seedMaterials(t, store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{
		Name:  "Collar",
		Items: []CostComponentRequest{{MaterialID: "m-perla", Quantity: 10}},
	})
	require.NoError(t, err)
	require.Equal(t, 2000.0, p.SuggestedPrice)

	items := []CostComponentRequest{{MaterialID: "m-perla", Quantity: 20}}
	updated, err := svc.Update(ctx, p.ID, UpdateProductRequest{Items: &items})
	require.NoError(t, err)
	require.Equal(t, 2000.0, updated.TotalCost)
	require.Equal(t, 4000.0, updated.SuggestedPrice)
}

func TestUpdateItemsWithExplicitPriceKeepsIt(t *testing.T) {
	svc, store := newService(t)
	seedMaterials(t, store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{
		Name:  "Collar",
		Items: []CostComponentRequest{{MaterialID: "m-perla", Quantity: 10}},
	})
	require.NoError(t, err)

	items := []CostComponentRequest{{MaterialID: "m-perla", Quantity: 20}}
	price := 9999.0
	updated, err := svc.Update(ctx, p.ID, UpdateProductRequest{Items: &items, SuggestedPrice: &price})
	require.NoError(t, err)
	require.Equal(t, 2000.0, updated.TotalCost)
	require.Equal(t, 9999.0, updated.SuggestedPrice)
}

func TestUpdateSnapshotsNewMaterialCost(t *testing.T) {
	svc, store := newService(t)
	seedMaterials(t, store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{
		Name:  "Collar",
		Items: []CostComponentRequest{{MaterialID: "m-perla", Quantity: 10}},
	})
	require.NoError(t, err)
	require.Equal(t, 1000.0, p.TotalCost)

	// A material price change does not move the stored breakdown until
	// the product's items are edited again.
	require.NoError(t, store.Upsert(ctx, rowstore.TableMaterials, materials.Material{
		ID: "m-perla", Name: "Perla blanca", Category: materials.CategoryPearls, CostPerUnit: 150,
	}))
	unchanged, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1000.0, unchanged.TotalCost)

	items := []CostComponentRequest{{MaterialID: "m-perla", Quantity: 10}}
	updated, err := svc.Update(ctx, p.ID, UpdateProductRequest{Items: &items})
	require.NoError(t, err)
	require.Equal(t, 1500.0, updated.TotalCost)
}

func TestCreateRequiresItems(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "Collar"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}
