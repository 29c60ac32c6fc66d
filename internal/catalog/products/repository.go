package products

import (
	"context"
	"fmt"

	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Upsert(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store rowstore.Store
}

func NewRepository(store rowstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.store.FetchAll(ctx, rowstore.TableProducts)
	if err != nil {
		return nil, err
	}
	return rowstore.Decode[Product](rowstore.TableProducts, rows)
}

func (r *repository) Get(ctx context.Context, id string) (*Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", httpx.ErrNotFound, id)
}

func (r *repository) Upsert(ctx context.Context, p Product) error {
	return r.store.Upsert(ctx, rowstore.TableProducts, p)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.store.Remove(ctx, rowstore.TableProducts, id)
}
