package clients

import (
	"context"
	"fmt"

	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	Upsert(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store rowstore.Store
}

func NewRepository(store rowstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.store.FetchAll(ctx, rowstore.TableClients)
	if err != nil {
		return nil, err
	}
	return rowstore.Decode[Client](rowstore.TableClients, rows)
}

func (r *repository) Get(ctx context.Context, id string) (*Client, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: client %s", httpx.ErrNotFound, id)
}

func (r *repository) Upsert(ctx context.Context, c Client) error {
	return r.store.Upsert(ctx, rowstore.TableClients, c)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.store.Remove(ctx, rowstore.TableClients, id)
}
