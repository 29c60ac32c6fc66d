package ledger

import (
	"context"
	"fmt"

	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Upsert(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store rowstore.Store
}

func NewRepository(store rowstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.store.FetchAll(ctx, rowstore.TableTransactions)
	if err != nil {
		return nil, err
	}
	return rowstore.Decode[Entry](rowstore.TableTransactions, rows)
}

func (r *repository) Get(ctx context.Context, id string) (*Entry, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: ledger entry %s", httpx.ErrNotFound, id)
}

func (r *repository) Upsert(ctx context.Context, e Entry) error {
	return r.store.Upsert(ctx, rowstore.TableTransactions, e)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.store.Remove(ctx, rowstore.TableTransactions, id)
}
