package materials

import (
	"context"
	"fmt"

	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

type Repository interface {
	List(ctx context.Context) ([]Material, error)
	Get(ctx context.Context, id string) (*Material, error)
	Upsert(ctx context.Context, m Material) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store rowstore.Store
}

func NewRepository(store rowstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]Material, error) {
	rows, err := r.store.FetchAll(ctx, rowstore.TableMaterials)
	if err != nil {
		return nil, err
	}
	return rowstore.Decode[Material](rowstore.TableMaterials, rows)
}

// Get scans the full table; the row store offers no filtered reads.
func (r *repository) Get(ctx context.Context, id string) (*Material, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: material %s", httpx.ErrNotFound, id)
}

func (r *repository) Upsert(ctx context.Context, m Material) error {
	return r.store.Upsert(ctx, rowstore.TableMaterials, m)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.store.Remove(ctx, rowstore.TableMaterials, id)
}
