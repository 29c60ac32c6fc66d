package products

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jana-studio/taller/internal/catalog/materials"
	"github.com/jana-studio/taller/internal/platform/httpx"
)

type Service struct {
	repo         Repository
	materialRepo materials.Repository
}

func NewService(repo Repository, materialRepo materials.Repository) *Service {
	return &Service{repo: repo, materialRepo: materialRepo}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// buildComponents snapshots current material costs into the breakdown.
func (s *Service) buildComponents(ctx context.Context, reqs []CostComponentRequest) ([]CostComponent, error) {
	items := make([]CostComponent, 0, len(reqs))
	for _, req := range reqs {
		mat, err := s.materialRepo.Get(ctx, req.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("resolve material %s: %w", req.MaterialID, err)
		}
		items = append(items, CostComponent{
			MaterialID: mat.ID,
			Quantity:   req.Quantity,
			Subtotal:   mat.CostPerUnit * req.Quantity,
		})
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}

	items, err := s.buildComponents(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totalCost := RollUpCost(items)
	price := req.SuggestedPrice
	if price <= 0 {
		price = DefaultSuggestedPrice(totalCost)
	}

	p := Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Items:          items,
		TotalCost:      totalCost,
		SuggestedPrice: price,
		ImageRef:       req.ImageRef,
		DateCreated:    time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p := *existing
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.ImageRef != nil {
		p.ImageRef = req.ImageRef
	}
	if req.Items != nil {
		items, err := s.buildComponents(ctx, *req.Items)
		if err != nil {
			return nil, err
		}
		p.Items = items
		p.TotalCost = RollUpCost(items)
		// Recomputing the breakdown resets a stale default price unless
		// the caller overrides it in the same request.
		if req.SuggestedPrice == nil {
			p.SuggestedPrice = DefaultSuggestedPrice(p.TotalCost)
		}
	}
	if req.SuggestedPrice != nil && *req.SuggestedPrice > 0 {
		p.SuggestedPrice = *req.SuggestedPrice
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
