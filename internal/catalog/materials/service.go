package materials

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jana-studio/taller/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Material, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Material, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateMaterialRequest) (*Material, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}

	m := Material{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		CostPerUnit: req.CostPerUnit,
		Stock:       req.Stock,
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateMaterialRequest) (*Material, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m := *existing
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Category != nil {
		m.Category = *req.Category
	}
	if req.Unit != nil {
		m.Unit = *req.Unit
	}
	if req.CostPerUnit != nil {
		m.CostPerUnit = *req.CostPerUnit
	}
	if req.Stock != nil {
		m.Stock = *req.Stock
	}

	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}
	return &m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
