package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jana-studio/taller/internal/platform/httpx"
)

type CreateEntryRequest struct {
	Date        time.Time `json:"date"`
	Direction   Direction `json:"direction" validate:"required,oneof=income expense"`
	Category    string    `json:"category" validate:"required,max=60"`
	Description string    `json:"description" validate:"max=300"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

func (s *Service) Stats(ctx context.Context) ([]MonthlyStat, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyStats(entries), nil
}

func (s *Service) Create(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	e := Entry{
		ID:          uuid.NewString(),
		Date:        date,
		Direction:   req.Direction,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := s.repo.Upsert(ctx, e); err != nil {
		return nil, fmt.Errorf("create ledger entry: %w", err)
	}
	return &e, nil
}

// RecordSale upserts the income entry derived from a confirmed budget.
func (s *Service) RecordSale(ctx context.Context, budgetID, description string, date time.Time, amount float64) (*Entry, error) {
	e := Entry{
		ID:          EntryIDForBudget(budgetID),
		Date:        date,
		Direction:   DirectionIncome,
		Category:    CategorySale,
		Description: description,
		Amount:      amount,
	}
	if err := s.repo.Upsert(ctx, e); err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}
	return &e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
