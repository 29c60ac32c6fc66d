package budgets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/ledger"
	"github.com/jana-studio/taller/internal/platform/httpx"
)

var (
	// ErrNoLineItems rejects saving or confirming an empty budget before
	// any backend call is made.
	ErrNoLineItems = fmt.Errorf("%w: a budget needs at least one line item", httpx.ErrValidation)

	// ErrLedgerWriteFailed reports a confirmation whose budget row was
	// written but whose ledger entry was not. The caller must not treat
	// the confirmation as complete.
	ErrLedgerWriteFailed = errors.New("budget row saved but the ledger entry failed")
)

type Service struct {
	repo        Repository
	productRepo products.Repository
	ledger      *ledger.Service
	logger      *slog.Logger
}

func NewService(repo Repository, productRepo products.Repository, ledgerSvc *ledger.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, productRepo: productRepo, ledger: ledgerSvc, logger: logger}
}

// NewDraft hands out a fresh working copy. Nothing is persisted until the
// caller saves it.
func (s *Service) NewDraft() Budget {
	return Budget{
		ID:                   uuid.NewString(),
		Date:                 time.Now().UTC(),
		Items:                []LineItem{},
		UtilityMarginPercent: DefaultUtilityMargin,
		Discount:             Discount{Kind: DiscountNone},
		Status:               StatusDraft,
	}
}

func (s *Service) List(ctx context.Context) ([]Budget, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Budget, error) {
	return s.repo.Get(ctx, id)
}

// LoadForEdit refuses confirmed budgets without touching anything.
func (s *Service) LoadForEdit(ctx context.Context, id string) (*Budget, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Editable() {
		return nil, fmt.Errorf("%w: load for edit refused", ErrConfirmed)
	}
	return b, nil
}

func (s *Service) validateDiscount(d DiscountRequest) (Discount, error) {
	if d.Kind == "" {
		return Discount{Kind: DiscountNone}, nil
	}
	if d.Kind == DiscountPercent && d.Value > 100 {
		return Discount{}, fmt.Errorf("%w: percent discount must be between 0 and 100", httpx.ErrValidation)
	}
	return Discount{Kind: d.Kind, Value: d.Value, Reason: d.Reason}, nil
}

// buildItems assembles line items. A request line carrying its snapshot
// keeps it (quantity-only edit); one without gets the product's current
// cost (item added or product changed).
func (s *Service) buildItems(ctx context.Context, reqs []LineItemRequest) ([]LineItem, error) {
	items := make([]LineItem, 0, len(reqs))
	for _, req := range reqs {
		if req.UnitCost != nil {
			item := LineItem{ProductID: req.ProductID, UnitCost: *req.UnitCost}
			item.SetQuantity(req.Quantity)
			items = append(items, item)
			continue
		}
		p, err := s.productRepo.Get(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", req.ProductID, err)
		}
		items = append(items, NewLineItem(*p, req.Quantity))
	}
	return items, nil
}

// SaveDraft persists the working copy with last-write-wins upsert
// semantics. Saving over a confirmed budget is refused.
func (s *Service) SaveDraft(ctx context.Context, id string, req SaveBudgetRequest) (*Budget, error) {
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, ErrNoLineItems
	}
	discount, err := s.validateDiscount(req.Discount)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	existing, err := s.repo.Get(ctx, id)
	switch {
	case err == nil:
		if !existing.Editable() {
			return nil, fmt.Errorf("%w: save refused", ErrConfirmed)
		}
		date = existing.Date
	case errors.Is(err, httpx.ErrNotFound):
		// First save of this draft.
	default:
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	b := Budget{
		ID:                   id,
		Date:                 date,
		ClientID:             req.ClientID,
		Items:                items,
		UtilityMarginPercent: req.UtilityMarginPercent,
		Discount:             discount,
		Status:               StatusDraft,
		Total:                Price(items, req.UtilityMarginPercent, discount).FinalTotal,
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &b, nil
}

// Confirm prices the stored draft, persists it as confirmed and writes the
// derived ledger entry. The two writes are one logical operation: if the
// second fails the caller gets ErrLedgerWriteFailed and must not report
// success.
func (s *Service) Confirm(ctx context.Context, id string) (*ConfirmResult, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(b.Items) == 0 {
		return nil, ErrNoLineItems
	}

	status, err := Transition(b.Status, StatusConfirmed)
	if err != nil {
		return nil, err
	}

	breakdown := PriceOf(*b)
	var warning string
	if breakdown.FinalTotal <= 0 {
		warning = "el total final no es positivo"
		s.logger.Warn("confirming budget with non-positive total",
			slog.String("budget", b.ID),
			slog.Float64("total", breakdown.FinalTotal))
	}

	confirmed := *b
	confirmed.Status = status
	confirmed.Total = breakdown.FinalTotal

	if err := s.repo.Upsert(ctx, confirmed); err != nil {
		return nil, fmt.Errorf("confirm budget: %w", err)
	}

	description := fmt.Sprintf("Venta presupuesto %s", confirmed.ShortID())
	entry, err := s.ledger.RecordSale(ctx, confirmed.ID, description, confirmed.Date, breakdown.FinalTotal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLedgerWriteFailed, err)
	}

	return &ConfirmResult{
		Budget:      &confirmed,
		Breakdown:   breakdown,
		LedgerEntry: entry.ID,
		Warning:     warning,
	}, nil
}

// Delete removes the budget row only. A confirmed budget's ledger entry is
// left in place; the integrity scan reports it as orphaned.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
