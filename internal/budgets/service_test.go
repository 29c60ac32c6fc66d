package budgets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/ledger"
	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

// failingStore lets one table's writes fail to exercise partial-confirm
// handling.
type failingStore struct {
	rowstore.Store
	failTable string
}

func (s *failingStore) Upsert(ctx context.Context, table string, record any) error {
	if table == s.failTable {
		return &rowstore.BackendError{Op: "upsert", Table: table, Err: errors.New("boom")}
	}
	return s.Store.Upsert(ctx, table, record)
}

type fixture struct {
	store      *rowstore.Memory
	budgetRepo Repository
	ledgerRepo ledger.Repository
	svc        *Service
}

func newFixture(t *testing.T, store rowstore.Store) *fixture {
	t.Helper()
	mem, _ := store.(*rowstore.Memory)
	budgetRepo := NewRepository(store)
	productRepo := products.NewRepository(store)
	ledgerRepo := ledger.NewRepository(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(budgetRepo, productRepo, ledger.NewService(ledgerRepo), logger)
	return &fixture{store: mem, budgetRepo: budgetRepo, ledgerRepo: ledgerRepo, svc: svc}
}

func seedProduct(t *testing.T, store rowstore.Store, id string, cost float64) {
	t.Helper()
	err := store.Upsert(context.Background(), rowstore.TableProducts, products.Product{
		ID: id, Name: "Collar " + id, TotalCost: cost, SuggestedPrice: 2 * cost,
		Items: []products.CostComponent{{MaterialID: "m", Quantity: 1, Subtotal: cost}},
	})
	require.NoError(t, err)
}

func TestNewDraftDefaults(t *testing.T) {
	f := newFixture(t, rowstore.NewMemory())
	draft := f.svc.NewDraft()

	require.Equal(t, StatusDraft, draft.Status)
	require.InDelta(t, 100.0, draft.UtilityMarginPercent, 1e-6)
	require.Equal(t, DiscountNone, draft.Discount.Kind)
	require.Nil(t, draft.ClientID)
	require.Empty(t, draft.Items)
	require.Equal(t, 0, f.store.Count(rowstore.TableBudgets))
}

func TestSaveDraftRejectsEmptyItemsLocally(t *testing.T) {
	f := newFixture(t, rowstore.NewMemory())

	_, err := f.svc.SaveDraft(context.Background(), "b-1", SaveBudgetRequest{
		UtilityMarginPercent: 100,
		Discount:             DiscountRequest{Kind: DiscountNone},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Equal(t, 0, f.store.Count(rowstore.TableBudgets))
}

func TestSaveDraftTwiceKeepsOneRow(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 500)
	ctx := context.Background()

	req := SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 2}},
		UtilityMarginPercent: 100,
		Discount:             DiscountRequest{Kind: DiscountNone},
	}
	first, err := f.svc.SaveDraft(ctx, "b-1", req)
	require.NoError(t, err)
	_, err = f.svc.SaveDraft(ctx, "b-1", req)
	require.NoError(t, err)

	require.Equal(t, 1, f.store.Count(rowstore.TableBudgets))
	require.Equal(t, StatusDraft, first.Status)
	require.InDelta(t, 2000.0, first.Total, 1e-6) // 1000 raw + 100% margin
}

func TestSaveDraftKeepsEditorSnapshot(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 500)
	ctx := context.Background()

	snapshot := 500.0
	_, err := f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 1, UnitCost: &snapshot}},
		UtilityMarginPercent: 0,
		Discount:             DiscountRequest{Kind: DiscountNone},
	})
	require.NoError(t, err)

	// The catalogue cost moves; a quantity-only edit must not follow it.
	seedProduct(t, store, "p1", 900)

	saved, err := f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 3, UnitCost: &snapshot}},
		UtilityMarginPercent: 0,
		Discount:             DiscountRequest{Kind: DiscountNone},
	})
	require.NoError(t, err)
	require.InDelta(t, 500.0, saved.Items[0].UnitCost, 1e-6)
	require.InDelta(t, 1500.0, saved.Items[0].Subtotal, 1e-6)

	// Without the snapshot the cost is re-fetched (product re-selected).
	saved, err = f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 3}},
		UtilityMarginPercent: 0,
		Discount:             DiscountRequest{Kind: DiscountNone},
	})
	require.NoError(t, err)
	require.InDelta(t, 900.0, saved.Items[0].UnitCost, 1e-6)
}

func TestConfirmWritesExactlyOneLedgerEntry(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 1000)
	ctx := context.Background()

	_, err := f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 2}},
		UtilityMarginPercent: 50,
		Discount:             DiscountRequest{Kind: DiscountFixed, Value: 500, Reason: "Efectivo"},
	})
	require.NoError(t, err)

	result, err := f.svc.Confirm(ctx, "b-1")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, result.Budget.Status)
	require.InDelta(t, 2500.0, result.Budget.Total, 1e-6)
	require.Empty(t, result.Warning)

	require.Equal(t, 1, f.store.Count(rowstore.TableTransactions))
	entry, err := f.ledgerRepo.Get(ctx, ledger.EntryIDForBudget("b-1"))
	require.NoError(t, err)
	require.Equal(t, ledger.DirectionIncome, entry.Direction)
	require.InDelta(t, 2500.0, entry.Amount, 1e-6)
}

func TestConfirmedBudgetRejectsEdits(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 100)
	ctx := context.Background()

	req := SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 1}},
		UtilityMarginPercent: 100,
		Discount:             DiscountRequest{Kind: DiscountNone},
	}
	_, err := f.svc.SaveDraft(ctx, "b-1", req)
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, "b-1")
	require.NoError(t, err)

	before, err := f.budgetRepo.Get(ctx, "b-1")
	require.NoError(t, err)

	req.UtilityMarginPercent = 300
	_, err = f.svc.SaveDraft(ctx, "b-1", req)
	require.ErrorIs(t, err, ErrConfirmed)

	_, err = f.svc.LoadForEdit(ctx, "b-1")
	require.ErrorIs(t, err, ErrConfirmed)

	_, err = f.svc.Confirm(ctx, "b-1")
	require.ErrorIs(t, err, ErrConfirmed)

	after, err := f.budgetRepo.Get(ctx, "b-1")
	require.NoError(t, err)
	require.Equal(t, *before, *after)
	require.Equal(t, 1, f.store.Count(rowstore.TableTransactions))
}

func TestConfirmEmptyDraftRejected(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	ctx := context.Background()

	empty := f.svc.NewDraft()
	require.NoError(t, f.budgetRepo.Upsert(ctx, empty))

	_, err := f.svc.Confirm(ctx, empty.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Equal(t, 0, f.store.Count(rowstore.TableTransactions))
}

func TestConfirmSurfacesLedgerFailure(t *testing.T) {
	mem := rowstore.NewMemory()
	store := &failingStore{Store: mem, failTable: rowstore.TableTransactions}
	f := newFixture(t, store)
	f.store = mem
	seedProduct(t, mem, "p1", 100)
	ctx := context.Background()

	_, err := f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 1}},
		UtilityMarginPercent: 100,
		Discount:             DiscountRequest{Kind: DiscountNone},
	})
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, "b-1")
	require.ErrorIs(t, err, ErrLedgerWriteFailed)

	// The budget row went through before the ledger write failed; that
	// inconsistency is reported, not hidden.
	stored, getErr := f.budgetRepo.Get(ctx, "b-1")
	require.NoError(t, getErr)
	require.Equal(t, StatusConfirmed, stored.Status)
	require.Equal(t, 0, mem.Count(rowstore.TableTransactions))
}

func TestConfirmWarnsOnNonPositiveTotal(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 100)
	ctx := context.Background()

	_, err := f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 1}},
		UtilityMarginPercent: 0,
		Discount:             DiscountRequest{Kind: DiscountFixed, Value: 5000, Reason: "Error de carga"},
	})
	require.NoError(t, err)

	result, err := f.svc.Confirm(ctx, "b-1")
	require.NoError(t, err)
	require.NotEmpty(t, result.Warning)
	require.InDelta(t, -4900.0, result.Budget.Total, 1e-6)
}

func TestDeleteDoesNotCascadeToLedger(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 100)
	ctx := context.Background()

	_, err := f.svc.SaveDraft(ctx, "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 1}},
		UtilityMarginPercent: 100,
		Discount:             DiscountRequest{Kind: DiscountNone},
	})
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, "b-1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "b-1"))
	require.Equal(t, 0, f.store.Count(rowstore.TableBudgets))
	require.Equal(t, 1, f.store.Count(rowstore.TableTransactions))
}

func TestPercentDiscountOverHundredRejected(t *testing.T) {
	store := rowstore.NewMemory()
	f := newFixture(t, store)
	seedProduct(t, store, "p1", 100)

	_, err := f.svc.SaveDraft(context.Background(), "b-1", SaveBudgetRequest{
		Items:                []LineItemRequest{{ProductID: "p1", Quantity: 1}},
		UtilityMarginPercent: 100,
		Discount:             DiscountRequest{Kind: DiscountPercent, Value: 120},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}
