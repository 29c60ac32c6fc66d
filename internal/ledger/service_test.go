package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

func newService(t *testing.T) (*Service, *rowstore.Memory) {
	t.Helper()
	store := rowstore.NewMemory()
	return NewService(NewRepository(store)), store
}

func TestCreateEntryValidation(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEntryRequest{Direction: "sideways", Category: "insumos", Amount: 10})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateEntryRequest{Direction: DirectionExpense, Category: "insumos", Amount: 0})
	require.ErrorIs(t, err, httpx.ErrValidation)

	require.Equal(t, 0, store.Count(rowstore.TableTransactions))

	e, err := svc.Create(ctx, CreateEntryRequest{Direction: DirectionExpense, Category: "insumos", Description: "perlas", Amount: 350})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.False(t, e.Date.IsZero())
	require.Equal(t, 1, store.Count(rowstore.TableTransactions))
}

func TestRecordSaleIsIdempotentPerBudget(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	date := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	first, err := svc.RecordSale(ctx, "b-1", "Venta presupuesto abc123", date, 2500)
	require.NoError(t, err)
	require.Equal(t, "sale-b-1", first.ID)
	require.Equal(t, DirectionIncome, first.Direction)
	require.Equal(t, CategorySale, first.Category)

	// Re-recording the same budget replaces the row instead of appending.
	_, err = svc.RecordSale(ctx, "b-1", "Venta presupuesto abc123", date, 2600)
	require.NoError(t, err)
	require.Equal(t, 1, store.Count(rowstore.TableTransactions))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2600.0, entries[0].Amount)
}

func TestMonthlyStatsRollUpNewestFirst(t *testing.T) {
	entries := []Entry{
		{ID: "1", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Direction: DirectionIncome, Amount: 1000},
		{ID: "2", Date: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), Direction: DirectionExpense, Amount: 400},
		{ID: "3", Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), Direction: DirectionIncome, Amount: 300},
	}

	stats := MonthlyStats(entries)
	require.Len(t, stats, 2)

	require.Equal(t, "2026-02", stats[0].Month)
	require.Equal(t, 300.0, stats[0].Income)
	require.Equal(t, 300.0, stats[0].Balance)

	require.Equal(t, "2026-01", stats[1].Month)
	require.Equal(t, 1000.0, stats[1].Income)
	require.Equal(t, 400.0, stats[1].Expense)
	require.Equal(t, 600.0, stats[1].Balance)
}

func TestDeleteMissingEntryFails(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Delete(context.Background(), "nope")
	var backend *rowstore.BackendError
	require.ErrorAs(t, err, &backend)
}
