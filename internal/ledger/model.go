// Package ledger keeps the flat bookkeeping list: one row per money
// movement, in or out. Confirmed budgets write their sale here.
package ledger

import (
	"sort"
	"time"
)

type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// CategorySale marks entries generated from a confirmed budget.
const CategorySale = "venta"

type Entry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Direction   Direction `json:"direction"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// EntryIDForBudget derives the ledger id for a confirmed budget. The id is
// deterministic so re-confirming the same budget upserts one row instead of
// appending duplicates.
func EntryIDForBudget(budgetID string) string {
	return "sale-" + budgetID
}

// MonthlyStat aggregates entries of one calendar month.
type MonthlyStat struct {
	Month   string  `json:"month"` // 2006-01
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MonthlyStats rolls entries up per month, newest month first.
func MonthlyStats(entries []Entry) []MonthlyStat {
	byMonth := make(map[string]*MonthlyStat)
	order := make([]string, 0)
	for _, e := range entries {
		month := e.Date.Format("2006-01")
		stat, ok := byMonth[month]
		if !ok {
			stat = &MonthlyStat{Month: month}
			byMonth[month] = stat
			order = append(order, month)
		}
		switch e.Direction {
		case DirectionIncome:
			stat.Income += e.Amount
		case DirectionExpense:
			stat.Expense += e.Amount
		}
		stat.Balance = stat.Income - stat.Expense
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	stats := make([]MonthlyStat, 0, len(order))
	for _, month := range order {
		stats = append(stats, *byMonth[month])
	}
	return stats
}
