package jobs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/jana-studio/taller/internal/budgets"
	jobmetrics "github.com/jana-studio/taller/internal/jobs"
	"github.com/jana-studio/taller/internal/ledger"
)

// IntegrityReport lists the two kinds of drift between confirmed budgets
// and the ledger.
type IntegrityReport struct {
	// MissingEntries holds confirmed budget ids with no sale row.
	MissingEntries []string
	// OrphanedEntries holds sale entry ids whose budget no longer exists.
	OrphanedEntries []string
}

func (r IntegrityReport) Clean() bool {
	return len(r.MissingEntries) == 0 && len(r.OrphanedEntries) == 0
}

// IntegrityScanner cross-checks confirmed budgets against their derived
// ledger rows. It only reports; repairing is a bookkeeping decision.
type IntegrityScanner struct {
	budgets budgets.Repository
	ledger  ledger.Repository
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

func NewIntegrityScanner(budgetRepo budgets.Repository, ledgerRepo ledger.Repository, logger *slog.Logger, metrics *jobmetrics.Metrics) *IntegrityScanner {
	return &IntegrityScanner{budgets: budgetRepo, ledger: ledgerRepo, logger: logger, metrics: metrics}
}

// Scan walks both tables once and pairs them up by the derived sale id.
func (s *IntegrityScanner) Scan(ctx context.Context) (IntegrityReport, error) {
	var report IntegrityReport

	allBudgets, err := s.budgets.List(ctx)
	if err != nil {
		return report, err
	}
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return report, err
	}

	entryIDs := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		entryIDs[e.ID] = struct{}{}
	}
	budgetIDs := make(map[string]struct{}, len(allBudgets))
	for _, b := range allBudgets {
		budgetIDs[b.ID] = struct{}{}
	}

	for _, b := range allBudgets {
		if b.Status != budgets.StatusConfirmed {
			continue
		}
		if _, ok := entryIDs[ledger.EntryIDForBudget(b.ID)]; !ok {
			report.MissingEntries = append(report.MissingEntries, b.ID)
		}
	}

	for _, e := range entries {
		budgetID, ok := strings.CutPrefix(e.ID, "sale-")
		if !ok {
			continue
		}
		if _, found := budgetIDs[budgetID]; !found {
			report.OrphanedEntries = append(report.OrphanedEntries, e.ID)
		}
	}

	return report, nil
}

// HandleTask runs the scan as an asynq task and logs every finding.
func (s *IntegrityScanner) HandleTask(ctx context.Context, _ *asynq.Task) error {
	tracker := s.metrics.Track("ledger_integrity")
	report, err := s.Scan(ctx)
	if err != nil {
		return tracker.End(err)
	}
	s.metrics.AddDrift("missing_entry", len(report.MissingEntries))
	s.metrics.AddDrift("orphaned_entry", len(report.OrphanedEntries))
	for _, id := range report.MissingEntries {
		s.logger.Warn("confirmed budget has no ledger entry", slog.String("budget", id))
	}
	for _, id := range report.OrphanedEntries {
		s.logger.Warn("ledger sale entry has no budget", slog.String("entry", id))
	}
	if report.Clean() {
		s.logger.Info("ledger integrity scan clean")
	}
	return tracker.End(nil)
}
