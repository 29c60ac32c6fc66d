// Package jobs runs the background work: the nightly ledger integrity
// scan and the brand-settings cache warmup.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue all background jobs run on.
	QueueDefault = "default"

	// TaskLedgerIntegrity scans for budgets and ledger entries that lost
	// their counterpart. Confirmation writes two rows without a
	// transaction, so drift is possible and is only ever reported.
	TaskLedgerIntegrity = "ledger:integrity"

	// TaskSettingsWarmup refreshes the Redis bootstrap copy of the brand
	// settings row.
	TaskSettingsWarmup = "settings:warmup"
)

// NewLedgerIntegrityTask builds the scan task. It carries no payload;
// the scan always covers everything.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}

// NewSettingsWarmupTask builds the warmup task.
func NewSettingsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskSettingsWarmup, nil)
}
