package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/jana-studio/taller/internal/jobs"
	"github.com/jana-studio/taller/internal/settings"
)

// SettingsWarmup refreshes the Redis bootstrap copy so a device that
// comes up while the row store is unreachable still shows the brand.
type SettingsWarmup struct {
	settings *settings.Service
	logger   *slog.Logger
	metrics  *jobmetrics.Metrics
}

func NewSettingsWarmup(settingsSvc *settings.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *SettingsWarmup {
	return &SettingsWarmup{settings: settingsSvc, logger: logger, metrics: metrics}
}

func (w *SettingsWarmup) HandleTask(ctx context.Context, _ *asynq.Task) error {
	tracker := w.metrics.Track("settings_warmup")
	// Get refreshes the cached copy as a side effect.
	if _, err := w.settings.Get(ctx); err != nil {
		w.logger.Warn("settings warmup", slog.Any("error", err))
		return tracker.End(err)
	}
	w.logger.Info("settings bootstrap copy refreshed")
	return tracker.End(nil)
}
