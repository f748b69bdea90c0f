package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/shopdesk/internal/jobs"
)

// Refresher reloads lookups by name.
type Refresher interface {
	Names() []string
	Refresh(ctx context.Context, name string) error
}

// LookupRefreshJob reloads lookups into the shared store so every dashboard
// process sees fresh reference data.
type LookupRefreshJob struct {
	Lookups Refresher
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewLookupRefreshJob wires dependencies for the refresh handler.
func NewLookupRefreshJob(lookups Refresher, logger *slog.Logger, metrics *jobmetrics.Metrics) *LookupRefreshJob {
	return &LookupRefreshJob{Lookups: lookups, Logger: logger, Metrics: metrics}
}

// Handle processes TaskLookupRefresh tasks.
func (j *LookupRefreshJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Lookups == nil {
		return errors.New("lookup refresh: handler not configured")
	}
	var payload LookupRefreshPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := j.Metrics.Track(TaskLookupRefresh)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	names := j.Lookups.Names()
	if payload.Name != "" {
		names = []string{payload.Name}
	}
	logger := j.logger().With(slog.String("lookup", payload.Name))
	logger.Info("starting lookup refresh", slog.Int("lookups", len(names)))

	var errs []error
	for _, name := range names {
		if err := j.Lookups.Refresh(ctx, name); err != nil {
			logger.Error("refresh lookup", slog.String("name", name), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		j.Metrics.AddRefreshed(name)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("lookup refresh completed", slog.Int("lookups", len(names)))
	return nil
}

func (j *LookupRefreshJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
