package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/observability"
	"github.com/sangkips/bebidas-pos/internal/pkg/logging"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

// ReportCache stores rendered daily reports by business date. Get returns the
// generation a rebuilt report is stored under; Invalidate moves the date to a
// new generation, so a Set racing it is never read.
type ReportCache interface {
	Get(ctx context.Context, date string, out any) (hit bool, generation int64, err error)
	Set(ctx context.Context, date string, generation int64, report any) error
	Invalidate(ctx context.Context, dates ...string) error
}

type nopReportCache struct{}

func (nopReportCache) Get(context.Context, string, any) (bool, int64, error) { return false, 0, nil }
func (nopReportCache) Set(context.Context, string, int64, any) error         { return nil }
func (nopReportCache) Invalidate(context.Context, ...string) error           { return nil }

// Runtime carries the collaborators every service shares. Zero fields fall
// back to no-op implementations, the store timezone defaults to UTC.
type Runtime struct {
	Log      *zap.Logger
	Metrics  *observability.Metrics
	Events   event.Publisher
	Reports  ReportCache
	Location *time.Location
	Now      func() time.Time
}

func (r Runtime) withDefaults() Runtime {
	if r.Log == nil {
		r.Log = zap.NewNop()
	}
	if r.Events == nil {
		r.Events = event.Nop{}
	}
	if r.Reports == nil {
		r.Reports = nopReportCache{}
	}
	if r.Location == nil {
		r.Location = time.UTC
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	return r
}

func (r Runtime) logger(ctx context.Context) *zap.Logger {
	return logging.FromContext(ctx, r.Log)
}

func (r Runtime) now() time.Time {
	return r.Now().In(r.Location)
}

// businessDate is the store-local calendar date of t
func (r Runtime) businessDate(t time.Time) string {
	return t.In(r.Location).Format(entity.BusinessDateLayout)
}

// dayBounds returns the half-open interval [start, end) of a business date
func (r Runtime) dayBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(entity.BusinessDateLayout, date, r.Location)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewFieldError("date", "must be a date in YYYY-MM-DD format")
	}
	return start, start.AddDate(0, 0, 1), nil
}

// invalidateReports drops cached reports; cache failures only cost freshness
func (r Runtime) invalidateReports(ctx context.Context, dates ...string) {
	if err := r.Reports.Invalidate(ctx, dates...); err != nil {
		r.logger(ctx).Warn("report cache invalidation failed", zap.Strings("dates", dates), zap.Error(err))
	}
}

// retryOnConflict runs fn and runs it once more when it fails with a conflict
func (r Runtime) retryOnConflict(ctx context.Context, operation string, fn func() error) error {
	err := fn()
	if !errors.Is(err, apperror.ErrConflict) {
		return err
	}
	r.Metrics.ConflictRetried(operation)
	r.logger(ctx).Info("retrying after conflict", zap.String("operation", operation), zap.Error(err))
	return fn()
}
