package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ground-control/internal/infra/async"

	"github.com/robfig/cron/v3"
)

const DefaultRetentionSchedule = "0 * * * *"

type RetentionOpts struct {
	Schedule string        `mapstructure:"schedule"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

func NewRetentionWorker(ticker *time.Ticker, repository EventRepository, opts RetentionOpts) (*RetentionWorker, error) {
	if opts.Schedule == "" {
		opts.Schedule = DefaultRetentionSchedule
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(opts.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parsing retention schedule: %w", err)
	}
	return &RetentionWorker{
		ticker:     ticker,
		repository: repository,
		opts:       opts,
		schedule:   schedule,
		now:        time.Now,
		stop:       make(chan struct{}),
	}, nil
}

var _ async.Worker = &RetentionWorker{}

// RetentionWorker drops journal rows older than MaxAge every time the cron
// schedule comes due. A zero MaxAge keeps everything.
type RetentionWorker struct {
	ticker     *time.Ticker
	repository EventRepository
	opts       RetentionOpts
	schedule   cron.Schedule
	now        func() time.Time
	next       time.Time
	stop       chan struct{}
}

func (w *RetentionWorker) Run(ctx context.Context, done func()) {
	slog.Debug("retention worker started", slog.String("schedule", w.opts.Schedule))
	defer done()
	w.next = w.schedule.Next(w.now())

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention worker cancelled")
			return
		case <-w.stop:
			return
		case <-w.ticker.C:
			w.Tick(ctx)
		}
	}
}

func (w *RetentionWorker) Shutdown() {
	close(w.stop)
	slog.Info("retention worker shutdown")
}

// Tick purges the journal when the schedule is due and reports whether it did.
func (w *RetentionWorker) Tick(ctx context.Context) bool {
	now := w.now()
	if w.next.IsZero() {
		w.next = w.schedule.Next(now)
	}
	if now.Before(w.next) {
		return false
	}
	w.next = w.schedule.Next(now)

	if w.opts.MaxAge <= 0 {
		return false
	}
	cutoff := now.Add(-w.opts.MaxAge)
	deleted, err := w.repository.DeleteBefore(ctx, cutoff)
	if err != nil {
		slog.Error("purging mission journal", slog.Time("cutoff", cutoff), slog.Any("error", err))
		return false
	}
	slog.Info("mission journal purged", slog.Int64("deleted", deleted), slog.Time("cutoff", cutoff))
	return true
}

// SetClock replaces the time source.
func (w *RetentionWorker) SetClock(now func() time.Time) {
	w.now = now
}
