package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/exp/slog"

	"github.com/luckytaj/angpau-backend/internal/services"
)

// Scheduler refreshes the daily game rotation once per day at a
// configured wall-clock time.
type Scheduler struct {
	cron     *cron.Cron
	rotation services.DailyRotationService
}

// CronSpec converts a HH:MM wall-clock time into a daily cron expression.
func CronSpec(refreshTime string) (string, error) {
	t, err := time.Parse("15:04", refreshTime)
	if err != nil {
		return "", fmt.Errorf("invalid refresh time %q: %w", refreshTime, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// New builds a scheduler that calls ForceRefresh for the current date at
// refreshTime every day in loc.
func New(rotation services.DailyRotationService, refreshTime string, loc *time.Location) (*Scheduler, error) {
	spec, err := CronSpec(refreshTime)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		date := rotation.Today()
		if _, err := rotation.ForceRefresh(ctx, date); err != nil {
			slog.Error("Scheduled rotation refresh failed", "error", err, "date", date)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule rotation refresh: %w", err)
	}

	return &Scheduler{cron: c, rotation: rotation}, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Rotation scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
