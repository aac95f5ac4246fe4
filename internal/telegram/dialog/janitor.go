package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/spacecrew/applybot/core/logger"
)

// Janitor periodically drops sessions abandoned mid-form or mid-task.
// With a zero TTL it never runs, preserving the keep-forever behaviour.
type Janitor struct {
	cron *cron.Cron
}

// StartJanitor schedules a sweep of sessions older than ttl on the given cron
// spec (e.g. "@every 30m"). A zero ttl disables sweeping and returns a nil
// Janitor, which is safe to Stop.
func StartJanitor(m *Manager, ttl time.Duration, spec string) (*Janitor, error) {
	if ttl <= 0 {
		return nil, nil
	}
	if spec == "" {
		spec = "@every 30m"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		swept := m.SweepOlderThan(ttl)
		if swept > 0 {
			logger.Info(context.Background(), "dialog", "dialog.sweep",
				slog.Int("swept", swept),
				slog.Int("count", m.Len()),
			)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule dialog sweep %q: %w", spec, err)
	}
	c.Start()

	logger.Info(context.Background(), "dialog", "dialog.janitor.start",
		slog.Duration("duration", ttl),
	)
	return &Janitor{cron: c}, nil
}

// Stop halts the sweep schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	if j == nil || j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}
