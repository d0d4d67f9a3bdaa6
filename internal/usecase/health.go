package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"SummaryHub/internal/metrics"
	"SummaryHub/internal/provider"
)

// HealthMonitor refreshes provider availability on a cron schedule and
// exports the outcome as a Prometheus gauge.
type HealthMonitor struct {
	registry *provider.Registry
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron

	mu   sync.RWMutex
	last map[string]bool
}

// NewHealthMonitor builds a monitor; schedule accepts cron expressions
// including the @every form.
func NewHealthMonitor(registry *provider.Registry, schedule string, logger *slog.Logger) *HealthMonitor {
	return &HealthMonitor{
		registry: registry,
		schedule: schedule,
		logger:   logger,
		last:     map[string]bool{},
	}
}

// Start primes the gauge once, then probes on the configured schedule.
func (m *HealthMonitor) Start() error {
	if m.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(m.schedule, m.probe); err != nil {
		return fmt.Errorf("schedule health probe: %w", err)
	}

	m.probe()
	c.Start()
	m.cron = c
	return nil
}

// Stop halts the probe schedule.
func (m *HealthMonitor) Stop() {
	if m.cron == nil {
		return
	}
	m.cron.Stop()
	m.cron = nil
}

// Snapshot returns the availability seen by the last probe.
func (m *HealthMonitor) Snapshot() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]bool, len(m.last))
	for name, ok := range m.last {
		out[name] = ok
	}
	return out
}

func (m *HealthMonitor) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	statuses := m.registry.HealthCheck(ctx)
	for name, ok := range statuses {
		value := 0.0
		if ok {
			value = 1.0
		}
		metrics.ProviderAvailable.WithLabelValues(name).Set(value)
	}

	m.mu.Lock()
	m.last = statuses
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Debug("provider probe complete", "providers", len(statuses))
	}
}
