package counter

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "sorana/internal/counter"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type syncMetrics struct {
	meter     metric.Meter
	successes metric.Int64Counter
	failures  metric.Int64Counter
	value     metric.Int64ObservableGauge
}

func (m *syncMetrics) init() error {
	var err error

	m.successes, err = m.meter.Int64Counter(
		"counter.sync.success",
		metric.WithDescription("Counter reads that replaced the value"),
	)
	if err != nil {
		return fmt.Errorf("creating success counter: %w", err)
	}

	m.failures, err = m.meter.Int64Counter(
		"counter.sync.failure",
		metric.WithDescription("Counter reads that kept the last known value"),
	)
	if err != nil {
		return fmt.Errorf("creating failure counter: %w", err)
	}

	m.value, err = m.meter.Int64ObservableGauge(
		"counter.value",
		metric.WithDescription("Last known counter value"),
	)
	if err != nil {
		return fmt.Errorf("creating value gauge: %w", err)
	}

	return nil
}

// observe reports state on the value gauge until the registration is
// unregistered.
func (m *syncMetrics) observe(state func() State) (metric.Registration, error) {
	reg, err := m.meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(m.value, state().Value)
			return nil
		},
		m.value,
	)
	if err != nil {
		return nil, fmt.Errorf("registering value callback: %w", err)
	}
	return reg, nil
}

func (m *syncMetrics) success(ctx context.Context) {
	m.successes.Add(context.WithoutCancel(ctx), 1)
}

func (m *syncMetrics) failure(ctx context.Context) {
	m.failures.Add(context.WithoutCancel(ctx), 1)
}
