package iconhub

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Call outcomes reported in the "outcome" label.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// callBuckets cover in-process memory lookups up to slow tree loads.
var callBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

type callMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func newCallMetrics(reg prometheus.Registerer) (*callMetrics, error) {
	calls, err := registerShared(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iconhub",
		Subsystem: "sdk",
		Name:      "calls_total",
		Help:      "Client calls by method and outcome (ok, not_found, error).",
	}, []string{"method", "outcome"}))
	if err != nil {
		return nil, err
	}
	latency, err := registerShared(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iconhub",
		Subsystem: "sdk",
		Name:      "call_duration_seconds",
		Help:      "Client call latency including store round trips.",
		Buckets:   callBuckets,
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}
	return &callMetrics{calls: calls, latency: latency}, nil
}

// registerShared registers c, or hands back the collector already registered
// under the same name so several clients can share one registry.
func registerShared[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("iconhub: register collector: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("iconhub: collector registered with a different type %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer records client calls. A nil observer, logger or metrics set is a no-op.
type observer struct {
	logger  *zap.Logger
	metrics *callMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newCallMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}

// observe records one call of method that started at start.
// Misses are logged at debug; only real failures reach warn.
func (o *observer) observe(method string, start time.Time, err error) {
	if o == nil {
		return
	}
	took := time.Since(start)
	outcome := outcomeOf(err)

	if m := o.metrics; m != nil {
		m.calls.WithLabelValues(method, outcome).Inc()
		m.latency.WithLabelValues(method).Observe(took.Seconds())
	}
	if o.logger == nil {
		return
	}

	fields := []zap.Field{zap.String("method", method), zap.String("outcome", outcome), zap.Duration("took", took)}
	if outcome == outcomeError {
		o.logger.Warn("iconhub call failed", append(fields, zap.Error(err))...)
		return
	}
	o.logger.Debug("iconhub call", fields...)
}
