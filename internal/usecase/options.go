package usecase

import (
	"time"

	"FinBridge/internal/domain/repository"
	"FinBridge/pkg/logger"
	"FinBridge/pkg/metrics"
)

// DefaultCallTimeout bounds every single adapter call.
const DefaultCallTimeout = 5 * time.Second

// Option configures the aggregation use cases.
type Option func(*settings)

type settings struct {
	timeout time.Duration
	metrics repository.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		timeout: DefaultCallTimeout,
		metrics: metrics.Noop{},
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithCallTimeout sets the per-adapter call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m repository.Metrics) Option {
	return func(s *settings) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
