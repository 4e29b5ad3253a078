package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kumar-509/voice-ai-frontend/internal/logging"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
	"github.com/Kumar-509/voice-ai-frontend/internal/transport"
)

const DefaultRetryDelay = 10 * time.Second

// ErrUnhealthy is reported when the health endpoint answers without status "ok".
var ErrUnhealthy = errors.New("backend reported unhealthy status")

// Prober performs a single health probe.
type Prober interface {
	Health(ctx context.Context) (*transport.HealthResponse, error)
}

// Transition is delivered for every status change. Err is set on ConnectionError.
type Transition struct {
	Status models.ConnectionStatus
	Err    error
	// Attempt counts probes, starting at 1.
	Attempt int
}

// Monitor probes the backend until it is reachable once, retrying after a fixed delay.
type Monitor struct {
	prober     Prober
	retryDelay time.Duration
	onChange   func(Transition)
	logger     logrus.FieldLogger
}

func New(prober Prober, retryDelay time.Duration, onChange func(Transition), logger logrus.FieldLogger) *Monitor {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	if onChange == nil {
		onChange = func(Transition) {}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Monitor{
		prober:     prober,
		retryDelay: retryDelay,
		onChange:   onChange,
		logger:     logger,
	}
}

func (m *Monitor) RetryDelay() time.Duration {
	return m.retryDelay
}

// Run blocks until a probe succeeds or ctx is done. It never re-polls after success.
func (m *Monitor) Run(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		m.onChange(Transition{Status: models.ConnectionChecking, Attempt: attempt})

		err := m.probe(ctx)
		if err == nil {
			m.logger.WithField("attempt", attempt).Info("backend connected")
			m.onChange(Transition{Status: models.ConnectionConnected, Attempt: attempt})
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		m.logger.WithError(err).WithField("attempt", attempt).Warn("backend health check failed")
		m.onChange(Transition{Status: models.ConnectionError, Err: err, Attempt: attempt})

		timer := time.NewTimer(m.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (m *Monitor) probe(ctx context.Context) error {
	resp, err := m.prober.Health(ctx)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return ErrUnhealthy
	}
	return nil
}
