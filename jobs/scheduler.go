package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"cocktail-bar-api/models"
	"cocktail-bar-api/statemachine"
)

// OrderCounter is implemented by repository.OrderRepository.
type OrderCounter interface {
	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
}

// OrderGauge is implemented by *metrics.Metrics.
type OrderGauge interface {
	SetOrderCounts(statuses []models.OrderStatus, counts map[models.OrderStatus]int64)
	RecordRefreshError()
}

type Scheduler struct {
	cron   *cron.Cron
	orders OrderCounter
	gauge  OrderGauge
	spec   string
	log    zerolog.Logger
}

// NewScheduler refreshes the order gauge on spec, a cron expression or a
// descriptor such as "@every 30s".
func NewScheduler(orders OrderCounter, gauge OrderGauge, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		orders: orders,
		gauge:  gauge,
		spec:   spec,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if s.gauge == nil || s.spec == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.RefreshOrderGauge); err != nil {
		return err
	}

	s.RefreshOrderGauge()
	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for a running refresh to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) RefreshOrderGauge() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		s.gauge.RecordRefreshError()
		s.log.Error().Err(err).Msg("refresh order gauge failed")
		return
	}
	s.gauge.SetOrderCounts(statemachine.DeclaredStatuses(), counts)
}
