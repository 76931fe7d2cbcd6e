package scheduler

import (
	"log/slog"
	"time"

	"reviewhub/internal/http-api/service"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the monthly usage rollup. On the first of each month it
// freezes the previous month's ledger rows into snapshots for billing export.
type Scheduler struct {
	cron   *cron.Cron
	quota  service.QuotaService
	logger *slog.Logger
}

func New(quota service.QuotaService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		quota:  quota,
		logger: logger,
	}
}

func (s *Scheduler) Start() error {
	// 02:00 UTC on the 1st: the previous month is closed by then.
	_, err := s.cron.AddFunc("0 2 1 * *", s.snapshotPreviousMonth)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("usage snapshot scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) snapshotPreviousMonth() {
	previous := time.Now().UTC().AddDate(0, -1, 0)
	count, err := s.quota.SnapshotMonth(previous)
	if err != nil {
		s.logger.Error("usage snapshot failed", "month", previous.Format("2006-01"), "error", err)
		return
	}
	s.logger.Info("usage snapshot complete", "month", previous.Format("2006-01"), "rows", count)
}
