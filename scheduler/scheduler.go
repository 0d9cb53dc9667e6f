package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/services"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs periodic tournament jobs.
type Scheduler struct {
	cron    *cron.Cron
	archive services.ArchiveService
	logger  *slog.Logger
}

func New(archive services.ArchiveService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		archive: archive,
		logger:  logger,
	}
}

// AddSnapshotJob schedules standings snapshots on a six-field cron spec, e.g. "0 0 * * * *".
func (s *Scheduler) AddSnapshotJob(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSnapshot); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}
	s.logger.Info("standings snapshot job scheduled", slog.String("schedule", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.archive.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, services.ErrArchiveDisabled) {
			s.logger.Debug("scheduler: archive disabled, skipping snapshot")
			return
		}
		s.logger.Error("scheduler: snapshot failed", slog.Any("error", err))
		return
	}
	s.logger.Info("scheduler: snapshot stored", slog.String("key", result.Key))
}
