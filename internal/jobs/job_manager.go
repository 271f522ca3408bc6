package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	withdrawalBacklogJob *WithdrawalBacklogJob
}

// NewJobManager creates the job manager. backlogSchedule is a six-field cron expression; an
// empty string selects DefaultBacklogSchedule.
func NewJobManager(stats WithdrawalStatsReader, backlogSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		withdrawalBacklogJob: NewWithdrawalBacklogJob(stats, backlogSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.withdrawalBacklogJob.Start(); err != nil {
		return fmt.Errorf("failed to start withdrawal backlog job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.withdrawalBacklogJob.Stop()
}
