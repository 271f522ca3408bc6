package jobs

import (
	"context"
	"log/slog"

	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/robfig/cron/v3"
)

// DefaultBacklogSchedule runs the backlog report every five minutes.
const DefaultBacklogSchedule = "0 */5 * * * *"

type WithdrawalStatsReader interface {
	Handle(ctx context.Context, query queries.GetWithdrawalStatsQuery) (queries.WithdrawalStats, error)
}

// WithdrawalBacklogJob periodically logs how many withdrawal requests are waiting for an
// administrator and how much money they represent.
type WithdrawalBacklogJob struct {
	stats    WithdrawalStatsReader
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewWithdrawalBacklogJob(stats WithdrawalStatsReader, schedule string, logger *slog.Logger) *WithdrawalBacklogJob {
	if schedule == "" {
		schedule = DefaultBacklogSchedule
	}
	return &WithdrawalBacklogJob{
		stats:    stats,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "withdrawal_backlog_job"),
	}
}

func (j *WithdrawalBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Withdrawal backlog job started", "schedule", j.schedule)
	return nil
}

// Run reports the current backlog once.
func (j *WithdrawalBacklogJob) Run(ctx context.Context) {
	stats, err := j.stats.Handle(ctx, queries.NewGetWithdrawalStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Withdrawal backlog job failed", "error", err)
		return
	}

	pending := stats.ByStatus[withdrawal.Pending.String()]
	approved := stats.ByStatus[withdrawal.Approved.String()]
	j.logger.InfoContext(ctx, "Withdrawal backlog",
		slog.Int64("pending_count", pending.Count),
		slog.Int64("pending_amount", pending.RequestedAmount.Int64()),
		slog.Int64("approved_count", approved.Count),
		slog.Int64("approved_payout", approved.ActualAmount.Int64()),
	)
}

func (j *WithdrawalBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Withdrawal backlog job stopped")
}
