package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsReaderMock struct {
	mock.Mock
}

func (m *statsReaderMock) Handle(ctx context.Context, query queries.GetWithdrawalStatsQuery) (queries.WithdrawalStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.WithdrawalStats), args.Error(1)
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestWithdrawalBacklogJob_Run_LogsPendingAndApproved(t *testing.T) {
	stats := &statsReaderMock{}
	stats.On("Handle", mock.Anything, mock.Anything).Return(queries.WithdrawalStats{
		ByStatus: map[string]queries.StatusTotals{
			"Pending":  {Count: 3, RequestedAmount: 3_000_000, ActualAmount: 2_400_000},
			"Approved": {Count: 1, RequestedAmount: 1_000_000, ActualAmount: 800_000},
		},
	}, nil).Once()
	var buf bytes.Buffer

	jobs.NewWithdrawalBacklogJob(stats, "", newLogger(&buf)).Run(context.Background())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Withdrawal backlog", entry["msg"])
	assert.Equal(t, "withdrawal_backlog_job", entry["component"])
	assert.InDelta(t, 3, entry["pending_count"], 0)
	assert.InDelta(t, 3_000_000, entry["pending_amount"], 0)
	assert.InDelta(t, 1, entry["approved_count"], 0)
	assert.InDelta(t, 800_000, entry["approved_payout"], 0)
	stats.AssertExpectations(t)
}

func TestWithdrawalBacklogJob_Run_LogsFailure(t *testing.T) {
	stats := &statsReaderMock{}
	stats.On("Handle", mock.Anything, mock.Anything).
		Return(queries.WithdrawalStats{}, errors.New("connection refused")).Once()
	var buf bytes.Buffer

	jobs.NewWithdrawalBacklogJob(stats, "", newLogger(&buf)).Run(context.Background())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "connection refused", entry["error"])
}

func TestJobManager_StartAll_RejectsInvalidSchedule(t *testing.T) {
	manager := jobs.NewJobManager(&statsReaderMock{}, "not a cron expression", slog.New(slog.DiscardHandler))

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "withdrawal backlog job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(&statsReaderMock{}, "0 0 3 * * *", slog.New(slog.DiscardHandler))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
