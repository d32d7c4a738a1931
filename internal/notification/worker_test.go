package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/dentalpay/internal/clock"
	obsctx "github.com/smallbiznis/dentalpay/internal/observability/context"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func testConfig() Config {
	return Config{
		Queue:         "memory",
		Workers:       1,
		QueueSize:     8,
		MaxRedelivery: 2,
		SweepSpec:     "@every 1h",
		Recipient:     "ops@example.com",
		SendTimeout:   time.Second,
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
			Multiplier:   2,
		},
	}
}

func newTestWorker(q Queue, provider *mockProvider) *Worker {
	return NewWorker(WorkerParams{Queue: q, Provider: provider, Config: testConfig(), Log: zap.NewNop()})
}

func TestProcessSends(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Send", mock.Anything, []string{"ops@example.com"}, Subject, mock.AnythingOfType("string")).Return(nil).Once()
	q := NewMemoryQueue(1)

	require.NoError(t, newTestWorker(q, provider).Process(context.Background(), testJob(t, "Orthodontics")))
	provider.AssertExpectations(t)

	dead, err := q.DeadLetters(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, dead)
}

func TestProcessRetriesTransientFailures(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("421 try later")).Twice()
	provider.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, newTestWorker(NewMemoryQueue(1), provider).Process(context.Background(), testJob(t, "Orthodontics")))
	provider.AssertNumberOfCalls(t, "Send", 3)
}

func TestProcessDeadLettersExhaustedJobs(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	q := NewMemoryQueue(1)

	err := newTestWorker(q, provider).Process(context.Background(), testJob(t, "Orthodontics"))
	require.Error(t, err)
	provider.AssertNumberOfCalls(t, "Send", 3)

	dead, err := q.DeadLetters(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, 3, dead[0].Attempts)
	assert.Equal(t, "smtp down", dead[0].LastError)
}

func TestWorkerPoolDeliversQueuedJobs(t *testing.T) {
	sent := make(chan string, 1)
	provider := &mockProvider{}
	provider.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent <- args.String(3) }).
		Return(nil)

	q := NewMemoryQueue(4)
	worker := newTestWorker(q, provider)
	worker.Start(context.Background())

	dispatcher := NewDispatcher(DispatcherParams{
		Queue:  q,
		Clock:  clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Config: testConfig(),
		Log:    zap.NewNop(),
	})
	ctx := obsctx.WithRequestID(context.Background(), "req-42")
	require.NoError(t, dispatcher.Notify(ctx, salarydomain.SalaryRecord{Specialty: "Periodontics", BaseSalary: 1000, HoursWorked: 40}))

	select {
	case body := <-sent:
		assert.Contains(t, body, "Periodontics")
	case <-time.After(5 * time.Second):
		t.Fatal("notification was not delivered")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, worker.Stop(stopCtx))
	require.NoError(t, worker.Stop(stopCtx))
}

func TestDispatcherRequiresRecipient(t *testing.T) {
	cfg := testConfig()
	cfg.Recipient = ""
	q := NewMemoryQueue(1)
	dispatcher := NewDispatcher(DispatcherParams{Queue: q, Clock: clock.New(), Config: cfg, Log: zap.NewNop()})

	err := dispatcher.Notify(context.Background(), salarydomain.SalaryRecord{})
	assert.ErrorIs(t, err, ErrNoRecipient)
	assert.Zero(t, q.Depth())
}

func TestDispatcherReportsFullQueue(t *testing.T) {
	q := NewMemoryQueue(1)
	dispatcher := NewDispatcher(DispatcherParams{Queue: q, Clock: clock.New(), Config: testConfig(), Log: zap.NewNop()})

	require.NoError(t, dispatcher.Notify(context.Background(), salarydomain.SalaryRecord{}))
	err := dispatcher.Notify(context.Background(), salarydomain.SalaryRecord{})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestDispatcherStampsRequestID(t *testing.T) {
	q := NewMemoryQueue(1)
	dispatcher := NewDispatcher(DispatcherParams{Queue: q, Clock: clock.New(), Config: testConfig(), Log: zap.NewNop()})

	ctx := obsctx.WithRequestID(context.Background(), "req-7")
	require.NoError(t, dispatcher.Notify(ctx, salarydomain.SalaryRecord{Specialty: "Endodontics"}))

	job, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "req-7", job.RequestID)
	assert.Equal(t, "Endodontics", job.Record.Specialty)
}
