package lifecycle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/usecase"
)

type scriptedService struct {
	calls   atomic.Int64
	results []domain.ProcessingResult
	block   bool
}

func (s *scriptedService) Summarize(ctx context.Context, req usecase.SummarizeRequest) domain.ProcessingResult {
	n := s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return domain.ProcessingResult{
			Error: &domain.ErrorInfo{Kind: domain.ErrTimeout, Message: "context ended", Retryable: true},
		}
	}
	idx := int(n) - 1
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx]
}

func successResult() domain.ProcessingResult {
	return domain.ProcessingResult{
		Success:  true,
		Output:   "done",
		Provider: "mock",
		Model:    "mock-1",
		Category: domain.CategoryDocument,
	}
}

func failedResult() domain.ProcessingResult {
	return domain.ProcessingResult{
		Category: domain.CategoryDocument,
		Error:    &domain.ErrorInfo{Kind: domain.ErrUpstream, Message: "backend down", Retryable: true},
	}
}

func waitDone(t *testing.T, c *Controller) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not complete in time")
	}
}

func TestControllerSuccessPath(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{results: []domain.ProcessingResult{successResult()}}
	c := NewController(svc, time.Second)

	require.Equal(t, StateIdle, c.State())
	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	waitDone(t, c)

	snap := c.Snapshot()
	assert.Equal(t, StateSucceeded, snap.State)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "done", snap.Result.Output)
	assert.Nil(t, snap.Err)
	assert.Empty(t, snap.Placeholder)
}

func TestControllerTimeout(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{block: true}
	c := NewController(svc, 50*time.Millisecond)

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	waitDone(t, c)

	snap := c.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	require.NotNil(t, snap.Err)
	assert.Equal(t, domain.ErrTimeout, snap.Err.Kind)
	assert.True(t, snap.Err.Retryable)
	assert.Contains(t, snap.Placeholder, "summary unavailable")
}

func TestControllerRejectsStartWhileLoading(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{block: true}
	c := NewController(svc, time.Second)

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	assert.Equal(t, StateLoading, c.State())

	err := c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f2", Prompt: "go"})
	assert.ErrorIs(t, err, ErrRequestInFlight)

	c.Reset()
}

func TestControllerRetryFromFailed(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{results: []domain.ProcessingResult{failedResult(), successResult()}}
	c := NewController(svc, time.Second)

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	waitDone(t, c)
	require.Equal(t, StateFailed, c.State())

	require.NoError(t, c.Retry(context.Background()))
	waitDone(t, c)

	assert.Equal(t, StateSucceeded, c.State())
	assert.Equal(t, int64(2), svc.calls.Load())
}

func TestControllerRetryOnlyFromFailed(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{results: []domain.ProcessingResult{successResult()}}
	c := NewController(svc, time.Second)

	assert.ErrorIs(t, c.Retry(context.Background()), ErrRetryNotAllowed)

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	waitDone(t, c)
	require.Equal(t, StateSucceeded, c.State())

	assert.ErrorIs(t, c.Retry(context.Background()), ErrRetryNotAllowed)
}

func TestControllerResetCancelsInFlight(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{block: true}
	c := NewController(svc, time.Minute)

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	done := c.Done()

	c.Reset()
	assert.Equal(t, StateIdle, c.State())

	// The orphaned completion still closes its notify channel but must not
	// move the controller out of Idle.
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled request never completed")
	}
	assert.Equal(t, StateIdle, c.State())

	snap := c.Snapshot()
	assert.Nil(t, snap.Result)
	assert.True(t, snap.StartedAt.IsZero())
}

func TestControllerDoneIdleIsClosed(t *testing.T) {
	t.Parallel()

	c := NewController(&scriptedService{results: []domain.ProcessingResult{successResult()}}, time.Second)
	select {
	case <-c.Done():
	default:
		t.Fatal("idle controller must return a closed channel")
	}
}

func TestControllerStartAgainAfterTerminal(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{results: []domain.ProcessingResult{successResult(), failedResult()}}
	c := NewController(svc, time.Second)

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f1", Prompt: "go"}))
	waitDone(t, c)
	require.Equal(t, StateSucceeded, c.State())

	require.NoError(t, c.Start(context.Background(), usecase.SummarizeRequest{ItemID: "f2", Prompt: "go"}))
	waitDone(t, c)
	assert.Equal(t, StateFailed, c.State())
}
