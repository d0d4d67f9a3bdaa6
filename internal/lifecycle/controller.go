package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/usecase"
)

// State enumerates the phases of one summary request.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// DefaultTimeout is the hard wall-clock bound applied per request.
const DefaultTimeout = 120 * time.Second

// Summarizer is the remote operation the controller drives.
type Summarizer interface {
	Summarize(ctx context.Context, req usecase.SummarizeRequest) domain.ProcessingResult
}

var (
	// ErrRequestInFlight is returned by Start while a request is Loading.
	ErrRequestInFlight = errors.New("a request is already in flight")
	// ErrRetryNotAllowed is returned by Retry outside the Failed state.
	ErrRetryNotAllowed = errors.New("retry is only valid from the failed state")
)

// Snapshot is an observable copy of the controller state.
type Snapshot struct {
	State       State
	StartedAt   time.Time
	Result      *domain.ProcessingResult
	Err         *domain.ErrorInfo
	Placeholder string
}

// Controller drives the request state machine for one open summary view:
// Idle → Loading → Succeeded/Failed, with explicit retry and reset. At
// most one request is Loading at a time; a new Start while Loading is
// rejected until the caller resets or the request reaches a terminal
// state.
type Controller struct {
	svc     Summarizer
	timeout time.Duration

	mu         sync.Mutex
	state      State
	startedAt  time.Time
	generation uint64
	cancel     context.CancelFunc
	notify     chan struct{}
	result     *domain.ProcessingResult
	lastReq    usecase.SummarizeRequest
	hasReq     bool
}

// NewController builds an idle controller. A non-positive timeout falls
// back to DefaultTimeout.
func NewController(svc Summarizer, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Controller{svc: svc, timeout: timeout}
}

// Start issues the orchestration call with the configured deadline. Legal
// only from Idle or a terminal state.
func (c *Controller) Start(ctx context.Context, req usecase.SummarizeRequest) error {
	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return ErrRequestInFlight
	}

	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.startedAt = time.Now()
	c.result = nil
	c.lastReq = req
	c.hasReq = true

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	c.cancel = cancel
	notify := make(chan struct{})
	c.notify = notify
	c.mu.Unlock()

	go func() {
		defer cancel()

		resCh := make(chan domain.ProcessingResult, 1)
		go func() {
			resCh <- c.svc.Summarize(runCtx, req)
		}()

		var result domain.ProcessingResult
		select {
		case result = <-resCh:
		case <-runCtx.Done():
			result = deadlineResult(req, runCtx.Err())
		}

		c.complete(gen, result, notify)
	}()

	return nil
}

// Retry re-issues the last request. Legal only from Failed.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateFailed || !c.hasReq {
		c.mu.Unlock()
		return ErrRetryNotAllowed
	}
	req := c.lastReq
	c.mu.Unlock()

	return c.Start(ctx, req)
}

// Reset cancels any in-flight call and returns to Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	// Orphan any in-flight completion so it cannot overwrite Idle.
	c.generation++
	c.state = StateIdle
	c.startedAt = time.Time{}
	c.result = nil
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done returns a channel closed when the current request completes. For
// an idle controller the channel is already closed.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notify == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return c.notify
}

// Snapshot copies the observable state. On failure the snapshot carries a
// degraded placeholder so the view never renders blank.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{State: c.state, StartedAt: c.startedAt}
	if c.result != nil {
		result := *c.result
		snap.Result = &result
		if result.Error != nil {
			errCopy := *result.Error
			snap.Err = &errCopy
		}
	}
	if c.state == StateFailed {
		snap.Placeholder = placeholderText(c.result, c.startedAt)
	}
	return snap
}

// complete applies the outcome under lock, dropping stale generations
// (superseded by Reset or a newer Start). notify is per-generation and is
// always closed exactly once.
func (c *Controller) complete(gen uint64, result domain.ProcessingResult, notify chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer close(notify)

	if gen != c.generation || c.state != StateLoading {
		return
	}

	c.cancel = nil
	c.result = &result
	if result.Success {
		c.state = StateSucceeded
	} else {
		c.state = StateFailed
	}
}

func deadlineResult(req usecase.SummarizeRequest, ctxErr error) domain.ProcessingResult {
	message := "the summary request took too long to complete"
	if errors.Is(ctxErr, context.Canceled) {
		message = "the summary request was cancelled before completion"
	}
	return domain.ProcessingResult{
		OriginalPrompt: req.Prompt,
		UserID:         req.UserID,
		ItemID:         req.ItemID,
		Error: &domain.ErrorInfo{
			Kind:      domain.ErrTimeout,
			Message:   message,
			Retryable: true,
		},
	}
}

func placeholderText(result *domain.ProcessingResult, startedAt time.Time) string {
	category := domain.ContentCategory("content")
	if result != nil && result.Category != "" {
		category = result.Category
	}
	return fmt.Sprintf("%s summary unavailable (requested %s)", category, startedAt.Format(time.RFC3339))
}
