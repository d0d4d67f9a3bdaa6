package llm

import (
	"context"
	"fmt"
	"time"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/ports"
)

// MockAdapter returns canned output without any network call. Used in
// development mode and tests. Name overrides the descriptor name so tests
// can register several mocks side by side.
type MockAdapter struct {
	Name  string
	Delay time.Duration
	Fail  *domain.AdapterError
}

var _ ports.ProviderAdapter = (*MockAdapter)(nil)

// Descriptor declares every capability so the mock never rejects input.
func (m *MockAdapter) Descriptor() domain.ProviderDescriptor {
	name := m.Name
	if name == "" {
		name = "mock"
	}
	return domain.ProviderDescriptor{
		Name:                name,
		Model:               "mock-1",
		SupportsBinary:      true,
		SupportsURL:         true,
		SupportsNativeVideo: true,
	}
}

// Process waits for the configured delay, then returns either the
// configured failure or a deterministic summary stub.
func (m *MockAdapter) Process(ctx context.Context, payload domain.ContentPayload, composedPrompt string) (domain.ProcessingOutput, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return domain.ProcessingOutput{}, transportError("mock", ctx.Err())
		}
	}

	if m.Fail != nil {
		return domain.ProcessingOutput{}, m.Fail
	}

	return domain.ProcessingOutput{
		Text:  fmt.Sprintf("[mock summary] %s", payloadLabel(payload)),
		Model: "mock-1",
	}, nil
}

// Healthy reports available unless a failure is configured.
func (m *MockAdapter) Healthy(ctx context.Context) bool {
	return m.Fail == nil
}

func payloadLabel(payload domain.ContentPayload) string {
	switch payload.Kind {
	case domain.PayloadText:
		return "text content"
	case domain.PayloadBinary:
		return fmt.Sprintf("binary content (%d bytes)", len(payload.Data))
	case domain.PayloadURL:
		return payload.URL
	}
	return "unknown content"
}
