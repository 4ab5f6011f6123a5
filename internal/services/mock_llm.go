package services

import (
	"context"
	"sync"

	"github.com/aimarket/haggle-engine/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing.
type MockLLM struct {
	InitModelFunc        func(ctx context.Context, modelName string) error
	GenerateResponseFunc func(ctx context.Context, messages []chat.Message) (string, error)

	// Track calls for testing
	InitModelCalls        []string
	GenerateResponseCalls [][]chat.Message

	mu sync.Mutex // protects all fields above
}

// NewMockLLM creates a new mock LLM service.
func NewMockLLM() *MockLLM {
	return &MockLLM{
		InitModelCalls:        make([]string, 0),
		GenerateResponseCalls: make([][]chat.Message, 0),
	}
}

func (m *MockLLM) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

func (m *MockLLM) GenerateResponse(ctx context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	m.GenerateResponseCalls = append(m.GenerateResponseCalls, copied)

	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, messages)
	}
	return "Mock vendor reply", nil
}

// SetGenerateResponseError sets up the mock to fail on GenerateResponse.
func (m *MockLLM) SetGenerateResponseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateResponseFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", err
	}
}

// SetReply sets a fixed reply for GenerateResponse.
func (m *MockLLM) SetReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateResponseFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return reply, nil
	}
}

// Calls returns a copy of the recorded GenerateResponse calls.
func (m *MockLLM) Calls() [][]chat.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]chat.Message, len(m.GenerateResponseCalls))
	copy(calls, m.GenerateResponseCalls)
	return calls
}
