package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/politreg/deputy-portal/internal/relay"
)

// RelayCall records one relay invocation.
type RelayCall struct {
	TaskType string
	Payload  []byte
}

// MockRelayClient is a mock implementation of relay.Client. Unless
// configured otherwise every call succeeds.
type MockRelayClient struct {
	mu    sync.Mutex
	calls []RelayCall

	// FailTypes maps a task type to the error message its result
	// should carry; the call itself still returns err-free.
	FailTypes map[string]string

	// CallErr makes every call fail at the transport level.
	CallErr error
}

var _ relay.Client = (*MockRelayClient)(nil)

func NewMockRelayClient() *MockRelayClient {
	return &MockRelayClient{FailTypes: make(map[string]string)}
}

func (c *MockRelayClient) Call(ctx context.Context, taskType string, payload any) (*relay.Result, error) {
	if c.CallErr != nil {
		return nil, c.CallErr
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.calls = append(c.calls, RelayCall{TaskType: taskType, Payload: data})
	c.mu.Unlock()

	if msg, ok := c.FailTypes[taskType]; ok {
		return &relay.Result{Status: relay.StatusError, Message: msg}, nil
	}
	return &relay.Result{Status: relay.StatusSuccess}, nil
}

// Calls returns the recorded invocations.
func (c *MockRelayClient) Calls() []RelayCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RelayCall(nil), c.calls...)
}

// CallsOf returns the recorded invocations of one task type.
func (c *MockRelayClient) CallsOf(taskType string) []RelayCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []RelayCall
	for _, call := range c.calls {
		if call.TaskType == taskType {
			result = append(result, call)
		}
	}
	return result
}
