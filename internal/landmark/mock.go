package landmark

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockProvider is a test implementation of the Provider interface.
// It allows tests to control the detection results.
type MockProvider struct {
	mu    sync.Mutex
	hands []Hand
	err   error
	calls int
}

// NewMockProvider creates a new MockProvider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockProvider) SetHands(hands []Hand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockProvider) Detect(frame *gocv.Mat) ([]Hand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Calls returns how many times Detect has been invoked.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close is a no-op for the mock provider.
func (m *MockProvider) Close() error {
	return nil
}
