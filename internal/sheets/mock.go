package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/savings-sprint/internal/service"
)

// MockWriter is a service.ReportWriter that records reports instead of
// publishing them.
type MockWriter struct {
	WriteFunc  func(ctx context.Context, report *service.SavingsReport) error
	LastReport *service.SavingsReport
	WriteCalls int
	mu         sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, report *service.SavingsReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCalls++
	m.LastReport = report
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, report)
	}
	return nil
}

// SetWriteError makes every following Write return err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, *service.SavingsReport) error {
		return err
	}
}

// Calls returns how many times Write ran.
func (m *MockWriter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WriteCalls
}
