package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandler_CancelsContext(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Import")

	ctx := handler.HandleInterrupts(context.Background())
	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	handler.SetImported(12)
	handler.interrupt()

	<-ctx.Done()
	assert.True(t, handler.WasInterrupted())
	assert.Contains(t, output.String(), "Import interrupted!")
	assert.Contains(t, output.String(), "12 transactions already imported were kept.")
}

func TestInterruptHandler_MessageShownOnce(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Import")
	_ = handler.HandleInterrupts(context.Background())

	handler.interrupt()
	handler.interrupt()

	assert.Equal(t, 1, strings.Count(output.String(), "Import interrupted!"))
	assert.NotContains(t, output.String(), "already imported")
}

func TestInterruptHandler_ParentCancelIsNotInterrupt(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Import")

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)
	cancel()
	<-ctx.Done()

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestNewInterruptHandler_NilWriter(t *testing.T) {
	handler := NewInterruptHandler(nil, "Export")
	assert.NotNil(t, handler.writer)
}
