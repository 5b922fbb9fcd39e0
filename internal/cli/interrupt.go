package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a long-running import on SIGINT/SIGTERM and tells
// the user what was kept.
type InterruptHandler struct {
	writer      io.Writer
	cancel      context.CancelFunc
	operation   string
	imported    int
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a handler for the named operation.
func NewInterruptHandler(writer io.Writer, operation string) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer:    writer,
		operation: operation,
	}
}

// HandleInterrupts returns a context canceled on the first interrupt signal.
// Signal handling stops once the returned context is done.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			h.interrupt()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// SetImported records how many transactions were stored so far.
func (h *InterruptHandler) SetImported(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.imported = n
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}

func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	if h.interrupted {
		h.mu.Unlock()
		return
	}
	h.interrupted = true
	h.showInterruptMessage()
	h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
	}
}

// showInterruptMessage must be called with mu held.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning(h.operation+" interrupted!")
	if h.imported > 0 {
		msg += "\n" + FormatInfo(fmt.Sprintf("%d transactions already imported were kept.", h.imported))
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}
