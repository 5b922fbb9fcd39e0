package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads user input lines while honoring context cancellation.
type LineReader struct {
	reader *bufio.Reader
	out    io.Writer
	mu     sync.Mutex
}

// NewLineReader creates a reader over in that writes prompts to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	if in == nil {
		panic("reader cannot be nil")
	}
	if out == nil {
		out = io.Discard
	}
	return &LineReader{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine reads one trimmed line. A canceled context returns immediately;
// the pending read finishes in the background.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInputCancelled
	}

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return strings.TrimSpace(res.value), res.err
	}
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (r *LineReader) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(r.out, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := r.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
