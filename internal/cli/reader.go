package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/Veraticus/compras/internal/currency"
)

var (
	// ErrInputCancelled is returned when the context ends while waiting
	// for an answer.
	ErrInputCancelled = errors.New("input canceled")
	// ErrInputClosed is returned when input ends before the form is complete.
	ErrInputClosed = errors.New("input terminated")
)

// clearValue typed at a prompt empties the field.
const clearValue = "-"

// answerReader turns terminal lines into form answers. One goroutine reads
// ahead a line at a time, so a line typed after a cancelled wait is kept
// for the next question instead of being lost.
type answerReader struct {
	src   io.Reader
	err   error
	lines chan string
	once  sync.Once
}

func newAnswerReader(src io.Reader) *answerReader {
	return &answerReader{src: src, lines: make(chan string)}
}

func (r *answerReader) scan() {
	defer close(r.lines)
	br := bufio.NewReader(r.src)
	for {
		text, err := br.ReadString('\n')
		if err == nil || text != "" {
			r.lines <- strings.TrimSpace(text)
		}
		if err != nil {
			r.err = err
			return
		}
	}
}

// line waits for the next line, trimmed. A last line without a newline
// still counts.
func (r *answerReader) line(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.once.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case text, ok := <-r.lines:
		if ok {
			return text, nil
		}
		if errors.Is(r.err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", r.err)
	}
}

// answer reads a field value. Enter keeps current and "-" clears it.
func (r *answerReader) answer(ctx context.Context, current string) (string, error) {
	text, err := r.line(ctx)
	if err != nil {
		return "", err
	}
	switch text {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	default:
		return text, nil
	}
}

// choice is answer where "n" picks the nth option. Other text is kept as
// typed, so stored values outside the list survive an edit.
func (r *answerReader) choice(ctx context.Context, options []string, current string) (string, error) {
	value, err := r.answer(ctx, current)
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(value); convErr == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return value, nil
}

// price is answer for a price field. ok is false for new text the
// converter would not read as a number.
func (r *answerReader) price(ctx context.Context, current string) (value string, ok bool, err error) {
	value, err = r.answer(ctx, current)
	if err != nil || value == "" || value == current {
		return value, true, err
	}
	_, ok = currency.Parse(value)
	return value, ok, nil
}

// yes reads a confirmation. Input that ends counts as no.
func (r *answerReader) yes(ctx context.Context) (bool, error) {
	text, err := r.line(ctx)
	if errors.Is(err, ErrInputClosed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(text) {
	case "s", "sim", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
