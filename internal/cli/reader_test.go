package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/compras/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerReader_Answer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{name: "typed value", input: "Lawson\n", current: "7-Eleven", want: "Lawson"},
		{name: "surrounding spaces trimmed", input: "  Lawson  \n", want: "Lawson"},
		{name: "enter keeps current", input: "\n", current: "7-Eleven", want: "7-Eleven"},
		{name: "dash clears", input: "-\n", current: "7-Eleven", want: ""},
		{name: "last line without newline", input: "Lawson", want: "Lawson"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAnswerReader(strings.NewReader(tt.input))
			got, err := r.answer(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerReader_InputEnds(t *testing.T) {
	r := newAnswerReader(strings.NewReader("Pocky\n"))
	ctx := context.Background()

	got, err := r.answer(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Pocky", got)

	_, err = r.answer(ctx, "")
	assert.ErrorIs(t, err, ErrInputClosed)
	_, err = r.answer(ctx, "")
	assert.ErrorIs(t, err, ErrInputClosed, "stays closed")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestAnswerReader_ReadError(t *testing.T) {
	r := newAnswerReader(failingReader{})
	_, err := r.answer(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInputClosed)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestAnswerReader_Choice(t *testing.T) {
	options := model.CityNames()
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{name: "number picks option", input: "2\n", want: options[1]},
		{name: "first option", input: "1\n", want: options[0]},
		{name: "out of range kept as typed", input: "99\n", want: "99"},
		{name: "free text kept", input: "Sapporo\n", want: "Sapporo"},
		{name: "enter keeps stored value", input: "\n", current: "Nara", want: "Nara"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAnswerReader(strings.NewReader(tt.input))
			got, err := r.choice(context.Background(), options, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerReader_Price(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
		ok      bool
	}{
		{name: "number", input: "1500\n", want: "1500", ok: true},
		{name: "decimal", input: "9.90\n", want: "9.90", ok: true},
		{name: "blank keeps current", input: "\n", current: "12.50", want: "12.50", ok: true},
		{name: "dash clears", input: "-\n", current: "12.50", want: "", ok: true},
		{name: "words rejected", input: "barato\n", want: "barato", ok: false},
		{name: "comma decimal rejected", input: "9,90\n", want: "9,90", ok: false},
		{name: "hex rejected", input: "0x10\n", want: "0x10", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAnswerReader(strings.NewReader(tt.input))
			got, ok, err := r.price(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestAnswerReader_Yes(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"s\n", true},
		{"SIM\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"talvez\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := newAnswerReader(strings.NewReader(tt.input))
			got, err := r.yes(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerReader_Cancellation(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		r := newAnswerReader(strings.NewReader("x\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.answer(ctx, "")
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("line typed after a cancelled wait is kept", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pr.Close() }()
		r := newAnswerReader(pr)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := r.answer(ctx, "")
		require.ErrorIs(t, err, ErrInputCancelled)

		go func() { _, _ = pw.Write([]byte("Matcha\n")) }()
		got, err := r.answer(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "Matcha", got)
	})
}
