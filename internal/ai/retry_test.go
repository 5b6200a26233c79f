package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	errs  []error
	text  string
	calls int
}

func (s *scriptedGenerator) Generate(context.Context, string) (string, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return "", s.errs[s.calls-1]
	}
	return s.text, nil
}

func TestRetrySucceedsFirstTry(t *testing.T) {
	next := &scriptedGenerator{text: "answer"}
	gen := NewRetryGenerator(next, 2, time.Millisecond)
	res, err := gen.Generate(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, "answer", res)
	require.Equal(t, 1, next.calls)
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	next := &scriptedGenerator{
		errs: []error{errors.New("http 500"), errors.New("http 503")},
		text: "answer",
	}
	gen := NewRetryGenerator(next, 2, time.Millisecond)
	res, err := gen.Generate(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, "answer", res)
	require.Equal(t, 3, next.calls)
}

func TestRetryExhaustsBudget(t *testing.T) {
	boom := errors.New("http 500")
	next := &scriptedGenerator{errs: []error{boom, boom, boom, boom}}
	gen := NewRetryGenerator(next, 2, time.Millisecond)
	_, err := gen.Generate(context.Background(), "q")
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, next.calls)
}

func TestRetryFailsFastOnAuth(t *testing.T) {
	next := &scriptedGenerator{errs: []error{fmt.Errorf("provider said no: %w", ErrAuth)}}
	gen := NewRetryGenerator(next, 5, time.Millisecond)
	_, err := gen.Generate(context.Background(), "q")
	require.ErrorIs(t, err, ErrAuth)
	require.Equal(t, 1, next.calls)
}

func TestRetryFailsFastOnUnavailable(t *testing.T) {
	next := &scriptedGenerator{errs: []error{ErrUnavailable}}
	gen := NewRetryGenerator(next, 5, time.Millisecond)
	_, err := gen.Generate(context.Background(), "q")
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, 1, next.calls)
}

func TestRetryStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	next := &scriptedGenerator{errs: []error{errors.New("http 500"), errors.New("http 500")}}
	gen := NewRetryGenerator(next, 5, time.Hour)
	_, err := gen.Generate(ctx, "q")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, next.calls)
}

func TestRetryNilNext(t *testing.T) {
	require.Nil(t, NewRetryGenerator(nil, 2, time.Second))
}
