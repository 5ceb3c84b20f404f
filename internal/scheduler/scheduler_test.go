package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noop(context.Context) error { return nil }

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("reminders", "every morning", time.UTC, noop, discardLogger())
	require.Error(t, err)
}

func TestScheduler_NextRun(t *testing.T) {
	s, err := New("reminders", "0 8 * * *", time.UTC, noop, discardLogger())
	require.NoError(t, err)

	tests := []struct {
		name  string
		after time.Time
		want  time.Time
	}{
		{
			name:  "before eight fires the same day",
			after: time.Date(2025, 11, 7, 6, 30, 0, 0, time.UTC),
			want:  time.Date(2025, 11, 7, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "after eight fires the next day",
			after: time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 11, 8, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "exactly eight fires the next day",
			after: time.Date(2025, 11, 7, 8, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 11, 8, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(s.NextRun(tt.after)), "got %s", s.NextRun(tt.after))
		})
	}
}

func TestScheduler_NextRun_HonoursLocation(t *testing.T) {
	cet := time.FixedZone("CET", 60*60)
	s, err := New("reminders", "0 8 * * *", cet, noop, discardLogger())
	require.NoError(t, err)

	next := s.NextRun(time.Date(2025, 11, 7, 6, 30, 0, 0, time.UTC)) // 07:30 CET
	assert.True(t, time.Date(2025, 11, 7, 7, 0, 0, 0, time.UTC).Equal(next), "got %s", next)
}

func TestScheduler_FiresJobAndKeepsRunningAfterFailures(t *testing.T) {
	var calls atomic.Int32
	fired := make(chan struct{}, 4)
	job := func(ctx context.Context) error {
		n := calls.Add(1)
		fired <- struct{}{}
		if n == 1 {
			return errors.New("first run fails")
		}
		return nil
	}
	s, err := New("reminders", "@every 1s", time.UTC, job, discardLogger())
	require.NoError(t, err)

	s.Start()
	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatalf("job did not fire (run %d)", i+1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestScheduler_StopCancelsSlowJob(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	job := func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}
	s, err := New("reminders", "@every 1s", time.UTC, job, discardLogger())
	require.NoError(t, err)

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("running job was not cancelled")
	}
}

func TestScheduler_RunNow(t *testing.T) {
	want := errors.New("smtp down")
	var got context.Context
	s, err := New("reminders", "0 8 * * *", time.UTC, func(ctx context.Context) error {
		got = ctx
		return want
	}, discardLogger())
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), struct{}{}, "caller")
	assert.ErrorIs(t, s.RunNow(ctx), want)
	assert.Equal(t, ctx, got)
}
