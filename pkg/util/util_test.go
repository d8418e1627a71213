package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeTpl(t *testing.T) {
	ts := time.Date(2023, 11, 10, 0, 15, 42, 0, time.UTC)

	assert.Equal(t, "2023.11.10", FormatTimeTpl(ts, "YYYY.MM.DD"))
	assert.Equal(t, "10/11/2023", FormatTimeTpl(ts, "DD/MM/YYYY"))
	assert.Equal(t, "2023-11-10 00:15:42", FormatTimeTpl(ts, "YYYY-MM-DD hh:mm:ss"))
	assert.Equal(t, "23", FormatTimeTpl(ts, "YY"))
	assert.Equal(t, "", FormatTimeTpl(time.Time{}, "YYYY"))
}

func TestDiscordTimestamp(t *testing.T) {
	ts := time.Unix(1699574400, 0)
	assert.Equal(t, "<t:1699574400:R>", DiscordTimestamp(ts, 'R'))
	assert.Equal(t, "<t:1699574400:F>", DiscordTimestamp(ts, 'F'))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "", Truncate("hello", 0))
	// rune-safe
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
}

func TestParallelRunsAll(t *testing.T) {
	var n int64
	inputs := make([]int, 50)

	err := Parallel(context.Background(), inputs, 8, func(ctx context.Context, _ int) error {
		atomic.AddInt64(&n, 1)
		return nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 50, n)
}

func TestParallelStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	var started int64

	inputs := make([]int, 100)
	for i := range inputs {
		inputs[i] = i
	}

	err := Parallel(context.Background(), inputs, 2, func(ctx context.Context, i int) error {
		atomic.AddInt64(&started, 1)
		if i == 3 {
			return boom
		}
		select {
		case <-ctx.Done():
		case <-time.After(10 * time.Millisecond):
		}
		return nil
	})

	require.ErrorIs(t, err, boom)
	assert.Less(t, atomic.LoadInt64(&started), int64(100))
}

func TestParallelHonorsParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := make([]int, 10)
	err := Parallel(ctx, inputs, 2, func(ctx context.Context, _ int) error {
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallelCollectKeepsGoing(t *testing.T) {
	inputs := []int{1, 2, 3, 4, 5, 6}
	var done int64

	errs := ParallelCollect(context.Background(), inputs, 3, func(ctx context.Context, i int) error {
		atomic.AddInt64(&done, 1)
		if i%2 == 0 {
			return errors.New("even")
		}
		return nil
	})

	assert.Len(t, errs, 3)
	assert.EqualValues(t, 6, done)
}

func TestParallelEmptyInput(t *testing.T) {
	require.NoError(t, Parallel(context.Background(), []string(nil), 4, func(ctx context.Context, _ string) error {
		return errors.New("never called")
	}))
	assert.Nil(t, ParallelCollect(context.Background(), []string(nil), 4, func(ctx context.Context, _ string) error {
		return errors.New("never called")
	}))
}
