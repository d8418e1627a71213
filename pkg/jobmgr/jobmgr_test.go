package jobmgr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRejectsDuplicateName(t *testing.T) {
	m := NewManager(nil)
	release := make(chan struct{})

	err := m.Start("loop:1", func(ctx context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	err = m.Start("loop:1", func(ctx context.Context) error { return nil })
	assert.Error(t, err)

	close(release)
}

func TestStopCancelsRunner(t *testing.T) {
	m := NewManager(nil)
	stopped := make(chan struct{})

	err := m.Start("loop:2", func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, m.Stop("loop:2"))

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("runner was not cancelled")
	}

	assert.Error(t, m.Stop("loop:2"))
}

func TestStopPrefix(t *testing.T) {
	m := NewManager(nil)

	for _, name := range []string{"game:1", "game:2", "sweep:1"} {
		require.NoError(t, m.Start(name, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}))
	}

	assert.Equal(t, 2, m.StopPrefix("game:"))
	assert.False(t, m.Running("game:1"))
	assert.True(t, m.Running("sweep:1"))

	m.StopAll()
	assert.Empty(t, m.List())
}

func TestJobRemovesItselfWhenDone(t *testing.T) {
	events := make(chan string, 4)
	m := NewManager(func(s string) { events <- s })

	require.NoError(t, m.Start("oneshot", func(ctx context.Context) error {
		return nil
	}))

	var got []string
	deadline := time.After(time.Second)
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e)
		case <-deadline:
			t.Fatalf("timed out, events so far: %v", got)
		}
	}

	assert.Equal(t, []string{"running:oneshot", "done:oneshot"}, got)
	assert.False(t, m.Running("oneshot"))
}

func TestListSorted(t *testing.T) {
	m := NewManager(nil)

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, m.Start(name, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}))
	}
	defer m.StopAll()

	assert.Equal(t, []string{"a", "b", "c"}, m.List())
}
