package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	path    string
	backend string
}

func (t testConfig) BasePath() string { return t.path }

func (t testConfig) Backend() string { return t.backend }

func TestDiskvWatchEmitsDocumentChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	require.NoError(t, err)

	// The trip directory exists before watching so the write below lands in a
	// watched directory.
	require.NoError(t, p.Put(context.Background(), Key("rome", DocDayPlan), []byte("{}")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	require.NoError(t, err)

	// Allow watcher goroutine to subscribe to directories before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, p.Put(context.Background(), Key("rome", DocSelection), []byte("[]")))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Key == "rome/selection" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestMemoryWatchPublishesAndCloses(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Put(ctx, "t/a", []byte("1")))
	select {
	case evt := <-ch:
		require.Equal(t, Event{Type: EventDocumentChanged, Key: "t/a"}, evt)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestThrottleCoalesces(t *testing.T) {
	got := make(chan Event, 8)
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()
	send := nonBlocking(got)

	th.Enqueue(Event{Type: EventDocumentChanged, Key: "t/a"}, send)
	th.Enqueue(Event{Type: EventDocumentChanged, Key: "t/a"}, send)

	select {
	case evt := <-got:
		require.Equal(t, "t/a", evt.Key)
	case <-time.After(time.Second):
		t.Fatal("no flush")
	}
	require.Never(t, func() bool { return len(got) > 0 }, 60*time.Millisecond, 10*time.Millisecond)
}
