package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_SeedsCurrentSnapshot(t *testing.T) {
	n := New[int]()
	n.Publish([]int{1, 2})

	ch, cancel := n.Subscribe()
	defer cancel()

	select {
	case got := <-ch:
		assert.Equal(t, []int{1, 2}, got)
	default:
		t.Fatal("expected seeded snapshot")
	}
}

func TestSubscribe_BeforeFirstPublish(t *testing.T) {
	n := New[int]()

	ch, cancel := n.Subscribe()
	defer cancel()

	select {
	case <-ch:
		t.Fatal("no snapshot should be pending before the first publish")
	default:
	}

	n.Publish([]int{7})
	assert.Equal(t, []int{7}, <-ch)
}

func TestPublish_LatestWins(t *testing.T) {
	n := New[int]()
	ch, cancel := n.Subscribe()
	defer cancel()

	// A slow subscriber misses intermediates but converges on the latest.
	n.Publish([]int{1})
	n.Publish([]int{2})
	n.Publish([]int{3})

	assert.Equal(t, []int{3}, <-ch)
}

func TestPublish_NeverBlocks(t *testing.T) {
	n := New[int]()
	_, cancel := n.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			n.Publish([]int{i})
		}
		close(done)
	}()
	<-done
}

func TestLatest(t *testing.T) {
	n := New[string]()

	_, ok := n.Latest()
	assert.False(t, ok)

	n.Publish([]string{"a"})
	latest, ok := n.Latest()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, latest)
}

func TestCancel_ClosesChannel(t *testing.T) {
	n := New[int]()
	ch, cancel := n.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	n.Publish([]int{1})
}
