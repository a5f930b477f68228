package analyzer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressCall struct {
	current, total int
	path           string
}

func TestTracker_AddAndTick(t *testing.T) {
	var calls []progressCall
	tracker := NewTracker(func(current, total int, path string) {
		calls = append(calls, progressCall{current, total, path})
	})

	tracker.Add(3)
	tracker.Tick("a.json")
	tracker.Tick("b.json")
	tracker.Tick("c.json")

	assert.Equal(t, 3, tracker.Total())
	assert.Equal(t, 3, tracker.Current())
	require.Len(t, calls, 3)
	assert.Equal(t, progressCall{1, 3, "a.json"}, calls[0])
	assert.Equal(t, progressCall{3, 3, "c.json"}, calls[2])
}

func TestTracker_AddGrowsTotal(t *testing.T) {
	var totals []int
	tracker := NewTracker(func(_, total int, _ string) {
		totals = append(totals, total)
	})

	tracker.Add(2)
	tracker.Tick("a.json")
	tracker.Add(3)
	tracker.Tick("b.json")

	assert.Equal(t, []int{2, 5}, totals)
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Add(100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Tick("x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, tracker.Current())
}

func TestTrackerContext(t *testing.T) {
	assert.Nil(t, TrackerFromContext(context.Background()))

	tracker := NewTracker(nil)
	ctx := WithTracker(context.Background(), tracker)
	assert.Same(t, tracker, TrackerFromContext(ctx))
}
