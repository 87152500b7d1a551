package concurrent

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func square(item int, messages chan<- string, results chan<- int, errors chan<- error) {
	if item < 0 {
		errors <- fmt.Errorf("negative item %d", item)
		return
	}
	messages <- fmt.Sprintf("squared %d", item)
	results <- item * item
}

func TestRun(t *testing.T) {
	r := NewRunner[int, int](RunnerConfig{MaxConcurrency: 2, Logger: zaptest.NewLogger(t)})
	res := r.Run(context.Background(), []int{1, 2, -3, 4}, square)

	sort.Ints(res.Results)
	assert.Equal(t, []int{1, 4, 16}, res.Results)
	require.Len(t, res.Errors, 1)
	assert.EqualError(t, res.Errors[0], "negative item -3")
}

func TestRunEmpty(t *testing.T) {
	res := NewRunner[int, int](RunnerConfig{}).Run(context.Background(), nil, square)
	assert.Empty(t, res.Results)
	assert.Empty(t, res.Errors)
}

func TestMaxConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	worker := func(item int, _ chan<- string, results chan<- int, _ chan<- error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		results <- item
	}
	res := NewRunner[int, int](RunnerConfig{MaxConcurrency: 3}).Run(context.Background(), make([]int, 20), worker)
	assert.Len(t, res.Results, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var messages []string
	var errs []error
	NewRunner[int, int](RunnerConfig{MaxConcurrency: 1}).RunWithCallbacks(ctx, []int{1, 2, 3}, square,
		func(m string) { messages = append(messages, m) },
		nil,
		func(err error) { errs = append(errs, err) })

	assert.Empty(t, messages)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}
