package concurrent

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// WorkerFunc defines the function signature for work to be executed
// It receives the item to process and channels for communication
type WorkerFunc[T any, R any] func(item T, messages chan<- string, results chan<- R, errors chan<- error)

// RunnerConfig configures the concurrent runner
type RunnerConfig struct {
	MaxConcurrency int    // 0 means unlimited concurrency
	LogPrefix      string // Logger name for progress messages
	Logger         *zap.Logger
}

// Runner encapsulates concurrent processing with channels and wait groups
type Runner[T any, R any] struct {
	config RunnerConfig
	log    *zap.Logger
}

// NewRunner creates a new concurrent runner with the given configuration
func NewRunner[T any, R any](config RunnerConfig) *Runner[T, R] {
	if config.LogPrefix == "" {
		config.LogPrefix = "runner"
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner[T, R]{
		config: config,
		log:    log.Named(config.LogPrefix),
	}
}

// RunResult contains the results of a concurrent run
type RunResult[R any] struct {
	Results []R
	Errors  []error
}

// Run executes the worker function for each item concurrently
// Returns aggregated results and errors
func (r *Runner[T, R]) Run(ctx context.Context, items []T, worker WorkerFunc[T, R]) RunResult[R] {
	res := RunResult[R]{
		Results: []R{},
		Errors:  []error{},
	}
	r.RunWithCallbacks(ctx, items, worker, nil,
		func(result R) { res.Results = append(res.Results, result) },
		func(err error) { res.Errors = append(res.Errors, err) })
	return res
}

// RunWithCallbacks is similar to Run but hands each message, result and
// error to a callback as it arrives. Callbacks of one kind are never
// called concurrently. Items not yet started when ctx is done are
// skipped and ctx.Err() is reported once.
func (r *Runner[T, R]) RunWithCallbacks(
	ctx context.Context,
	items []T,
	worker WorkerFunc[T, R],
	onMessage func(string),
	onResult func(R),
	onError func(error),
) {
	if len(items) == 0 {
		return
	}

	var messagesWG sync.WaitGroup

	messages := make(chan string)
	messagesWG.Add(1)
	go func() {
		defer messagesWG.Done()
		for message := range messages {
			if onMessage != nil {
				onMessage(message)
			}
			r.log.Info(message)
		}
	}()

	results := make(chan R)
	messagesWG.Add(1)
	go func() {
		defer messagesWG.Done()
		for result := range results {
			if onResult != nil {
				onResult(result)
			}
		}
	}()

	errors := make(chan error)
	messagesWG.Add(1)
	go func() {
		defer messagesWG.Done()
		for err := range errors {
			if onError != nil {
				onError(err)
			}
		}
	}()

	var workersWg sync.WaitGroup

	// Throttle channel for limiting concurrency (if configured)
	var throttle chan struct{}
	if r.config.MaxConcurrency > 0 {
		throttle = make(chan struct{}, r.config.MaxConcurrency)
	}

	cancelled := false
dispatch:
	for _, item := range items {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if throttle != nil {
			select {
			case throttle <- struct{}{}:
			case <-ctx.Done():
				cancelled = true
				break dispatch
			}
		}

		workersWg.Add(1)
		go func(item T) {
			defer workersWg.Done()
			if throttle != nil {
				defer func() { <-throttle }()
			}
			worker(item, messages, results, errors)
		}(item)
	}

	workersWg.Wait()
	if cancelled {
		errors <- ctx.Err()
	}

	close(messages)
	close(results)
	close(errors)

	messagesWG.Wait()
}
