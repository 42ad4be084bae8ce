package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// EntryProcessor processes one entry by id.
type EntryProcessor interface {
	Process(ctx context.Context, id int) error
}

// Worker runs entry processing in the background on a bounded queue.
type Worker struct {
	processor  EntryProcessor
	queue      chan int
	workers    int
	jobTimeout time.Duration
	logger     *slog.Logger
}

// NewWorker returns a Worker with workers goroutines and a queue of queueSize ids.
// jobTimeout bounds a single entry; zero means no limit.
func NewWorker(processor EntryProcessor, workers, queueSize int, jobTimeout time.Duration) *Worker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Worker{
		processor:  processor,
		queue:      make(chan int, queueSize),
		workers:    workers,
		jobTimeout: jobTimeout,
		logger:     slog.Default(),
	}
}

// Enqueue schedules entry id. It returns false when the queue is full.
func (w *Worker) Enqueue(id int) bool {
	select {
	case w.queue <- id:
		return true
	default:
		w.logger.Warn("processing queue full, dropping entry", "entry_id", id)
		return false
	}
}

// Pending returns the number of queued ids.
func (w *Worker) Pending() int {
	return len(w.queue)
}

// Run processes queued entries until ctx is cancelled. Ids still queued at
// that point are not processed.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case id := <-w.queue:
					w.process(ctx, id)
				}
			}
		})
	}
	return g.Wait()
}

func (w *Worker) process(ctx context.Context, id int) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("entry processing panicked", "entry_id", id, "panic", fmt.Sprint(r))
		}
	}()

	if w.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.jobTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := w.processor.Process(ctx, id); err != nil {
		w.logger.Error("entry processing failed", "entry_id", id, "error", err.Error())
		return
	}
	w.logger.Debug("entry processed", "entry_id", id, "elapsed", time.Since(start).String())
}
