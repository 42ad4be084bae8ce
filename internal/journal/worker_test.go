package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	mu   sync.Mutex
	ids  []int
	done chan int
	fail map[int]bool
}

func (p *recordingProcessor) Process(ctx context.Context, id int) error {
	p.mu.Lock()
	p.ids = append(p.ids, id)
	p.mu.Unlock()
	defer func() { p.done <- id }()

	if id == 99 {
		panic("boom")
	}
	if p.fail[id] {
		return errors.New("failed")
	}
	return nil
}

func TestWorkerProcessesQueuedEntries(t *testing.T) {
	processor := &recordingProcessor{done: make(chan int, 10), fail: map[int]bool{2: true}}
	worker := NewWorker(processor, 2, 10, time.Second)

	for _, id := range []int{1, 2, 99, 3} {
		require.True(t, worker.Enqueue(id))
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- worker.Run(ctx) }()

	seen := make(map[int]bool)
	for len(seen) < 4 {
		select {
		case id := <-processor.done:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for entries, saw %v", seen)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop after cancel")
	}
	assert.True(t, seen[1] && seen[2] && seen[3] && seen[99])
}

func TestWorkerEnqueueRejectsWhenFull(t *testing.T) {
	worker := NewWorker(&recordingProcessor{done: make(chan int, 1)}, 1, 2, 0)

	assert.True(t, worker.Enqueue(1))
	assert.True(t, worker.Enqueue(2))
	assert.False(t, worker.Enqueue(3))
	assert.Equal(t, 2, worker.Pending())
}

func TestNewWorkerDefaults(t *testing.T) {
	worker := NewWorker(&recordingProcessor{}, 0, 0, 0)
	assert.Equal(t, 1, worker.workers)
	assert.Equal(t, 1, cap(worker.queue))
}
