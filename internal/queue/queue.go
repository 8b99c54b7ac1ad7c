package queue

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrClosed is returned by TryEnqueue after Shutdown.
var ErrClosed = errors.New("request queue is shut down")

type Job struct {
	Fn   func() error
	Errc chan error
}

// RequestQueueManager runs every HTTP handler on a bounded pool of workers.
type RequestQueueManager struct {
	JobQueue   chan Job
	MaxWorkers int
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewRequestQueueManager(queueSize int, maxWorkers int) *RequestQueueManager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	manager := &RequestQueueManager{
		JobQueue:   make(chan Job, queueSize),
		MaxWorkers: maxWorkers,
	}
	manager.startWorkers()
	return manager
}

func (rqm *RequestQueueManager) startWorkers() {
	for i := 0; i < rqm.MaxWorkers; i++ {
		rqm.wg.Add(1)
		go func(workerID int) {
			defer rqm.wg.Done()
			slog.Debug("queue worker started", "worker", workerID)
			for job := range rqm.JobQueue {
				err := run(job.Fn)
				if job.Errc != nil {
					job.Errc <- err
				}
			}
			slog.Debug("queue worker stopped", "worker", workerID)
		}(i)
	}
}

// run keeps a panicking handler from taking its worker down with it.
func run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("queue job panicked", "panic", r)
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return fn()
}

func (rqm *RequestQueueManager) EnqueueJob(job Job) {
	if err := rqm.TryEnqueue(job); err != nil && job.Errc != nil {
		job.Errc <- err
	}
}

// TryEnqueue blocks until a worker slot frees up, or fails once the queue is shut down.
func (rqm *RequestQueueManager) TryEnqueue(job Job) error {
	rqm.mu.RLock()
	defer rqm.mu.RUnlock()
	if rqm.closed {
		return ErrClosed
	}
	rqm.JobQueue <- job
	return nil
}

func (rqm *RequestQueueManager) Depth() int {
	return len(rqm.JobQueue)
}

func (rqm *RequestQueueManager) Shutdown() {
	rqm.mu.Lock()
	if rqm.closed {
		rqm.mu.Unlock()
		return
	}
	rqm.closed = true
	close(rqm.JobQueue)
	rqm.mu.Unlock()
	rqm.wg.Wait()
}
