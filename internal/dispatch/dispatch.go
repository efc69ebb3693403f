package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// queueDepth bounds how many events a single user may have pending
	queueDepth = 32
	// idleAfter is how long a user's worker lingers with an empty queue
	// before it is reaped
	idleAfter = 5 * time.Minute
)

// Dispatcher runs one task at a time per user while running users
// concurrently with each other. Tasks for the same user execute in
// submission order, so a state written by one update is visible to the
// next update from that user.
type Dispatcher struct {
	mu      sync.Mutex
	queues  map[int64]chan func()
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	logger  *logrus.Logger
}

// NewDispatcher creates a new per-user dispatcher
func NewDispatcher(logger *logrus.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		queues: make(map[int64]chan func()),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Dispatch enqueues a task on the user's queue, starting a worker for the
// user if none is running. A full queue drops the task with a warning
// rather than blocking the caller.
func (d *Dispatcher) Dispatch(userID int64, task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		d.logger.Warnf("Dropping task for user %d: dispatcher stopped", userID)
		return
	}

	queue, ok := d.queues[userID]
	if !ok {
		queue = make(chan func(), queueDepth)
		d.queues[userID] = queue
		d.wg.Add(1)
		go d.worker(userID, queue)
	}

	// Enqueueing under the lock keeps a racing idle reap from stranding
	// the task on an abandoned queue
	select {
	case queue <- task:
	default:
		d.logger.Warnf("Dropping task for user %d: queue full", userID)
	}
}

// worker drains one user's queue until shutdown or idle timeout
func (d *Dispatcher) worker(userID int64, queue chan func()) {
	defer d.wg.Done()

	idle := time.NewTimer(idleAfter)
	defer idle.Stop()

	for {
		select {
		case task := <-queue:
			d.run(userID, task)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(idleAfter)
		case <-idle.C:
			if d.retire(userID, queue) {
				return
			}
			idle.Reset(idleAfter)
		case <-d.ctx.Done():
			// Drain whatever was already enqueued before stopping
			for {
				select {
				case task := <-queue:
					d.run(userID, task)
				default:
					return
				}
			}
		}
	}
}

// retire removes an idle worker's queue unless a task raced in
func (d *Dispatcher) retire(userID int64, queue chan func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(queue) > 0 {
		return false
	}
	delete(d.queues, userID)
	return true
}

// run executes one task, keeping a panic from killing the worker
func (d *Dispatcher) run(userID int64, task func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("Panic in task for user %d: %v", userID, r)
		}
	}()
	task()
}

// Stop rejects new tasks, finishes already-enqueued ones, and waits for
// all workers to exit
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
