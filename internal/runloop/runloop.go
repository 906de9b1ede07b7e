// Package runloop provides the single-threaded task queue that hosts widgets.
//
// Widgets never run concurrently with each other. Everything that touches a
// widget is either called directly on the loop goroutine or handed to the
// loop as a Task. Schedule is the "after the current render pass" primitive:
// the task is queued behind whatever is running now and never runs inline.
package runloop

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/buttongroup/internal/logging"
)

var (
	// ErrLoopClosed is returned by Post after Close.
	ErrLoopClosed = errors.New("run loop is closed")

	// ErrAlreadyRunning is returned when Run is called twice concurrently.
	ErrAlreadyRunning = errors.New("run loop is already running")
)

// Task is a unit of work executed on the loop.
type Task = func()

// Loop is a FIFO task queue drained by a single goroutine.
type Loop struct {
	mu     sync.Mutex
	queue  []Task
	closed bool

	wake chan struct{}
	done chan struct{}

	running atomic.Bool
	ran     atomic.Uint64
	panics  atomic.Uint64

	logger *logging.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used to report task panics.
func WithLogger(l *logging.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithQueueSize preallocates room for n pending tasks.
func WithQueueSize(n int) Option {
	return func(lp *Loop) {
		if n > 0 {
			lp.queue = make([]Task, 0, n)
		}
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithComponent("runloop")
	return l
}

// Schedule queues task to run after the current synchronous phase.
// Tasks scheduled after Close are dropped.
func (l *Loop) Schedule(task Task) {
	if err := l.Post(task); err != nil {
		l.logger.Debug("dropped task: %v", err)
	}
}

// Post queues task and wakes the loop. It is safe to call from any goroutine.
func (l *Loop) Post(task Task) error {
	if task == nil {
		return nil
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Flush runs queued tasks in FIFO order until the queue is empty, including
// tasks queued by the tasks it runs. It returns the number of tasks run.
// Flush must not be called while Run is active on another goroutine.
func (l *Loop) Flush() int {
	n := 0
	for {
		task, ok := l.next()
		if !ok {
			return n
		}
		l.runTask(task)
		n++
	}
}

func (l *Loop) next() (Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true
}

func (l *Loop) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			l.panics.Add(1)
			l.logger.Error("task panicked: %v\n%s", r, debug.Stack())
		}
	}()
	task()
	l.ran.Add(1)
}

// Run drains the queue on the calling goroutine until ctx is done or Close
// is called. Tasks still queued at that point are left unrun.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	for {
		l.Flush()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

// Close stops Run and rejects further tasks. It is safe to call repeatedly.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
}

// Stats reports how many tasks have run and how many panicked.
func (l *Loop) Stats() (ran, panicked uint64) {
	return l.ran.Load(), l.panics.Load()
}
