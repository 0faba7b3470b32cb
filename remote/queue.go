package remote

import (
	"io"
	"sync"

	"ebiten-platformer/logging"
)

// Queue buffers commands pushed from any goroutine until the simulation drains them
type Queue struct {
	mu      sync.Mutex
	pending []Command
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a command. Safe for concurrent use.
func (q *Queue) Push(cmd Command) {
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Len returns the number of pending commands
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain applies every pending command in arrival order and returns how many
// were applied successfully. Failed commands are logged and dropped.
func (q *Queue) Drain(a *Applier, logger logging.Logger) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	applied := 0
	for _, cmd := range batch {
		if _, err := a.Apply(cmd); err != nil {
			logger.Warn("remote command failed", "op", cmd.Op, "error", err)
			continue
		}
		applied++
	}
	return applied
}

// Feed streams commands from r into the queue until EOF. It is meant to run
// on its own goroutine.
func (q *Queue) Feed(r io.Reader) error {
	return Stream(r, func(cmd Command) error {
		q.Push(cmd)
		return nil
	})
}
