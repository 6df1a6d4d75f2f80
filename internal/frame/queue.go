package frame

import (
	"sort"
	"sync"
	"time"
)

// Queue is a requestAnimationFrame-style scheduler. Callers register one-shot
// callbacks with RequestFrame; the platform driver calls Fire once per display
// frame, which runs every callback registered before that Fire began.
// Callbacks requested during Fire wait for the next one.
type Queue struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]func(now time.Time)
}

// NewQueue creates an empty frame queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[uint64]func(time.Time))}
}

// RequestFrame schedules fn for the next Fire and returns a handle for CancelFrame.
// Handles start at 1 so callers can use 0 as "nothing scheduled".
func (q *Queue) RequestFrame(fn func(now time.Time)) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending[q.nextID] = fn
	return q.nextID
}

// CancelFrame removes a scheduled callback. Unknown handles are ignored.
func (q *Queue) CancelFrame(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
}

// Pending reports whether any callback waits for the next frame.
// Drivers stop pumping frames while nothing is pending.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) > 0
}

// Fire runs the callbacks scheduled so far in request order and returns how many ran.
// A callback cancelled by an earlier callback in the same Fire does not run.
func (q *Queue) Fire(now time.Time) int {
	q.mu.Lock()
	ids := make([]uint64, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	q.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		ran++
	}
	return ran
}
