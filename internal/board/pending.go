// Package board tracks optimistic kanban moves. A drag applies its status
// change to the in-memory view immediately, then persists in the background;
// each move is a tracked pending operation per task id, and a persistence
// failure rolls the optimistic change back and notifies the caller instead
// of leaving the view silently diverged.
package board

import (
	"context"
	"sync"

	"github.com/solodesk/solodesk/internal/model"
)

// Persister commits a move to the store.
type Persister interface {
	PersistMove(ctx context.Context, taskID int64, to model.TaskStatus, sortOrder int) error
}

// PersistFunc adapts a function to Persister.
type PersistFunc func(ctx context.Context, taskID int64, to model.TaskStatus, sortOrder int) error

func (f PersistFunc) PersistMove(ctx context.Context, taskID int64, to model.TaskStatus, sortOrder int) error {
	return f(ctx, taskID, to, sortOrder)
}

// Notifier receives the outcome of each reconciled move; the API layer turns
// failures into an error toast.
type Notifier func(taskID int64, from, to model.TaskStatus, err error)

type operation struct {
	ctx       context.Context
	from, to  model.TaskStatus
	sortOrder int
	result    chan error
}

// Manager is the pending-operation queue. Moves for the same task are
// serialized in arrival order; moves for different tasks run independently.
type Manager struct {
	persist Persister
	notify  Notifier

	mu       sync.Mutex
	statuses map[int64]model.TaskStatus
	pending  map[int64][]*operation
	running  map[int64]bool
	wg       sync.WaitGroup
}

func NewManager(persist Persister, notify Notifier) *Manager {
	return &Manager{
		persist:  persist,
		notify:   notify,
		statuses: make(map[int64]model.TaskStatus),
		pending:  make(map[int64][]*operation),
		running:  make(map[int64]bool),
	}
}

// Load seeds the optimistic view state from a fresh read. Tasks with a move
// still in flight keep their optimistic status; tracked tasks absent from the
// read with nothing pending are evicted, so the map never outgrows the board.
func (m *Manager) Load(tasks []*model.TaskRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make(map[int64]model.TaskStatus, len(tasks))
	for id, s := range m.statuses {
		if len(m.pending[id]) > 0 {
			next[id] = s
		}
	}
	for _, t := range tasks {
		if _, ok := next[t.ID]; !ok {
			next[t.ID] = t.Status
		}
	}
	m.statuses = next
}

// Status returns the task's status as the view currently shows it, including
// not-yet-persisted moves.
func (m *Manager) Status(taskID int64) (model.TaskStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[taskID]
	return s, ok
}

// Overlay rewrites a fresh read with any optimistic statuses still pending.
func (m *Manager) Overlay(tasks []*model.TaskRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		if len(m.pending[t.ID]) > 0 {
			t.Status = m.statuses[t.ID]
		}
	}
}

// Pending reports whether the task has unreconciled moves.
func (m *Manager) Pending(taskID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending[taskID]) > 0
}

// Move applies the status change optimistically and enqueues persistence.
// The returned channel yields the persistence outcome exactly once; callers
// that do not care may discard it, the rollback and notification still run.
func (m *Manager) Move(ctx context.Context, taskID int64, to model.TaskStatus, sortOrder int) <-chan error {
	op := &operation{ctx: ctx, to: to, sortOrder: sortOrder, result: make(chan error, 1)}

	m.mu.Lock()
	from, ok := m.statuses[taskID]
	if !ok {
		from = to
	}
	op.from = from
	m.statuses[taskID] = to
	m.pending[taskID] = append(m.pending[taskID], op)
	start := !m.running[taskID]
	if start {
		m.running[taskID] = true
		m.wg.Add(1)
	}
	m.mu.Unlock()

	if start {
		go m.run(taskID)
	}
	return op.result
}

// run drains the task's queue in order, reconciling each operation.
func (m *Manager) run(taskID int64) {
	defer m.wg.Done()
	for {
		m.mu.Lock()
		queue := m.pending[taskID]
		if len(queue) == 0 {
			delete(m.pending, taskID)
			m.running[taskID] = false
			m.mu.Unlock()
			return
		}
		op := queue[0]
		m.mu.Unlock()

		err := m.persist.PersistMove(op.ctx, taskID, op.to, op.sortOrder)

		m.mu.Lock()
		m.pending[taskID] = m.pending[taskID][1:]
		// roll back only when this was the last word on the task and the view
		// still shows the failed move
		if err != nil && len(m.pending[taskID]) == 0 && m.statuses[taskID] == op.to {
			m.statuses[taskID] = op.from
		}
		m.mu.Unlock()

		if m.notify != nil {
			m.notify(taskID, op.from, op.to, err)
		}
		op.result <- err
	}
}

// Wait blocks until every pending operation has been reconciled.
func (m *Manager) Wait() { m.wg.Wait() }
