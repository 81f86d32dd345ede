package board

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/solodesk/solodesk/internal/model"
)

// blockingPersister parks every PersistMove call until released. errs is
// consumed one entry per call; calls past its end succeed.
type blockingPersister struct {
	release chan struct{}
	errs    []error

	mu    sync.Mutex
	calls []model.TaskStatus
}

func (p *blockingPersister) PersistMove(_ context.Context, _ int64, to model.TaskStatus, _ int) error {
	<-p.release
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, to)
	if n := len(p.calls); n <= len(p.errs) {
		return p.errs[n-1]
	}
	return nil
}

func seeded(p Persister, notify Notifier) *Manager {
	m := NewManager(p, notify)
	m.Load([]*model.TaskRecord{{Task: model.Task{ID: 1, Status: model.StatusTodo}}})
	return m
}

func TestMoveIsOptimistic(t *testing.T) {
	p := &blockingPersister{release: make(chan struct{})}
	m := seeded(p, nil)

	res := m.Move(context.Background(), 1, model.StatusInProgress, 0)

	// status flips before persistence resolves
	if s, _ := m.Status(1); s != model.StatusInProgress {
		t.Fatalf("status = %s before persist finished", s)
	}
	if !m.Pending(1) {
		t.Fatal("move should be pending")
	}

	close(p.release)
	if err := <-res; err != nil {
		t.Fatalf("persist: %v", err)
	}
	if m.Pending(1) {
		t.Fatal("queue should drain after persist")
	}
	if s, _ := m.Status(1); s != model.StatusInProgress {
		t.Fatalf("status = %s after success", s)
	}
}

func TestMoveRollsBackOnFailure(t *testing.T) {
	p := &blockingPersister{release: make(chan struct{}), errs: []error{errors.New("db down")}}
	var notified error
	m := seeded(p, func(_ int64, _, _ model.TaskStatus, err error) { notified = err })

	res := m.Move(context.Background(), 1, model.StatusDone, 0)
	close(p.release)
	if err := <-res; err == nil {
		t.Fatal("expected persist error")
	}
	m.Wait()

	if s, _ := m.Status(1); s != model.StatusTodo {
		t.Fatalf("status = %s, want rollback to TODO", s)
	}
	if notified == nil {
		t.Fatal("notifier should see the failure")
	}
}

func TestMovesForOneTaskAreSerialized(t *testing.T) {
	p := &blockingPersister{release: make(chan struct{})}
	m := seeded(p, nil)

	r1 := m.Move(context.Background(), 1, model.StatusInProgress, 0)
	r2 := m.Move(context.Background(), 1, model.StatusDone, 0)

	// the newest move wins the optimistic view immediately
	if s, _ := m.Status(1); s != model.StatusDone {
		t.Fatalf("status = %s", s)
	}

	close(p.release)
	<-r1
	<-r2
	m.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) != 2 || p.calls[0] != model.StatusInProgress || p.calls[1] != model.StatusDone {
		t.Fatalf("persist order = %v", p.calls)
	}
}

func TestFailedMoveSupersededByLaterMove(t *testing.T) {
	// first move fails but a second is already queued; the rollback must not
	// clobber the newer optimistic status
	p := &blockingPersister{release: make(chan struct{}), errs: []error{errors.New("transient")}}
	m := seeded(p, nil)

	r1 := m.Move(context.Background(), 1, model.StatusInProgress, 0)
	m.Move(context.Background(), 1, model.StatusDone, 0)
	close(p.release)
	<-r1
	m.Wait()

	if s, _ := m.Status(1); s != model.StatusDone {
		t.Fatalf("status = %s, later move should stand", s)
	}
}

func TestLoadEvictsDepartedTasks(t *testing.T) {
	p := &blockingPersister{release: make(chan struct{})}
	m := seeded(p, nil)

	// a fresh read without task 1 drops its entry
	m.Load([]*model.TaskRecord{{Task: model.Task{ID: 2, Status: model.StatusTodo}}})
	if _, ok := m.Status(1); ok {
		t.Fatal("departed task still tracked after reload")
	}

	// a task with a move in flight survives eviction even when the read
	// no longer contains it
	m.Move(context.Background(), 2, model.StatusInProgress, 0)
	m.Load(nil)
	if s, ok := m.Status(2); !ok || s != model.StatusInProgress {
		t.Fatalf("pending task evicted, status = %s", s)
	}

	close(p.release)
	m.Wait()
}

func TestOverlayKeepsPendingStatus(t *testing.T) {
	p := &blockingPersister{release: make(chan struct{})}
	m := seeded(p, nil)
	m.Move(context.Background(), 1, model.StatusInProgress, 0)

	fresh := []*model.TaskRecord{{Task: model.Task{ID: 1, Status: model.StatusTodo}}}
	m.Overlay(fresh)
	if fresh[0].Status != model.StatusInProgress {
		t.Fatalf("overlay left stale status %s", fresh[0].Status)
	}

	close(p.release)
	m.Wait()
}
