package service

import (
	"context"
	"sync"

	"github.com/solodesk/solodesk/internal/events"
)

// BadgeCounter maintains the sidebar badge (open task count) per team. It
// subscribes to TasksChanged and refetches on its own, so mutation handlers
// never know it exists.
type BadgeCounter struct {
	tasks *TaskService

	mu     sync.RWMutex
	counts map[int64]int
}

func NewBadgeCounter(tasks *TaskService, bus *events.Bus) *BadgeCounter {
	b := &BadgeCounter{tasks: tasks, counts: make(map[int64]int)}
	bus.Subscribe(b.onTasksChanged)
	return b
}

func (b *BadgeCounter) onTasksChanged(ctx context.Context, e events.TasksChanged) {
	b.refresh(ctx, e.TeamID)
}

func (b *BadgeCounter) refresh(ctx context.Context, teamID int64) int {
	stats := b.tasks.Stats(ctx, teamID)
	open := stats.Total - stats.Completed
	b.mu.Lock()
	b.counts[teamID] = open
	b.mu.Unlock()
	return open
}

// Count returns the cached badge value, computing it on first access.
func (b *BadgeCounter) Count(ctx context.Context, teamID int64) int {
	b.mu.RLock()
	n, ok := b.counts[teamID]
	b.mu.RUnlock()
	if ok {
		return n
	}
	return b.refresh(ctx, teamID)
}
