// Package events decouples task mutations from the surfaces that consume
// task counts. Mutation handlers publish a TasksChanged event; each dependent
// view (dashboard stats, sidebar badge) subscribes and refetches on its own,
// instead of the mutation handler invalidating every consumer it knows about.
package events

import (
	"context"
	"sync"

	"github.com/solodesk/solodesk/internal/logging"
)

// TasksChanged is emitted after any successful task mutation, single or bulk.
type TasksChanged struct {
	TeamID int64
}

type Handler func(ctx context.Context, e TasksChanged)

// Bus is a synchronous in-process publish/subscribe fan-out. Dispatch order
// follows subscription order; a panicking handler is recovered and logged so
// one consumer cannot break the others.
type Bus struct {
	mu   sync.RWMutex
	subs []Handler
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, h)
	b.mu.Unlock()
}

func (b *Bus) Publish(ctx context.Context, e TasksChanged) {
	b.mu.RLock()
	subs := make([]Handler, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, h := range subs {
		dispatch(ctx, h, e)
	}
}

func dispatch(ctx context.Context, h Handler, e TasksChanged) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf(ctx, "events: handler panic: %v", r)
		}
	}()
	h(ctx, e)
}
