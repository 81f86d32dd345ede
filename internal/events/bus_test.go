package events

import (
	"context"
	"testing"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	var order []int
	bus.Subscribe(func(_ context.Context, e TasksChanged) {
		if e.TeamID != 7 {
			t.Fatalf("team id = %d", e.TeamID)
		}
		order = append(order, 1)
	})
	bus.Subscribe(func(context.Context, TasksChanged) { order = append(order, 2) })

	bus.Publish(context.Background(), TasksChanged{TeamID: 7})
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("dispatch order = %v", order)
	}
}

func TestBusRecoversPanickingHandler(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe(func(context.Context, TasksChanged) { panic("boom") })
	bus.Subscribe(func(context.Context, TasksChanged) { called = true })

	bus.Publish(context.Background(), TasksChanged{TeamID: 1})
	if !called {
		t.Fatal("second handler should still run after a panic")
	}
}

func TestBusIgnoresNilHandler(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(nil)
	bus.Publish(context.Background(), TasksChanged{TeamID: 1})
}
