package model

import (
	"testing"
	"time"
)

func TestApplyCompletion(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	task := &Task{Status: StatusDone}
	task.ApplyCompletion(now)
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("done task should get completed_at=now, got %v", task.CompletedAt)
	}

	// completing an already-complete task keeps the original stamp
	earlier := now.Add(-time.Hour)
	task = &Task{Status: StatusDone, CompletedAt: &earlier}
	task.ApplyCompletion(now)
	if !task.CompletedAt.Equal(earlier) {
		t.Fatalf("existing completed_at should be preserved, got %v", task.CompletedAt)
	}

	// leaving DONE clears the stamp
	task = &Task{Status: StatusInProgress, CompletedAt: &earlier}
	task.ApplyCompletion(now)
	if task.CompletedAt != nil {
		t.Fatalf("non-done task should have nil completed_at, got %v", task.CompletedAt)
	}
}

func TestCategory(t *testing.T) {
	if (&Task{IsPersonal: true}).Category() != CategoryPersonal {
		t.Fatal("personal flag should yield PERSONAL")
	}
	if (&Task{}).Category() != CategoryWork {
		t.Fatal("default category should be WORK")
	}
}

func TestHasAnyLabel(t *testing.T) {
	task := &Task{Labels: StringList{"Bug", "Billing"}}
	if !task.HasAnyLabel(nil) {
		t.Fatal("empty wanted set matches everything")
	}
	if !task.HasAnyLabel([]string{"Design", "Billing"}) {
		t.Fatal("overlap on Billing should match")
	}
	if task.HasAnyLabel([]string{"Design", "Meeting"}) {
		t.Fatal("no overlap should not match")
	}
}
