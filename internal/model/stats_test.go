package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeStats(t *testing.T) {
	today := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{Status: StatusDone, Priority: PriorityLow, DueDate: date(2025, 3, 8)},    // done, past due but not overdue
		{Status: StatusDone, Priority: PriorityMedium},
		{Status: StatusDone, Priority: PriorityHigh, DueDate: date(2025, 3, 10)},  // done and due today
		{Status: StatusTodo, Priority: PriorityHigh, DueDate: date(2025, 3, 8)},   // overdue
		{Status: StatusInProgress, Priority: PriorityHigh, DueDate: date(2025, 3, 9)}, // overdue
		{Status: StatusTodo, Priority: PriorityMedium, DueDate: date(2025, 3, 10)}, // due today
		{Status: StatusInProgress, Priority: PriorityMedium},
		{Status: StatusTodo, Priority: PriorityLow, DueDate: date(2025, 3, 20)},
		{Status: StatusPostponed, Priority: PriorityLow},
		{Status: StatusTodo, Priority: PriorityMedium},
	}
	s := ComputeStats(tasks, today)
	if s.Total != 10 {
		t.Fatalf("total = %d", s.Total)
	}
	if s.Completed != 3 {
		t.Fatalf("completed = %d", s.Completed)
	}
	if s.Overdue != 2 {
		t.Fatalf("overdue = %d (done tasks never count)", s.Overdue)
	}
	if s.DueToday != 2 {
		t.Fatalf("due today = %d (status does not matter)", s.DueToday)
	}
	if s.InProgress != 2 {
		t.Fatalf("in progress = %d", s.InProgress)
	}
	if s.ByPriority[PriorityHigh] != 3 || s.ByPriority[PriorityMedium] != 4 || s.ByPriority[PriorityLow] != 3 {
		t.Fatalf("priority breakdown = %v", s.ByPriority)
	}
	if s.ByStatus[StatusTodo] != 4 || s.ByStatus[StatusPostponed] != 1 {
		t.Fatalf("status breakdown = %v", s.ByStatus)
	}
}

func TestZeroStatsHasAllKeys(t *testing.T) {
	s := ZeroStats()
	if len(s.ByPriority) != len(Priorities) {
		t.Fatalf("priority keys = %d", len(s.ByPriority))
	}
	if len(s.ByStatus) != len(BoardColumns) {
		t.Fatalf("status keys = %d", len(s.ByStatus))
	}
}
