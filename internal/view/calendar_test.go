package view

import (
	"testing"
	"time"

	"github.com/solodesk/solodesk/internal/model"
)

func due(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func calRec(status model.TaskStatus, prio model.TaskPriority, d *time.Time) *model.TaskRecord {
	return &model.TaskRecord{Task: model.Task{Status: status, Priority: prio, DueDate: d}}
}

func TestCalendarMarks(t *testing.T) {
	tasks := []*model.TaskRecord{
		// 3rd: everything done
		calRec(model.StatusDone, model.PriorityHigh, due(2025, 3, 3)),
		calRec(model.StatusDone, model.PriorityLow, due(2025, 3, 3)),
		// 4th: open high-priority present
		calRec(model.StatusTodo, model.PriorityHigh, due(2025, 3, 4)),
		calRec(model.StatusDone, model.PriorityLow, due(2025, 3, 4)),
		// 5th: only ordinary open tasks
		calRec(model.StatusTodo, model.PriorityMedium, due(2025, 3, 5)),
		// undated tasks never appear
		calRec(model.StatusTodo, model.PriorityHigh, nil),
	}
	marks := CalendarMarks(tasks)
	if len(marks) != 3 {
		t.Fatalf("marked days = %d", len(marks))
	}
	if marks["2025-03-03"] != MarkAllDone {
		t.Fatalf("3rd = %s", marks["2025-03-03"])
	}
	if marks["2025-03-04"] != MarkUrgent {
		t.Fatalf("4th = %s", marks["2025-03-04"])
	}
	if marks["2025-03-05"] != MarkHasTasks {
		t.Fatalf("5th = %s", marks["2025-03-05"])
	}
}

func TestTasksOn(t *testing.T) {
	tasks := []*model.TaskRecord{
		calRec(model.StatusTodo, model.PriorityLow, due(2025, 3, 4)),
		calRec(model.StatusTodo, model.PriorityLow, due(2025, 3, 5)),
		calRec(model.StatusTodo, model.PriorityLow, nil),
	}
	got := TasksOn(tasks, time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC))
	if len(got) != 1 {
		t.Fatalf("tasks on 3/4 = %d", len(got))
	}
	if got := TasksOn(tasks, time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)); len(got) != 0 {
		t.Fatalf("empty day should yield empty slice, got %d", len(got))
	}
}
