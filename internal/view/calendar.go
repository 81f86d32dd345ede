package view

import (
	"time"

	"github.com/solodesk/solodesk/internal/model"
)

type DayMark string

const (
	MarkHasTasks DayMark = "has_tasks"
	MarkUrgent   DayMark = "urgent"    // an incomplete high-priority task is due
	MarkAllDone  DayMark = "all_done"  // every task due that day is completed
)

// CalendarMarks computes one marker per date (ISO date key) that has any
// task. Marker precedence: all-done wins only when every task that day is
// done; otherwise an incomplete high-priority task wins over plain has-tasks.
func CalendarMarks(tasks []*model.TaskRecord) map[string]DayMark {
	type dayState struct {
		total  int
		done   int
		urgent bool
	}
	days := map[string]*dayState{}
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := model.DateOnly(*t.DueDate)
		st := days[key]
		if st == nil {
			st = &dayState{}
			days[key] = st
		}
		st.total++
		if t.Status == model.StatusDone {
			st.done++
		} else if t.Priority == model.PriorityHigh {
			st.urgent = true
		}
	}
	out := make(map[string]DayMark, len(days))
	for key, st := range days {
		switch {
		case st.done == st.total:
			out[key] = MarkAllDone
		case st.urgent:
			out[key] = MarkUrgent
		default:
			out[key] = MarkHasTasks
		}
	}
	return out
}

// TasksOn filters to tasks due exactly on the selected date (date-level
// equality, not a range).
func TasksOn(tasks []*model.TaskRecord, date time.Time) []*model.TaskRecord {
	key := model.DateOnly(date)
	out := []*model.TaskRecord{}
	for _, t := range tasks {
		if t.DueDate != nil && model.DateOnly(*t.DueDate) == key {
			out = append(out, t)
		}
	}
	return out
}
