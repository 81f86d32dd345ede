package model

import "time"

// TaskStats is recomputed from the caller's full top-level task set on every
// request; nothing here is persisted.
type TaskStats struct {
	Total      int                  `json:"total"`
	Completed  int                  `json:"completed"`
	Overdue    int                  `json:"overdue"`
	DueToday   int                  `json:"due_today"`
	InProgress int                  `json:"in_progress"`
	ByPriority map[TaskPriority]int `json:"by_priority"`
	ByStatus   map[TaskStatus]int   `json:"by_status"`
}

// ZeroStats returns an all-zero result with every breakdown key present, the
// degraded value returned when the store read fails.
func ZeroStats() TaskStats {
	s := TaskStats{
		ByPriority: make(map[TaskPriority]int, len(Priorities)),
		ByStatus:   make(map[TaskStatus]int, len(BoardColumns)),
	}
	for _, p := range Priorities {
		s.ByPriority[p] = 0
	}
	for _, st := range BoardColumns {
		s.ByStatus[st] = 0
	}
	return s
}

// ComputeStats aggregates the task set in a single pass. "today" is a
// date-only comparison against the ISO date string, not a timestamp.
func ComputeStats(tasks []*Task, today time.Time) TaskStats {
	s := ZeroStats()
	todayISO := DateOnly(today)
	for _, t := range tasks {
		s.Total++
		if t.Status == StatusDone {
			s.Completed++
		}
		if t.Status == StatusInProgress {
			s.InProgress++
		}
		if t.DueDate != nil {
			due := DateOnly(*t.DueDate)
			if due < todayISO && t.Status != StatusDone {
				s.Overdue++
			}
			if due == todayISO {
				s.DueToday++
			}
		}
		s.ByPriority[t.Priority]++
		s.ByStatus[t.Status]++
	}
	return s
}
