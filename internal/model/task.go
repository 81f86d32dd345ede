package model

import (
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	StatusPostponed  TaskStatus = "POSTPONED"
)

// BoardColumns is the fixed kanban column order.
var BoardColumns = []TaskStatus{StatusTodo, StatusInProgress, StatusDone, StatusPostponed}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusPostponed:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type TaskCategory string

const (
	CategoryPersonal TaskCategory = "PERSONAL"
	CategoryWork     TaskCategory = "WORK"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "DAILY"
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is a team-scoped to-do item. A task with a non-nil ParentID is a
// subtask and is excluded from every top-level listing; it is only reachable
// through an explicit per-parent query.
type Task struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	TeamID         int64           `json:"team_id" gorm:"index"`
	OwnerID        int64           `json:"owner_id"`
	AssigneeID     *int64          `json:"assignee_id"`
	ProjectID      *int64          `json:"project_id" gorm:"index"`
	ParentID       *int64          `json:"parent_id" gorm:"index"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         TaskStatus      `json:"status"`
	Priority       TaskPriority    `json:"priority"`
	IsPersonal     bool            `json:"is_personal"`
	Labels         StringList      `json:"labels" gorm:"type:text"`
	Visibility     StringList      `json:"visibility" gorm:"type:text"`
	DueDate        *time.Time      `json:"due_date"`
	Recurrence     *RecurrenceType `json:"recurrence"`
	EstimatedHours *float64        `json:"estimated_hours"`
	SortOrder      int             `json:"sort_order"`
	CompletedAt    *time.Time      `json:"completed_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// Category is derived from the personal flag, never stored.
func (t *Task) Category() TaskCategory {
	if t.IsPersonal {
		return CategoryPersonal
	}
	return CategoryWork
}

// ApplyCompletion keeps the completed_at invariant: completed_at is set
// exactly when status is DONE and cleared otherwise.
func (t *Task) ApplyCompletion(now time.Time) {
	if t.Status == StatusDone {
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
		return
	}
	t.CompletedAt = nil
}

// HasAnyLabel reports whether the task carries at least one of the given
// labels (array-overlap semantics).
func (t *Task) HasAnyLabel(labels []string) bool {
	if len(labels) == 0 {
		return true
	}
	for _, want := range labels {
		for _, have := range t.Labels {
			if have == want {
				return true
			}
		}
	}
	return false
}

// TaskRecord is a Task joined with display names of its references, the shape
// returned by the list query.
type TaskRecord struct {
	Task
	ProjectName  string `json:"project_name"`
	OwnerName    string `json:"owner_name"`
	AssigneeName string `json:"assignee_name"`
}

// SuggestedLabels is the suggested tag vocabulary; tasks may carry labels
// outside of it.
var SuggestedLabels = []string{"Bug", "Feature", "Design", "Admin", "Billing", "Meeting", "Research"}
