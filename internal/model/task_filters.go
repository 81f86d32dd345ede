package model

import "time"

type SortField string

const (
	SortDueDate   SortField = "due_date"
	SortPriority  SortField = "priority"
	SortCreatedAt SortField = "created_at"
	SortTitle     SortField = "title"
	SortManual    SortField = "sort_order"
)

// TaskFilters is the ephemeral filter specification for a task listing.
// Nil pointers / zero values mean the filter is not applied; all applied
// filters are AND-combined.
type TaskFilters struct {
	Status     *TaskStatus
	Priority   *TaskPriority
	ProjectID  *int64 // when set, lists ALL tasks of the project, ignoring team scope
	Personal   *bool
	AssigneeID *int64 // resolved from the "assigned to me" toggle upstream
	DueFrom    *time.Time
	DueTo      *time.Time
	Search     string   // case-insensitive substring over title OR description
	Labels     []string // overlap: at least one label in common
	SortBy     SortField
	SortDesc   bool
}

// TaskScope identifies the authenticated caller's workspace.
type TaskScope struct {
	TeamID int64
	UserID int64
}
