package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/events"
	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/model"
)

// TaskService owns the task read policy and every task mutation. Reads
// degrade: a store failure is logged and surfaces as an empty result or
// all-zero stats, never as an error to the caller. Writes return errors;
// every successful mutation publishes a TasksChanged event.
type TaskService struct {
	tasks dao.TaskDao
	bus   *events.Bus
}

func NewTaskService(tasks dao.TaskDao, bus *events.Bus) *TaskService {
	return &TaskService{tasks: tasks, bus: bus}
}

// List executes the filter specification under the caller's scope. Store
// errors degrade to an empty set.
func (s *TaskService) List(ctx context.Context, scope model.TaskScope, f *model.TaskFilters) []*model.TaskRecord {
	rows, err := s.tasks.List(ctx, scope, f)
	if err != nil {
		logging.Error(ctx, "task list query failed", zap.Int64("team_id", scope.TeamID), zap.Error(err))
		return []*model.TaskRecord{}
	}
	if rows == nil {
		rows = []*model.TaskRecord{}
	}
	return rows
}

func (s *TaskService) Get(ctx context.Context, teamID, id int64) (*model.Task, error) {
	return s.tasks.Get(ctx, teamID, id)
}

// Subtasks is the only read that returns tasks with a parent reference.
func (s *TaskService) Subtasks(ctx context.Context, teamID, parentID int64) []*model.Task {
	list, err := s.tasks.ListSubtasks(ctx, teamID, parentID)
	if err != nil {
		logging.Error(ctx, "subtask query failed", zap.Int64("parent_id", parentID), zap.Error(err))
		return []*model.Task{}
	}
	if list == nil {
		list = []*model.Task{}
	}
	return list
}

// StatsAt recomputes statistics from the caller's full top-level task set.
// A store failure yields all zeros.
func (s *TaskService) StatsAt(ctx context.Context, teamID int64, today time.Time) model.TaskStats {
	list, err := s.tasks.ListTopLevel(ctx, teamID)
	if err != nil {
		logging.Error(ctx, "task stats query failed", zap.Int64("team_id", teamID), zap.Error(err))
		return model.ZeroStats()
	}
	return model.ComputeStats(list, today)
}

func (s *TaskService) Stats(ctx context.Context, teamID int64) model.TaskStats {
	return s.StatsAt(ctx, teamID, time.Now())
}

// CreateTaskInput is the flat field set accepted by create. Labels and
// visibility arrive as comma-separated strings and are parsed here.
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         model.TaskStatus
	Priority       model.TaskPriority
	IsPersonal     bool
	ProjectID      *int64
	ParentID       *int64
	AssigneeID     *int64
	DueDate        *time.Time
	Recurrence     *model.RecurrenceType
	EstimatedHours *float64
	SortOrder      int
	LabelsCSV      string
	VisibilityCSV  string
}

func (s *TaskService) Create(ctx context.Context, scope model.TaskScope, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, model.ErrInvalidArgument
	}
	status := in.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !status.Valid() {
		return nil, model.ErrInvalidArgument
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, model.ErrInvalidArgument
	}
	if in.Recurrence != nil && !in.Recurrence.Valid() {
		return nil, model.ErrInvalidArgument
	}

	t := &model.Task{
		TeamID:         scope.TeamID,
		OwnerID:        scope.UserID,
		AssigneeID:     in.AssigneeID,
		ProjectID:      in.ProjectID,
		ParentID:       in.ParentID,
		Title:          title,
		Description:    in.Description,
		Status:         status,
		Priority:       priority,
		IsPersonal:     in.IsPersonal,
		Labels:         model.SplitList(in.LabelsCSV),
		Visibility:     model.SplitList(in.VisibilityCSV),
		DueDate:        in.DueDate,
		Recurrence:     in.Recurrence,
		EstimatedHours: in.EstimatedHours,
		SortOrder:      in.SortOrder,
	}
	t.ApplyCompletion(time.Now())
	if err := s.tasks.Create(ctx, t); err != nil {
		logging.Error(ctx, "task create failed", zap.Error(err))
		return nil, err
	}
	s.publish(ctx, scope.TeamID)
	return t, nil
}

// QuickAdd is the board column affordance: title plus a column status, every
// other field at its default.
func (s *TaskService) QuickAdd(ctx context.Context, scope model.TaskScope, title string, status model.TaskStatus) (*model.Task, error) {
	return s.Create(ctx, scope, CreateTaskInput{Title: title, Status: status})
}

// TaskPatch is a partial update; nil means field unchanged. ClearDueDate
// removes an existing due date.
type TaskPatch struct {
	Title          *string
	Description    *string
	Status         *model.TaskStatus
	Priority       *model.TaskPriority
	IsPersonal     *bool
	ProjectID      *int64
	AssigneeID     *int64
	DueDate        *time.Time
	ClearDueDate   bool
	Recurrence     *model.RecurrenceType
	EstimatedHours *float64
	SortOrder      *int
	LabelsCSV      *string
	VisibilityCSV  *string
}

func (p *TaskPatch) updates(now time.Time) (map[string]any, error) {
	u := map[string]any{}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, model.ErrInvalidArgument
		}
		u["title"] = title
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, model.ErrInvalidArgument
		}
		u["status"] = *p.Status
		// completed_at tracks the DONE transition in the same write; a task
		// already DONE keeps its original stamp
		if *p.Status == model.StatusDone {
			u["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", now)
		} else {
			u["completed_at"] = nil
		}
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return nil, model.ErrInvalidArgument
		}
		u["priority"] = *p.Priority
	}
	if p.IsPersonal != nil {
		u["is_personal"] = *p.IsPersonal
	}
	if p.ProjectID != nil {
		u["project_id"] = *p.ProjectID
	}
	if p.AssigneeID != nil {
		u["assignee_id"] = *p.AssigneeID
	}
	if p.ClearDueDate {
		u["due_date"] = nil
	} else if p.DueDate != nil {
		u["due_date"] = *p.DueDate
	}
	if p.Recurrence != nil {
		if !p.Recurrence.Valid() {
			return nil, model.ErrInvalidArgument
		}
		u["recurrence"] = *p.Recurrence
	}
	if p.EstimatedHours != nil {
		u["estimated_hours"] = *p.EstimatedHours
	}
	if p.SortOrder != nil {
		u["sort_order"] = *p.SortOrder
	}
	if p.LabelsCSV != nil {
		v, err := model.SplitList(*p.LabelsCSV).Value()
		if err != nil {
			return nil, err
		}
		u["labels"] = v
	}
	if p.VisibilityCSV != nil {
		v, err := model.SplitList(*p.VisibilityCSV).Value()
		if err != nil {
			return nil, err
		}
		u["visibility"] = v
	}
	return u, nil
}

// Update applies a partial field set to one task. model.ErrNotFound means the
// id did not resolve to a row the write could touch.
func (s *TaskService) Update(ctx context.Context, scope model.TaskScope, id int64, p TaskPatch) error {
	u, err := p.updates(time.Now())
	if err != nil {
		return err
	}
	if len(u) == 0 {
		return nil
	}
	if err := s.tasks.Update(ctx, scope.TeamID, id, u); err != nil {
		if err != model.ErrNotFound {
			logging.Error(ctx, "task update failed", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}
	s.publish(ctx, scope.TeamID)
	return nil
}

// Move persists a board drag: new status column and manual position, with the
// same completed_at bookkeeping as any other status change.
func (s *TaskService) Move(ctx context.Context, scope model.TaskScope, id int64, status model.TaskStatus, sortOrder int) error {
	if !status.Valid() {
		return model.ErrInvalidArgument
	}
	return s.Update(ctx, scope, id, TaskPatch{Status: &status, SortOrder: &sortOrder})
}

func (s *TaskService) Delete(ctx context.Context, scope model.TaskScope, id int64) error {
	if err := s.tasks.Delete(ctx, scope.TeamID, id); err != nil {
		if err != model.ErrNotFound {
			logging.Error(ctx, "task delete failed", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}
	s.publish(ctx, scope.TeamID)
	return nil
}

// BulkUpdate applies one patch across the id set in a single batched write.
// There is no per-id reporting: the batch succeeds or fails as one.
func (s *TaskService) BulkUpdate(ctx context.Context, scope model.TaskScope, ids []int64, p TaskPatch) error {
	if len(ids) == 0 {
		return nil
	}
	u, err := p.updates(time.Now())
	if err != nil {
		return err
	}
	if len(u) == 0 {
		return nil
	}
	if err := s.tasks.UpdateMany(ctx, scope.TeamID, ids, u); err != nil {
		logging.Error(ctx, "task bulk update failed", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	s.publish(ctx, scope.TeamID)
	return nil
}

func (s *TaskService) BulkDelete(ctx context.Context, scope model.TaskScope, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.tasks.DeleteMany(ctx, scope.TeamID, ids); err != nil {
		logging.Error(ctx, "task bulk delete failed", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	s.publish(ctx, scope.TeamID)
	return nil
}

func (s *TaskService) publish(ctx context.Context, teamID int64) {
	if s.bus != nil {
		s.bus.Publish(ctx, events.TasksChanged{TeamID: teamID})
	}
}
