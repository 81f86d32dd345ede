package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/model"
)

type TaskDao interface {
	Create(ctx context.Context, t *model.Task) error
	Get(ctx context.Context, teamID, id int64) (*model.Task, error)
	List(ctx context.Context, scope model.TaskScope, f *model.TaskFilters) ([]*model.TaskRecord, error)
	ListTopLevel(ctx context.Context, teamID int64) ([]*model.Task, error)
	ListSubtasks(ctx context.Context, teamID, parentID int64) ([]*model.Task, error)
	ListDueBetween(ctx context.Context, teamID int64, from, to time.Time, limit int) ([]*model.Task, error)
	Update(ctx context.Context, teamID, id int64, updates map[string]any) error
	UpdateMany(ctx context.Context, teamID int64, ids []int64, updates map[string]any) error
	Delete(ctx context.Context, teamID, id int64) error
	DeleteMany(ctx context.Context, teamID int64, ids []int64) error
}

type taskDaoImpl struct{ db *gorm.DB }

func NewTaskDao(db *gorm.DB) TaskDao { return &taskDaoImpl{db: db} }

func (d *taskDaoImpl) Create(ctx context.Context, t *model.Task) error {
	return d.db.WithContext(ctx).Create(t).Error
}

func (d *taskDaoImpl) Get(ctx context.Context, teamID, id int64) (*model.Task, error) {
	var t model.Task
	err := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const taskRecordSelect = "tasks.*, " +
	"COALESCE(projects.name, '') AS project_name, " +
	"COALESCE(owners.name, '') AS owner_name, " +
	"COALESCE(assignees.name, '') AS assignee_name"

// List executes the filter specification as a single read. Scope precedence:
// an explicit project lists ALL tasks of that project regardless of the
// caller's team; otherwise the caller's active team. Subtasks are always
// excluded here and fetched per-parent via ListSubtasks.
func (d *taskDaoImpl) List(ctx context.Context, scope model.TaskScope, f *model.TaskFilters) ([]*model.TaskRecord, error) {
	if f == nil {
		f = &model.TaskFilters{}
	}
	q := d.db.WithContext(ctx).Table("tasks").
		Select(taskRecordSelect).
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Joins("LEFT JOIN users AS owners ON owners.id = tasks.owner_id").
		Joins("LEFT JOIN users AS assignees ON assignees.id = tasks.assignee_id").
		Where("tasks.parent_id IS NULL")

	if f.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *f.ProjectID)
	} else {
		q = q.Where("tasks.team_id = ?", scope.TeamID)
	}
	if f.Status != nil {
		q = q.Where("tasks.status = ?", *f.Status)
	}
	if f.Priority != nil {
		q = q.Where("tasks.priority = ?", *f.Priority)
	}
	if f.Personal != nil {
		q = q.Where("tasks.is_personal = ?", *f.Personal)
	}
	if f.AssigneeID != nil {
		q = q.Where("tasks.assignee_id = ?", *f.AssigneeID)
	}
	if f.DueFrom != nil {
		q = q.Where("tasks.due_date >= ?", model.StartOfDay(*f.DueFrom))
	}
	if f.DueTo != nil {
		// inclusive date-only upper bound
		q = q.Where("tasks.due_date < ?", model.StartOfDay(*f.DueTo).AddDate(0, 0, 1))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pat, pat)
	}

	var rows []*model.TaskRecord
	if err := q.Order(orderClause(f)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(f.Labels) == 0 {
		return rows, nil
	}
	// Label overlap runs post-query: labels live in a JSON text column and
	// neither MySQL 5.7 nor SQLite gives a portable overlap predicate.
	out := rows[:0]
	for _, r := range rows {
		if r.HasAnyLabel(f.Labels) {
			out = append(out, r)
		}
	}
	return out, nil
}

const defaultTaskOrder = "tasks.due_date IS NULL, tasks.due_date ASC, tasks.created_at DESC"

func orderClause(f *model.TaskFilters) string {
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	switch f.SortBy {
	case model.SortManual:
		return "tasks.sort_order ASC"
	case model.SortCreatedAt:
		return "tasks.created_at " + dir
	case model.SortTitle:
		return "tasks.title " + dir + ", tasks.created_at DESC"
	case model.SortDueDate:
		return "tasks.due_date IS NULL, tasks.due_date " + dir + ", tasks.created_at DESC"
	case model.SortPriority:
		// Priority ordering is not implemented; callers requesting it get the
		// due-date default. Kept that way pending product clarification.
		return defaultTaskOrder
	default:
		return defaultTaskOrder
	}
}

// ListTopLevel returns the caller's full team-scoped task set with subtasks
// excluded, the input of the stats aggregator.
func (d *taskDaoImpl) ListTopLevel(ctx context.Context, teamID int64) ([]*model.Task, error) {
	var list []*model.Task
	err := d.db.WithContext(ctx).
		Where("team_id = ? AND parent_id IS NULL", teamID).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (d *taskDaoImpl) ListSubtasks(ctx context.Context, teamID, parentID int64) ([]*model.Task, error) {
	var list []*model.Task
	err := d.db.WithContext(ctx).
		Where("team_id = ? AND parent_id = ?", teamID, parentID).
		Order("sort_order ASC, created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListDueBetween feeds the upcoming-task reminder source: incomplete
// top-level tasks due inside [from, to], soonest first.
func (d *taskDaoImpl) ListDueBetween(ctx context.Context, teamID int64, from, to time.Time, limit int) ([]*model.Task, error) {
	var list []*model.Task
	q := d.db.WithContext(ctx).
		Where("team_id = ? AND parent_id IS NULL AND status <> ?", teamID, model.StatusDone).
		Where("due_date >= ? AND due_date < ?", model.StartOfDay(from), model.StartOfDay(to).AddDate(0, 0, 1)).
		Order("due_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (d *taskDaoImpl) Update(ctx context.Context, teamID, id int64, updates map[string]any) error {
	res := d.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND team_id = ?", id, teamID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// UpdateMany applies one patch to the whole id set in a single batched write;
// there is no per-id success reporting.
func (d *taskDaoImpl) UpdateMany(ctx context.Context, teamID int64, ids []int64, updates map[string]any) error {
	if len(ids) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).Model(&model.Task{}).
		Where("id IN ? AND team_id = ?", ids, teamID).
		Updates(updates).Error
}

// Delete is physical removal; there is no soft-delete for tasks.
func (d *taskDaoImpl) Delete(ctx context.Context, teamID, id int64) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", id, teamID).
		Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (d *taskDaoImpl) DeleteMany(ctx context.Context, teamID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).
		Where("id IN ? AND team_id = ?", ids, teamID).
		Delete(&model.Task{}).Error
}
