package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/solodesk/solodesk/internal/events"
	"github.com/solodesk/solodesk/internal/model"
)

// stubTaskDao is an in-memory TaskDao; fail switches every method to an
// error to exercise the degrade policy.
type stubTaskDao struct {
	nextID  int64
	tasks   map[int64]*model.Task
	updates map[int64]map[string]any
	fail    bool
}

var errStub = errors.New("store unavailable")

func newStubTaskDao() *stubTaskDao {
	return &stubTaskDao{tasks: map[int64]*model.Task{}, updates: map[int64]map[string]any{}}
}

func (s *stubTaskDao) Create(_ context.Context, t *model.Task) error {
	if s.fail {
		return errStub
	}
	s.nextID++
	t.ID = s.nextID
	s.tasks[t.ID] = t
	return nil
}

func (s *stubTaskDao) Get(_ context.Context, teamID, id int64) (*model.Task, error) {
	if s.fail {
		return nil, errStub
	}
	t := s.tasks[id]
	if t == nil || t.TeamID != teamID {
		return nil, model.ErrNotFound
	}
	return t, nil
}

func (s *stubTaskDao) List(_ context.Context, scope model.TaskScope, _ *model.TaskFilters) ([]*model.TaskRecord, error) {
	if s.fail {
		return nil, errStub
	}
	var out []*model.TaskRecord
	for _, t := range s.tasks {
		if t.TeamID == scope.TeamID && t.ParentID == nil {
			out = append(out, &model.TaskRecord{Task: *t})
		}
	}
	return out, nil
}

func (s *stubTaskDao) ListTopLevel(_ context.Context, teamID int64) ([]*model.Task, error) {
	if s.fail {
		return nil, errStub
	}
	var out []*model.Task
	for _, t := range s.tasks {
		if t.TeamID == teamID && t.ParentID == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTaskDao) ListSubtasks(_ context.Context, teamID, parentID int64) ([]*model.Task, error) {
	if s.fail {
		return nil, errStub
	}
	var out []*model.Task
	for _, t := range s.tasks {
		if t.TeamID == teamID && t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTaskDao) ListDueBetween(_ context.Context, teamID int64, from, to time.Time, limit int) ([]*model.Task, error) {
	if s.fail {
		return nil, errStub
	}
	var out []*model.Task
	for _, t := range s.tasks {
		if t.TeamID != teamID || t.DueDate == nil || t.Status == model.StatusDone {
			continue
		}
		if !t.DueDate.Before(model.StartOfDay(from)) && t.DueDate.Before(model.StartOfDay(to).AddDate(0, 0, 1)) {
			out = append(out, t)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubTaskDao) Update(_ context.Context, teamID, id int64, updates map[string]any) error {
	if s.fail {
		return errStub
	}
	t := s.tasks[id]
	if t == nil || t.TeamID != teamID {
		return model.ErrNotFound
	}
	s.updates[id] = updates
	if v, ok := updates["status"]; ok {
		t.Status = v.(model.TaskStatus)
	}
	return nil
}

func (s *stubTaskDao) UpdateMany(_ context.Context, teamID int64, ids []int64, updates map[string]any) error {
	if s.fail {
		return errStub
	}
	for _, id := range ids {
		if t := s.tasks[id]; t != nil && t.TeamID == teamID {
			s.updates[id] = updates
		}
	}
	return nil
}

func (s *stubTaskDao) Delete(_ context.Context, teamID, id int64) error {
	if s.fail {
		return errStub
	}
	t := s.tasks[id]
	if t == nil || t.TeamID != teamID {
		return model.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *stubTaskDao) DeleteMany(_ context.Context, teamID int64, ids []int64) error {
	if s.fail {
		return errStub
	}
	for _, id := range ids {
		if t := s.tasks[id]; t != nil && t.TeamID == teamID {
			delete(s.tasks, id)
		}
	}
	return nil
}

var testScope = model.TaskScope{TeamID: 1, UserID: 10}

func TestCreateDefaultsAndValidation(t *testing.T) {
	da := newStubTaskDao()
	svc := NewTaskService(da, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, testScope, CreateTaskInput{Title: "  write proposal  ", LabelsCSV: "Admin, Billing"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "write proposal" {
		t.Fatalf("title = %q", task.Title)
	}
	if task.Status != model.StatusTodo || task.Priority != model.PriorityMedium {
		t.Fatalf("defaults = %s/%s", task.Status, task.Priority)
	}
	if len(task.Labels) != 2 || task.Labels[0] != "Admin" {
		t.Fatalf("labels = %v", task.Labels)
	}
	if task.OwnerID != testScope.UserID || task.TeamID != testScope.TeamID {
		t.Fatalf("ownership = team %d owner %d", task.TeamID, task.OwnerID)
	}

	if _, err := svc.Create(ctx, testScope, CreateTaskInput{Title: "   "}); err != model.ErrInvalidArgument {
		t.Fatalf("blank title => %v", err)
	}
	if _, err := svc.Create(ctx, testScope, CreateTaskInput{Title: "x", Status: "BOGUS"}); err != model.ErrInvalidArgument {
		t.Fatalf("bad status => %v", err)
	}
	if _, err := svc.Create(ctx, testScope, CreateTaskInput{Title: "x", Priority: "URGENT"}); err != model.ErrInvalidArgument {
		t.Fatalf("bad priority => %v", err)
	}
}

func TestCreateDoneSetsCompletedAt(t *testing.T) {
	da := newStubTaskDao()
	svc := NewTaskService(da, nil)
	task, err := svc.Create(context.Background(), testScope, CreateTaskInput{Title: "done already", Status: model.StatusDone})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("done task must carry completed_at")
	}
}

func TestUpdateStatusManagesCompletedAt(t *testing.T) {
	da := newStubTaskDao()
	svc := NewTaskService(da, nil)
	ctx := context.Background()
	task, _ := svc.Create(ctx, testScope, CreateTaskInput{Title: "t"})

	done := model.StatusDone
	if err := svc.Update(ctx, testScope, task.ID, TaskPatch{Status: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if da.updates[task.ID]["completed_at"] == nil {
		t.Fatal("DONE transition must write completed_at")
	}

	todo := model.StatusTodo
	if err := svc.Update(ctx, testScope, task.ID, TaskPatch{Status: &todo}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if v, ok := da.updates[task.ID]["completed_at"]; !ok || v != nil {
		t.Fatalf("leaving DONE must clear completed_at, wrote %v", v)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	da := newStubTaskDao()
	svc := NewTaskService(da, nil)
	ctx := context.Background()
	task, _ := svc.Create(ctx, testScope, CreateTaskInput{Title: "t"})

	blank := "  "
	if err := svc.Update(ctx, testScope, task.ID, TaskPatch{Title: &blank}); err != model.ErrInvalidArgument {
		t.Fatalf("blank title patch => %v", err)
	}
}

func TestUpdateScopeMiss(t *testing.T) {
	da := newStubTaskDao()
	svc := NewTaskService(da, nil)
	ctx := context.Background()
	task, _ := svc.Create(ctx, testScope, CreateTaskInput{Title: "t"})

	other := model.TaskScope{TeamID: 99, UserID: 10}
	title := "new"
	if err := svc.Update(ctx, other, task.ID, TaskPatch{Title: &title}); err != model.ErrNotFound {
		t.Fatalf("foreign team update => %v", err)
	}
}

func TestReadsDegradeToEmpty(t *testing.T) {
	da := newStubTaskDao()
	da.fail = true
	svc := NewTaskService(da, nil)
	ctx := context.Background()

	if got := svc.List(ctx, testScope, nil); got == nil || len(got) != 0 {
		t.Fatalf("list under failure = %v", got)
	}
	if got := svc.Subtasks(ctx, 1, 5); got == nil || len(got) != 0 {
		t.Fatalf("subtasks under failure = %v", got)
	}
	stats := svc.StatsAt(ctx, 1, time.Now())
	if stats.Total != 0 || len(stats.ByStatus) == 0 {
		t.Fatalf("stats under failure = %+v", stats)
	}
}

func TestWritesReturnErrors(t *testing.T) {
	da := newStubTaskDao()
	da.fail = true
	svc := NewTaskService(da, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, testScope, CreateTaskInput{Title: "x"}); err == nil {
		t.Fatal("create under failure must error")
	}
	if err := svc.Delete(ctx, testScope, 1); err == nil {
		t.Fatal("delete under failure must error")
	}
	if err := svc.BulkDelete(ctx, testScope, []int64{1, 2}); err == nil {
		t.Fatal("bulk delete under failure must error")
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	da := newStubTaskDao()
	bus := events.NewBus()
	var published int
	bus.Subscribe(func(context.Context, events.TasksChanged) { published++ })
	svc := NewTaskService(da, bus)
	ctx := context.Background()

	task, _ := svc.Create(ctx, testScope, CreateTaskInput{Title: "t"})
	done := model.StatusDone
	_ = svc.Update(ctx, testScope, task.ID, TaskPatch{Status: &done})
	_ = svc.Delete(ctx, testScope, task.ID)
	if published != 3 {
		t.Fatalf("published = %d, want one event per mutation", published)
	}

	// a failed mutation publishes nothing
	da.fail = true
	_, _ = svc.Create(ctx, testScope, CreateTaskInput{Title: "u"})
	if published != 3 {
		t.Fatalf("failed create still published, count = %d", published)
	}
}

func TestEmptyPatchIsNoop(t *testing.T) {
	da := newStubTaskDao()
	bus := events.NewBus()
	var published int
	bus.Subscribe(func(context.Context, events.TasksChanged) { published++ })
	svc := NewTaskService(da, bus)

	if err := svc.Update(context.Background(), testScope, 999, TaskPatch{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if published != 0 {
		t.Fatal("empty patch must not publish")
	}
}

func TestMoveValidatesStatus(t *testing.T) {
	svc := NewTaskService(newStubTaskDao(), nil)
	if err := svc.Move(context.Background(), testScope, 1, "SIDEWAYS", 0); err != model.ErrInvalidArgument {
		t.Fatalf("bad column => %v", err)
	}
}
