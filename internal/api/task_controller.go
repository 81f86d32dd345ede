package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/solodesk/solodesk/internal/board"
	"github.com/solodesk/solodesk/internal/model"
	"github.com/solodesk/solodesk/internal/service"
	"github.com/solodesk/solodesk/internal/view"
)

type TaskController struct {
	tasks *service.TaskService
	board *board.Manager
}

func NewTaskController(tasks *service.TaskService, boardMgr *board.Manager) *TaskController {
	return &TaskController{tasks: tasks, board: boardMgr}
}

// parseFilters maps query parameters onto the filter specification.
// Unrecognized values are dropped rather than rejected: a stale link with an
// old filter value still renders a page.
func parseFilters(r *http.Request, callerID int64) *model.TaskFilters {
	q := r.URL.Query()
	f := &model.TaskFilters{}

	if v := model.TaskStatus(strings.ToUpper(q.Get("status"))); v.Valid() {
		f.Status = &v
	}
	if v := model.TaskPriority(strings.ToUpper(q.Get("priority"))); v.Valid() {
		f.Priority = &v
	}
	if v := q.Get("project_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			f.ProjectID = &id
		}
	}
	if v := q.Get("personal"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Personal = &b
		}
	}
	if q.Get("assigned_to_me") == "true" {
		f.AssigneeID = &callerID
	}
	parseDate := func(key string) *time.Time {
		if s := q.Get(key); s != "" {
			if t, err := time.Parse(model.ISODate, s); err == nil {
				return &t
			}
		}
		return nil
	}
	f.DueFrom = parseDate("due_from")
	f.DueTo = parseDate("due_to")
	f.Search = strings.TrimSpace(q.Get("q"))
	if v := strings.TrimSpace(q.Get("labels")); v != "" {
		f.Labels = model.SplitList(v)
	}
	f.SortBy = model.SortField(q.Get("sort"))
	f.SortDesc = q.Get("order") == "desc"
	return f
}

func (tc *TaskController) list(w http.ResponseWriter, r *http.Request) {
	sc := scope(r)
	rows := tc.tasks.List(r.Context(), sc, parseFilters(r, sc.UserID))
	writeJSON(w, map[string]any{"items": rows, "total": len(rows)})
}

func (tc *TaskController) groups(w http.ResponseWriter, r *http.Request) {
	sc := scope(r)
	rows := tc.tasks.List(r.Context(), sc, parseFilters(r, sc.UserID))
	writeJSON(w, view.GroupList(rows, time.Now()))
}

func (tc *TaskController) boardView(w http.ResponseWriter, r *http.Request) {
	sc := scope(r)
	rows := tc.tasks.List(r.Context(), sc, parseFilters(r, sc.UserID))
	tc.board.Load(rows)
	tc.board.Overlay(rows)
	writeJSON(w, view.Board(rows))
}

func (tc *TaskController) calendar(w http.ResponseWriter, r *http.Request) {
	sc := scope(r)
	rows := tc.tasks.List(r.Context(), sc, parseFilters(r, sc.UserID))
	resp := map[string]any{"marks": view.CalendarMarks(rows)}
	if s := r.URL.Query().Get("date"); s != "" {
		date, err := time.Parse(model.ISODate, s)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "INVALID_DATE")
			return
		}
		resp["selected"] = s
		resp["tasks"] = view.TasksOn(rows, date)
	}
	writeJSON(w, resp)
}

func (tc *TaskController) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, tc.tasks.Stats(r.Context(), scope(r).TeamID))
}

// labels feeds the label picker its suggested vocabulary.
func (tc *TaskController) labels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"suggested": model.SuggestedLabels})
}

type taskRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	IsPersonal     bool     `json:"is_personal"`
	ProjectID      *int64   `json:"project_id"`
	ParentID       *int64   `json:"parent_id"`
	AssigneeID     *int64   `json:"assignee_id"`
	DueDate        string   `json:"due_date"` // ISO date or empty
	Recurrence     string   `json:"recurrence"`
	EstimatedHours *float64 `json:"estimated_hours"`
	SortOrder      int      `json:"sort_order"`
	Labels         string   `json:"labels"`     // comma-separated
	Visibility     string   `json:"visibility"` // comma-separated
}

func (tc *TaskController) create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	in := service.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         model.TaskStatus(strings.ToUpper(req.Status)),
		Priority:       model.TaskPriority(strings.ToUpper(req.Priority)),
		IsPersonal:     req.IsPersonal,
		ProjectID:      req.ProjectID,
		ParentID:       req.ParentID,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		SortOrder:      req.SortOrder,
		LabelsCSV:      req.Labels,
		VisibilityCSV:  req.Visibility,
	}
	if req.DueDate != "" {
		due, err := time.Parse(model.ISODate, req.DueDate)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "INVALID_DATE")
			return
		}
		in.DueDate = &due
	}
	if req.Recurrence != "" {
		rec := model.RecurrenceType(strings.ToUpper(req.Recurrence))
		in.Recurrence = &rec
	}
	t, err := tc.tasks.Create(r.Context(), scope(r), in)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, t)
}

func (tc *TaskController) quickAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	status := model.TaskStatus(strings.ToUpper(req.Status))
	if req.Status == "" {
		status = model.StatusTodo
	}
	t, err := tc.tasks.QuickAdd(r.Context(), scope(r), req.Title, status)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, t)
}

func (tc *TaskController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	t, err := tc.tasks.Get(r.Context(), scope(r).TeamID, id)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, t)
}

func (tc *TaskController) subtasks(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	writeJSON(w, tc.tasks.Subtasks(r.Context(), scope(r).TeamID, id))
}

type taskPatchRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	Priority       *string  `json:"priority"`
	IsPersonal     *bool    `json:"is_personal"`
	ProjectID      *int64   `json:"project_id"`
	AssigneeID     *int64   `json:"assignee_id"`
	DueDate        *string  `json:"due_date"` // "" clears the date
	Recurrence     *string  `json:"recurrence"`
	EstimatedHours *float64 `json:"estimated_hours"`
	SortOrder      *int     `json:"sort_order"`
	Labels         *string  `json:"labels"`
	Visibility     *string  `json:"visibility"`
}

func (req *taskPatchRequest) patch() (service.TaskPatch, bool) {
	p := service.TaskPatch{
		Title:          req.Title,
		Description:    req.Description,
		IsPersonal:     req.IsPersonal,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		SortOrder:      req.SortOrder,
		LabelsCSV:      req.Labels,
		VisibilityCSV:  req.Visibility,
	}
	if req.Status != nil {
		s := model.TaskStatus(strings.ToUpper(*req.Status))
		p.Status = &s
	}
	if req.Priority != nil {
		pr := model.TaskPriority(strings.ToUpper(*req.Priority))
		p.Priority = &pr
	}
	if req.Recurrence != nil {
		rec := model.RecurrenceType(strings.ToUpper(*req.Recurrence))
		p.Recurrence = &rec
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			p.ClearDueDate = true
		} else {
			due, err := time.Parse(model.ISODate, *req.DueDate)
			if err != nil {
				return p, false
			}
			p.DueDate = &due
		}
	}
	return p, true
}

func (tc *TaskController) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	var req taskPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	p, ok := req.patch()
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_DATE")
		return
	}
	if err := tc.tasks.Update(r.Context(), scope(r), id, p); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"updated": true})
}

func (tc *TaskController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := tc.tasks.Delete(r.Context(), scope(r), id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": true})
}

func (tc *TaskController) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs   []int64          `json:"ids"`
		Patch taskPatchRequest `json:"patch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	p, ok := req.Patch.patch()
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_DATE")
		return
	}
	if err := tc.tasks.BulkUpdate(r.Context(), scope(r), req.IDs, p); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"updated": true, "count": len(req.IDs)})
}

func (tc *TaskController) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	if err := tc.tasks.BulkDelete(r.Context(), scope(r), req.IDs); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": true, "count": len(req.IDs)})
}

// move is the board drop handler: the optimistic reassignment is applied and
// answered immediately, persistence reconciles in the background. The request
// context would die with this response, so the pending operation runs on a
// detached copy that keeps the session values.
func (tc *TaskController) move(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	var req struct {
		Status    string `json:"status"`
		SortOrder int    `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	status := model.TaskStatus(strings.ToUpper(req.Status))
	if !status.Valid() {
		writeErr(w, http.StatusBadRequest, "INVALID_STATUS")
		return
	}
	tc.board.Move(context.WithoutCancel(r.Context()), id, status, req.SortOrder)
	writeJSON(w, map[string]any{"id": id, "status": status, "pending": true})
}
