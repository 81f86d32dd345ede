package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/model"
	"github.com/solodesk/solodesk/internal/service"
)

type ProjectController struct {
	projects dao.ProjectDao
	tasks    *service.TaskService
}

func NewProjectController(projects dao.ProjectDao, tasks *service.TaskService) *ProjectController {
	return &ProjectController{projects: projects, tasks: tasks}
}

func (pc *ProjectController) list(w http.ResponseWriter, r *http.Request) {
	list, err := pc.projects.List(r.Context(), scope(r).TeamID)
	if err != nil {
		logging.Error(r.Context(), "project list failed", zap.Error(err))
		list = []*model.Project{}
	}
	writeJSON(w, list)
}

func (pc *ProjectController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	p, err := pc.projects.Get(r.Context(), scope(r).TeamID, id)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, p)
}

// projectTasks backs the project detail tab: every task of the project,
// regardless of the viewer's active team.
func (pc *ProjectController) projectTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	sc := scope(r)
	f := parseFilters(r, sc.UserID)
	f.ProjectID = &id
	writeJSON(w, pc.tasks.List(r.Context(), sc, f))
}

func (pc *ProjectController) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string   `json:"name"`
		ClientID   *int64   `json:"client_id"`
		Notes      string   `json:"notes"`
		Status     string   `json:"status"`
		HourlyRate *float64 `json:"hourly_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
		return
	}
	status := model.ProjectStatus(strings.ToUpper(req.Status))
	if req.Status == "" {
		status = model.ProjectActive
	}
	p := &model.Project{
		TeamID:     scope(r).TeamID,
		ClientID:   req.ClientID,
		Name:       name,
		Notes:      req.Notes,
		Status:     status,
		HourlyRate: req.HourlyRate,
	}
	if err := pc.projects.Create(r.Context(), p); err != nil {
		logging.Error(r.Context(), "project create failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "INTERNAL")
		return
	}
	writeJSON(w, p)
}

func (pc *ProjectController) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	var req struct {
		Name       *string  `json:"name"`
		ClientID   *int64   `json:"client_id"`
		Notes      *string  `json:"notes"`
		Status     *string  `json:"status"`
		HourlyRate *float64 `json:"hourly_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	updates := map[string]any{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.ClientID != nil {
		updates["client_id"] = *req.ClientID
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Status != nil {
		updates["status"] = model.ProjectStatus(strings.ToUpper(*req.Status))
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	if len(updates) == 0 {
		writeJSON(w, map[string]any{"updated": false})
		return
	}
	if err := pc.projects.Update(r.Context(), scope(r).TeamID, id, updates); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"updated": true})
}

func (pc *ProjectController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := pc.projects.Delete(r.Context(), scope(r).TeamID, id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": true})
}
