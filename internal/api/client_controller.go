package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/model"
)

type ClientController struct {
	clients dao.ClientDao
}

func NewClientController(clients dao.ClientDao) *ClientController {
	return &ClientController{clients: clients}
}

func (cc *ClientController) list(w http.ResponseWriter, r *http.Request) {
	list, err := cc.clients.List(r.Context(), scope(r).TeamID)
	if err != nil {
		logging.Error(r.Context(), "client list failed", zap.Error(err))
		list = []*model.Client{}
	}
	writeJSON(w, list)
}

func (cc *ClientController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	c, err := cc.clients.Get(r.Context(), scope(r).TeamID, id)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, c)
}

type clientRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

func (cc *ClientController) create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
		return
	}
	c := &model.Client{
		TeamID:  scope(r).TeamID,
		Name:    name,
		Company: req.Company,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Notes:   req.Notes,
	}
	if err := cc.clients.Create(r.Context(), c); err != nil {
		logging.Error(r.Context(), "client create failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "INTERNAL")
		return
	}
	writeJSON(w, c)
}

func (cc *ClientController) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	var req struct {
		Name    *string `json:"name"`
		Company *string `json:"company"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Notes   *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
			return
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		writeJSON(w, map[string]any{"updated": false})
		return
	}
	if err := cc.clients.Update(r.Context(), scope(r).TeamID, id, updates); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"updated": true})
}

// touch records an engagement signal, resetting the stale-client clock.
func (cc *ClientController) touch(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	err := cc.clients.Update(r.Context(), scope(r).TeamID, id, map[string]any{"contacted_at": time.Now()})
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"updated": true})
}

func (cc *ClientController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := cc.clients.Delete(r.Context(), scope(r).TeamID, id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": true})
}
