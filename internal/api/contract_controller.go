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

type ContractController struct {
	contracts dao.ContractDao
	svc       *service.ContractService
}

func NewContractController(contracts dao.ContractDao, svc *service.ContractService) *ContractController {
	return &ContractController{contracts: contracts, svc: svc}
}

func (cc *ContractController) list(w http.ResponseWriter, r *http.Request) {
	list, err := cc.contracts.List(r.Context(), scope(r).TeamID)
	if err != nil {
		logging.Error(r.Context(), "contract list failed", zap.Error(err))
		list = []*model.Contract{}
	}
	writeJSON(w, list)
}

func (cc *ContractController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	c, err := cc.contracts.Get(r.Context(), scope(r).TeamID, id)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, c)
}

func (cc *ContractController) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID  int64  `json:"client_id"`
		ProjectID *int64 `json:"project_id"`
		Title     string `json:"title"`
		Body      string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	if req.ClientID <= 0 || strings.TrimSpace(req.Title) == "" {
		writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
		return
	}
	c := &model.Contract{
		TeamID:    scope(r).TeamID,
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Status:    model.ContractDraft,
	}
	if err := cc.contracts.Create(r.Context(), c); err != nil {
		logging.Error(r.Context(), "contract create failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "INTERNAL")
		return
	}
	writeJSON(w, c)
}

func (cc *ContractController) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	updates := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
			return
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if len(updates) == 0 {
		writeErr(w, http.StatusBadRequest, "EMPTY_UPDATE")
		return
	}
	if err := cc.contracts.Update(r.Context(), scope(r).TeamID, id, updates); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"updated": true})
}

func (cc *ContractController) render(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	body, err := cc.svc.Render(r.Context(), scope(r).TeamID, id)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"body": body})
}

func (cc *ContractController) send(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := cc.svc.MarkSent(r.Context(), scope(r).TeamID, id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"status": model.ContractSent})
}

func (cc *ContractController) sign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := cc.svc.MarkSigned(r.Context(), scope(r).TeamID, id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"status": model.ContractSigned})
}

func (cc *ContractController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := cc.contracts.Delete(r.Context(), scope(r).TeamID, id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": true})
}
