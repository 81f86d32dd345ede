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

type InvoiceController struct {
	invoices dao.InvoiceDao
}

func NewInvoiceController(invoices dao.InvoiceDao) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

func (ic *InvoiceController) list(w http.ResponseWriter, r *http.Request) {
	list, err := ic.invoices.List(r.Context(), scope(r).TeamID)
	if err != nil {
		logging.Error(r.Context(), "invoice list failed", zap.Error(err))
		list = []*model.Invoice{}
	}
	writeJSON(w, list)
}

func (ic *InvoiceController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	inv, err := ic.invoices.Get(r.Context(), scope(r).TeamID, id)
	if err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, inv)
}

func (ic *InvoiceController) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID    int64  `json:"client_id"`
		Number      string `json:"number"`
		AmountCents int64  `json:"amount_cents"`
		Currency    string `json:"currency"`
		DueDate     string `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	if req.ClientID <= 0 || strings.TrimSpace(req.Number) == "" || req.AmountCents <= 0 {
		writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
		return
	}
	inv := &model.Invoice{
		TeamID:      scope(r).TeamID,
		ClientID:    req.ClientID,
		Number:      strings.TrimSpace(req.Number),
		AmountCents: req.AmountCents,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		Status:      model.InvoiceDraft,
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}
	if req.DueDate != "" {
		due, err := time.Parse(model.ISODate, req.DueDate)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "INVALID_DATE")
			return
		}
		inv.DueDate = &due
	}
	if err := ic.invoices.Create(r.Context(), inv); err != nil {
		logging.Error(r.Context(), "invoice create failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "INTERNAL")
		return
	}
	writeJSON(w, inv)
}

// setStatus drives the invoice lifecycle; marking PAID stamps paid_at,
// leaving PAID clears it.
func (ic *InvoiceController) setStatus(w http.ResponseWriter, r *http.Request, status model.InvoiceStatus) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	updates := map[string]any{"status": status}
	if status == model.InvoicePaid {
		updates["paid_at"] = time.Now()
	} else {
		updates["paid_at"] = nil
	}
	if err := ic.invoices.Update(r.Context(), scope(r).TeamID, id, updates); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"status": status})
}

func (ic *InvoiceController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "INVALID_ID")
		return
	}
	if err := ic.invoices.Delete(r.Context(), scope(r).TeamID, id); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": true})
}
