package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/model"
	"github.com/solodesk/solodesk/internal/service"
)

// DashboardController composes the landing-page payload: task stats, the
// reminder feed and outstanding invoice totals in one round trip.
type DashboardController struct {
	tasks     *service.TaskService
	reminders *service.ReminderService
	badge     *service.BadgeCounter
	invoices  dao.InvoiceDao
	users     dao.UserDao
}

func NewDashboardController(tasks *service.TaskService, reminders *service.ReminderService, badge *service.BadgeCounter, invoices dao.InvoiceDao, users dao.UserDao) *DashboardController {
	return &DashboardController{tasks: tasks, reminders: reminders, badge: badge, invoices: invoices, users: users}
}

func (dc *DashboardController) overview(w http.ResponseWriter, r *http.Request) {
	teamID := scope(r).TeamID
	outstanding, err := dc.invoices.OutstandingCents(r.Context(), teamID)
	if err != nil {
		logging.Error(r.Context(), "outstanding total failed", zap.Error(err))
		outstanding = 0
	}
	writeJSON(w, map[string]any{
		"stats":             dc.tasks.Stats(r.Context(), teamID),
		"reminders":         dc.reminders.Reminders(r.Context(), teamID),
		"outstanding_cents": outstanding,
	})
}

func (dc *DashboardController) badgeCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"count": dc.badge.Count(r.Context(), scope(r).TeamID)})
}

func (dc *DashboardController) teamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := dc.users.ListTeamMembers(r.Context(), scope(r).TeamID)
	if err != nil {
		logging.Error(r.Context(), "team member list failed", zap.Error(err))
		members = []*model.User{}
	}
	writeJSON(w, members)
}
