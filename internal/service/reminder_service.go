package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/model"
)

// Reminder feed caps. The feed is a heuristic attention list, capped per
// category to keep the dashboard concise; it is never a complete audit.
const (
	maxInvoiceReminders  = 3
	maxTaskReminders     = 3
	maxContractReminders = 3
	maxClientReminders   = 2
	clientFillThreshold  = 5

	taskDueWindowDays    = 3
	contractStaleDays    = 3
	clientStaleDays      = 30
)

// ReminderService merges four independent attention signals into one
// severity-ordered list, recomputed on every request.
type ReminderService struct {
	invoices  dao.InvoiceDao
	tasks     dao.TaskDao
	contracts dao.ContractDao
	clients   dao.ClientDao
}

func NewReminderService(invoices dao.InvoiceDao, tasks dao.TaskDao, contracts dao.ContractDao, clients dao.ClientDao) *ReminderService {
	return &ReminderService{invoices: invoices, tasks: tasks, contracts: contracts, clients: clients}
}

func (s *ReminderService) Reminders(ctx context.Context, teamID int64) []model.Reminder {
	return s.RemindersAt(ctx, teamID, time.Now())
}

// RemindersAt assembles the feed relative to the given instant. Each source
// is fetched independently; a failing source is logged and skipped so the
// rest of the feed still renders.
func (s *ReminderService) RemindersAt(ctx context.Context, teamID int64, now time.Time) []model.Reminder {
	out := make([]model.Reminder, 0, maxInvoiceReminders+maxTaskReminders+maxContractReminders+maxClientReminders)

	invoices, err := s.invoices.ListOverdue(ctx, teamID, now, maxInvoiceReminders)
	if err != nil {
		logging.Error(ctx, "reminder: overdue invoices fetch failed", zap.Error(err))
	}
	for _, inv := range invoices {
		out = append(out, model.Reminder{
			ID:          fmt.Sprintf("invoice-%d", inv.ID),
			Source:      model.ReminderInvoice,
			Title:       fmt.Sprintf("Invoice %s is overdue", inv.Number),
			Description: fmt.Sprintf("%s %.2f outstanding", inv.Currency, float64(inv.AmountCents)/100),
			Severity:    model.SeverityHigh,
			ActionLabel: "View invoice",
			ActionLink:  fmt.Sprintf("/invoices/%d", inv.ID),
			Date:        inv.DueDate,
		})
	}

	dueTasks, err := s.tasks.ListDueBetween(ctx, teamID, now, now.AddDate(0, 0, taskDueWindowDays), maxTaskReminders)
	if err != nil {
		logging.Error(ctx, "reminder: upcoming tasks fetch failed", zap.Error(err))
	}
	for _, t := range dueTasks {
		out = append(out, model.Reminder{
			ID:          fmt.Sprintf("task-%d", t.ID),
			Source:      model.ReminderTask,
			Title:       fmt.Sprintf("Task due soon: %s", t.Title),
			Description: t.Description,
			Severity:    model.SeverityMedium,
			ActionLabel: "Open task",
			ActionLink:  fmt.Sprintf("/tasks/%d", t.ID),
			Date:        t.DueDate,
		})
	}

	contracts, err := s.contracts.ListStaleSent(ctx, teamID, now.AddDate(0, 0, -contractStaleDays), maxContractReminders)
	if err != nil {
		logging.Error(ctx, "reminder: stale contracts fetch failed", zap.Error(err))
	}
	for _, c := range contracts {
		out = append(out, model.Reminder{
			ID:          fmt.Sprintf("contract-%d", c.ID),
			Source:      model.ReminderContract,
			Title:       fmt.Sprintf("Contract awaiting signature: %s", c.Title),
			Description: "Sent over 3 days ago with no response",
			Severity:    model.SeverityMedium,
			ActionLabel: "Follow up",
			ActionLink:  fmt.Sprintf("/contracts/%d", c.ID),
			Date:        c.SentAt,
		})
	}

	// Stale clients are filler only: skipped entirely once the feed already
	// holds enough items.
	if len(out) < clientFillThreshold {
		clients, err := s.clients.ListStale(ctx, teamID, now.AddDate(0, 0, -clientStaleDays), maxClientReminders)
		if err != nil {
			logging.Error(ctx, "reminder: stale clients fetch failed", zap.Error(err))
		}
		for _, c := range clients {
			out = append(out, model.Reminder{
				ID:          fmt.Sprintf("client-%d", c.ID),
				Source:      model.ReminderClient,
				Title:       fmt.Sprintf("Check in with %s", c.Name),
				Description: "No engagement in the last 30 days",
				Severity:    model.SeverityLow,
				ActionLabel: "View client",
				ActionLink:  fmt.Sprintf("/clients/%d", c.ID),
				Date:        c.ContactedAt,
			})
		}
	}

	// Stable: ties keep source-fetch order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Severity > out[j].Severity })
	return out
}
