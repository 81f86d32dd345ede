package model

import "time"

type Severity int

const (
	SeverityLow    Severity = 1
	SeverityMedium Severity = 2
	SeverityHigh   Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	}
	return "low"
}

type ReminderSource string

const (
	ReminderInvoice  ReminderSource = "invoice"
	ReminderTask     ReminderSource = "task"
	ReminderContract ReminderSource = "contract"
	ReminderClient   ReminderSource = "client"
)

// Reminder is the normalized projection of one "attention needed" signal.
// It is assembled per request and never stored.
type Reminder struct {
	ID          string         `json:"id"`
	Source      ReminderSource `json:"source"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
	ActionLabel string         `json:"action_label"`
	ActionLink  string         `json:"action_link"`
	Date        *time.Time     `json:"date,omitempty"`
}
