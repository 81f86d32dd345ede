package model

import "time"

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// Invoice amounts are integer cents; the API layer owns display formatting.
type Invoice struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	TeamID      int64         `json:"team_id" gorm:"index"`
	ClientID    int64         `json:"client_id" gorm:"index"`
	Number      string        `json:"number"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	Status      InvoiceStatus `json:"status"`
	DueDate     *time.Time    `json:"due_date"`
	PaidAt      *time.Time    `json:"paid_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }
