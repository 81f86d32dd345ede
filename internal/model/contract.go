package model

import "time"

type ContractStatus string

const (
	ContractDraft  ContractStatus = "DRAFT"
	ContractSent   ContractStatus = "SENT"
	ContractSigned ContractStatus = "SIGNED"
)

// Contract holds a document body with {{token}} placeholders substituted at
// render time from client/project fields. SentAt feeds the stale-contract
// reminder source.
type Contract struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	TeamID    int64          `json:"team_id" gorm:"index"`
	ClientID  int64          `json:"client_id" gorm:"index"`
	ProjectID *int64         `json:"project_id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Status    ContractStatus `json:"status"`
	SentAt    *time.Time     `json:"sent_at"`
	SignedAt  *time.Time     `json:"signed_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }
