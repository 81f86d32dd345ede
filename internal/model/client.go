package model

import "time"

// Client is a customer of the freelancer's business. ContactedAt is the last
// engagement signal used by the stale-client reminder source.
type Client struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	TeamID      int64      `json:"team_id" gorm:"index"`
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Notes       string     `json:"notes"`
	ContactedAt *time.Time `json:"contacted_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
