package model

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	ID         int64         `json:"id" gorm:"primaryKey"`
	TeamID     int64         `json:"team_id" gorm:"index"`
	ClientID   *int64        `json:"client_id"`
	Name       string        `json:"name"`
	Notes      string        `json:"notes"`
	Status     ProjectStatus `json:"status"`
	HourlyRate *float64      `json:"hourly_rate"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
