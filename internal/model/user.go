package model

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Team struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string { return "teams" }

// Membership links a user to a team. A user's first membership is their
// active team at login.
type Membership struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TeamID    int64     `json:"team_id" gorm:"index"`
	UserID    int64     `json:"user_id" gorm:"index"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (Membership) TableName() string { return "memberships" }
