package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/model"
)

type UserDao interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListTeamMembers(ctx context.Context, teamID int64) ([]*model.User, error)
	FirstTeam(ctx context.Context, userID int64) (int64, error)
}

type userDaoImpl struct{ db *gorm.DB }

func NewUserDao(db *gorm.DB) UserDao { return &userDaoImpl{db: db} }

func (d *userDaoImpl) Create(ctx context.Context, u *model.User) error {
	return d.db.WithContext(ctx).Create(u).Error
}

func (d *userDaoImpl) Get(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *userDaoImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := d.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *userDaoImpl) ListTeamMembers(ctx context.Context, teamID int64) ([]*model.User, error) {
	var list []*model.User
	err := d.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.team_id = ?", teamID).
		Order("users.name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FirstTeam resolves the team a user lands in after login.
func (d *userDaoImpl) FirstTeam(ctx context.Context, userID int64) (int64, error) {
	var m model.Membership
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, model.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return m.TeamID, nil
}
