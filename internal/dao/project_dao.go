package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/model"
)

type ProjectDao interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, teamID, id int64) (*model.Project, error)
	List(ctx context.Context, teamID int64) ([]*model.Project, error)
	Update(ctx context.Context, teamID, id int64, updates map[string]any) error
	Delete(ctx context.Context, teamID, id int64) error
}

type projectDaoImpl struct{ db *gorm.DB }

func NewProjectDao(db *gorm.DB) ProjectDao { return &projectDaoImpl{db: db} }

func (d *projectDaoImpl) Create(ctx context.Context, p *model.Project) error {
	return d.db.WithContext(ctx).Create(p).Error
}

func (d *projectDaoImpl) Get(ctx context.Context, teamID, id int64) (*model.Project, error) {
	var p model.Project
	err := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *projectDaoImpl) List(ctx context.Context, teamID int64) ([]*model.Project, error) {
	var list []*model.Project
	err := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (d *projectDaoImpl) Update(ctx context.Context, teamID, id int64, updates map[string]any) error {
	res := d.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND team_id = ?", id, teamID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (d *projectDaoImpl) Delete(ctx context.Context, teamID, id int64) error {
	res := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).Delete(&model.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
