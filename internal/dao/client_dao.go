package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/model"
)

type ClientDao interface {
	Create(ctx context.Context, c *model.Client) error
	Get(ctx context.Context, teamID, id int64) (*model.Client, error)
	List(ctx context.Context, teamID int64) ([]*model.Client, error)
	ListStale(ctx context.Context, teamID int64, olderThan time.Time, limit int) ([]*model.Client, error)
	Update(ctx context.Context, teamID, id int64, updates map[string]any) error
	Delete(ctx context.Context, teamID, id int64) error
}

type clientDaoImpl struct{ db *gorm.DB }

func NewClientDao(db *gorm.DB) ClientDao { return &clientDaoImpl{db: db} }

func (d *clientDaoImpl) Create(ctx context.Context, c *model.Client) error {
	return d.db.WithContext(ctx).Create(c).Error
}

func (d *clientDaoImpl) Get(ctx context.Context, teamID, id int64) (*model.Client, error) {
	var c model.Client
	err := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *clientDaoImpl) List(ctx context.Context, teamID int64) ([]*model.Client, error) {
	var list []*model.Client
	err := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("name ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListStale returns clients with no engagement signal since olderThan,
// oldest first. Clients never contacted qualify by creation time.
func (d *clientDaoImpl) ListStale(ctx context.Context, teamID int64, olderThan time.Time, limit int) ([]*model.Client, error) {
	var list []*model.Client
	q := d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("(contacted_at IS NOT NULL AND contacted_at < ?) OR (contacted_at IS NULL AND created_at < ?)", olderThan, olderThan).
		Order("COALESCE(contacted_at, created_at) ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (d *clientDaoImpl) Update(ctx context.Context, teamID, id int64, updates map[string]any) error {
	res := d.db.WithContext(ctx).Model(&model.Client{}).
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

func (d *clientDaoImpl) Delete(ctx context.Context, teamID, id int64) error {
	res := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).Delete(&model.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
