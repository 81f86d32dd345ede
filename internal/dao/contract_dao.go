package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/model"
)

type ContractDao interface {
	Create(ctx context.Context, c *model.Contract) error
	Get(ctx context.Context, teamID, id int64) (*model.Contract, error)
	List(ctx context.Context, teamID int64) ([]*model.Contract, error)
	ListStaleSent(ctx context.Context, teamID int64, sentBefore time.Time, limit int) ([]*model.Contract, error)
	Update(ctx context.Context, teamID, id int64, updates map[string]any) error
	Delete(ctx context.Context, teamID, id int64) error
}

type contractDaoImpl struct{ db *gorm.DB }

func NewContractDao(db *gorm.DB) ContractDao { return &contractDaoImpl{db: db} }

func (d *contractDaoImpl) Create(ctx context.Context, c *model.Contract) error {
	return d.db.WithContext(ctx).Create(c).Error
}

func (d *contractDaoImpl) Get(ctx context.Context, teamID, id int64) (*model.Contract, error) {
	var c model.Contract
	err := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *contractDaoImpl) List(ctx context.Context, teamID int64) ([]*model.Contract, error) {
	var list []*model.Contract
	err := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListStaleSent returns contracts still in SENT status whose send date is
// older than sentBefore, oldest first.
func (d *contractDaoImpl) ListStaleSent(ctx context.Context, teamID int64, sentBefore time.Time, limit int) ([]*model.Contract, error) {
	var list []*model.Contract
	q := d.db.WithContext(ctx).
		Where("team_id = ? AND status = ? AND sent_at IS NOT NULL AND sent_at < ?",
			teamID, model.ContractSent, sentBefore).
		Order("sent_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (d *contractDaoImpl) Update(ctx context.Context, teamID, id int64, updates map[string]any) error {
	res := d.db.WithContext(ctx).Model(&model.Contract{}).
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

func (d *contractDaoImpl) Delete(ctx context.Context, teamID, id int64) error {
	res := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).Delete(&model.Contract{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
