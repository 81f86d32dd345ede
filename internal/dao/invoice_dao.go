package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/solodesk/solodesk/internal/model"
)

type InvoiceDao interface {
	Create(ctx context.Context, inv *model.Invoice) error
	Get(ctx context.Context, teamID, id int64) (*model.Invoice, error)
	List(ctx context.Context, teamID int64) ([]*model.Invoice, error)
	ListOverdue(ctx context.Context, teamID int64, today time.Time, limit int) ([]*model.Invoice, error)
	OutstandingCents(ctx context.Context, teamID int64) (int64, error)
	Update(ctx context.Context, teamID, id int64, updates map[string]any) error
	Delete(ctx context.Context, teamID, id int64) error
}

type invoiceDaoImpl struct{ db *gorm.DB }

func NewInvoiceDao(db *gorm.DB) InvoiceDao { return &invoiceDaoImpl{db: db} }

func (d *invoiceDaoImpl) Create(ctx context.Context, inv *model.Invoice) error {
	return d.db.WithContext(ctx).Create(inv).Error
}

func (d *invoiceDaoImpl) Get(ctx context.Context, teamID, id int64) (*model.Invoice, error) {
	var inv model.Invoice
	err := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (d *invoiceDaoImpl) List(ctx context.Context, teamID int64) ([]*model.Invoice, error) {
	var list []*model.Invoice
	err := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListOverdue returns unpaid invoices whose due date has passed, most overdue
// first. Invoices already flagged OVERDUE qualify regardless of date.
func (d *invoiceDaoImpl) ListOverdue(ctx context.Context, teamID int64, today time.Time, limit int) ([]*model.Invoice, error) {
	var list []*model.Invoice
	q := d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("status = ? OR (status = ? AND due_date IS NOT NULL AND due_date < ?)",
			model.InvoiceOverdue, model.InvoiceSent, model.StartOfDay(today)).
		Order("due_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (d *invoiceDaoImpl) OutstandingCents(ctx context.Context, teamID int64) (int64, error) {
	var total *int64
	err := d.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("team_id = ? AND status IN ?", teamID, []model.InvoiceStatus{model.InvoiceSent, model.InvoiceOverdue}).
		Select("SUM(amount_cents)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (d *invoiceDaoImpl) Update(ctx context.Context, teamID, id int64, updates map[string]any) error {
	res := d.db.WithContext(ctx).Model(&model.Invoice{}).
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

func (d *invoiceDaoImpl) Delete(ctx context.Context, teamID, id int64) error {
	res := d.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).Delete(&model.Invoice{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
