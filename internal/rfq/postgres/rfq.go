package postgres

import (
	"errors"

	rfqDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/rfq"
	"github.com/bidquo/rfq-marketplace/internal/rfq"
	"gorm.io/gorm"
)

type RFQRepository struct {
	db *gorm.DB
}

func NewRFQRepository(db *gorm.DB) *RFQRepository {
	return &RFQRepository{db: db}
}

func (r *RFQRepository) Create(q *rfq.RFQ) error {
	row := rfq.ToDataModel(q)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	q.ID = row.ID
	return nil
}

func (r *RFQRepository) GetByID(id int64) (*rfq.RFQ, error) {
	var row rfqDatamodel.RFQ
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rfq.FromDataModel(&row), nil
}

func (r *RFQRepository) Update(q *rfq.RFQ) error {
	return r.db.Save(rfq.ToDataModel(q)).Error
}

func (r *RFQRepository) ListOpen(limit, offset int) ([]*rfq.RFQ, error) {
	var rows []*rfqDatamodel.RFQ
	err := r.db.Where("status = ?", rfq.StatusOpen).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rfq.FromDataModelSlice(rows), nil
}

func (r *RFQRepository) ListByBuyer(buyerID int64, limit, offset int) ([]*rfq.RFQ, error) {
	var rows []*rfqDatamodel.RFQ
	err := r.db.Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rfq.FromDataModelSlice(rows), nil
}
