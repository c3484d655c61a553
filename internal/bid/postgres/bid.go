package postgres

import (
	"github.com/bidquo/rfq-marketplace/internal/bid"
	bidDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/bid"
	"gorm.io/gorm"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(b *bid.Bid) error {
	row := bid.ToDataModel(b)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	b.ID = row.ID
	return nil
}

func (r *BidRepository) ListByRFQ(rfqID int64, limit, offset int) ([]*bid.Bid, error) {
	var rows []*bidDatamodel.Bid
	err := r.db.Where("rfq_id = ?", rfqID).
		Order("amount_cents ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return bid.FromDataModelSlice(rows), nil
}

func (r *BidRepository) ListBySupplier(supplierID int64, limit, offset int) ([]*bid.Bid, error) {
	var rows []*bidDatamodel.Bid
	err := r.db.Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return bid.FromDataModelSlice(rows), nil
}
