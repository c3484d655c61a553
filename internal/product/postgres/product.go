package postgres

import (
	"errors"

	productDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/product"
	"github.com/bidquo/rfq-marketplace/internal/product"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *product.Product) error {
	row := product.ToDataModel(p)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

func (r *ProductRepository) GetByID(id int64) (*product.Product, error) {
	var row productDatamodel.Product
	err := r.db.Where("id = ? AND is_active = true", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return product.FromDataModel(&row), nil
}

func (r *ProductRepository) ListByCompany(companyID int64, limit, offset int) ([]*product.Product, error) {
	var rows []*productDatamodel.Product
	err := r.db.Where("company_id = ? AND is_active = true", companyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return product.FromDataModelSlice(rows), nil
}
