package postgres

import (
	"github.com/bidquo/rfq-marketplace/internal/category"
	categoryDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll() ([]*categoryDatamodel.RFQCategory, error) {
	var categories []*categoryDatamodel.RFQCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByName(name string) (*categoryDatamodel.RFQCategory, error) {
	var cat categoryDatamodel.RFQCategory
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.RFQCategory) error {
	return r.db.Create(cat).Error
}

// Deactivate retires the category; rows are never hard-deleted because RFQs
// reference categories by name.
func (r *CategoryRepository) Deactivate(id int64) error {
	return r.db.Model(&categoryDatamodel.RFQCategory{}).Where("id = ?", id).Update("is_active", false).Error
}
