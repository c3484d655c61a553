package postgres

import (
	"errors"

	"github.com/bidquo/rfq-marketplace/internal/company"
	companyDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/company"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(c *company.Company) error {
	row := company.ToDataModel(c)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}

func (r *CompanyRepository) GetByID(id int64) (*company.Company, error) {
	var row companyDatamodel.Company
	err := r.db.Where("id = ? AND is_active = true", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return company.FromDataModel(&row), nil
}

func (r *CompanyRepository) List(limit, offset int) ([]*company.Company, error) {
	var rows []*companyDatamodel.Company
	err := r.db.Where("is_active = true").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return company.FromDataModelSlice(rows), nil
}
