package postgres

import (
	"errors"

	userDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/user"
	"github.com/bidquo/rfq-marketplace/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ? AND is_active = true", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

// Search matches active users by name or email prefix, case-insensitive.
func (r *UserRepository) Search(query string, limit int) ([]*user.User, error) {
	var rows []*userDatamodel.User
	pattern := query + "%"
	err := r.db.
		Where("is_active = true").
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(rows), nil
}
