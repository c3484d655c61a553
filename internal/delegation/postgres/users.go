package postgres

import (
	userDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/user"
	"github.com/bidquo/rfq-marketplace/internal/delegation"
	"gorm.io/gorm"
)

// UserDirectory resolves users from the identity store for the engine:
// existence checks on grant creation and public-profile hydration on
// listings.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) delegation.UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) GetUserInfo(userID int64) (*delegation.UserInfo, error) {
	var row userDatamodel.User
	err := d.db.Where("id = ? AND is_active = ?", userID, true).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &delegation.UserInfo{
		UserProfile: delegation.UserProfile{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			AvatarURL: row.AvatarURL,
		},
		Role: row.Role,
	}, nil
}
