package category

import "time"

// RFQCategory is a curated procurement category buyers file RFQs under.
type RFQCategory struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (RFQCategory) TableName() string {
	return "rfq_categories"
}
