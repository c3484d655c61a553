package product

import "time"

type Product struct {
	ID          int64     `gorm:"primaryKey"`
	CompanyID   int64     `gorm:"column:company_id;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category"`
	ImageURL    *string   `gorm:"column:image_url"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Product) TableName() string {
	return "products"
}
