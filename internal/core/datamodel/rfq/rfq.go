package rfq

import "time"

type RFQ struct {
	ID          int64      `gorm:"primaryKey"`
	BuyerID     int64      `gorm:"column:buyer_id;not null;index"`
	CompanyID   int64      `gorm:"column:company_id;not null;index"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	Category    string     `gorm:"column:category"`
	Quantity    int64      `gorm:"column:quantity;not null"`
	Status      string     `gorm:"column:status;default:open"`
	Deadline    *time.Time `gorm:"column:deadline"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (RFQ) TableName() string {
	return "rfqs"
}
