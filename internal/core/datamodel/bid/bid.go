package bid

import "time"

type Bid struct {
	ID           int64     `gorm:"primaryKey"`
	RFQID        int64     `gorm:"column:rfq_id;not null;index"`
	SupplierID   int64     `gorm:"column:supplier_id;not null;index"`
	CompanyID    int64     `gorm:"column:company_id;not null"`
	AmountCents  int64     `gorm:"column:amount_cents;not null"`
	Currency     string    `gorm:"column:currency;default:USD"`
	LeadTimeDays int       `gorm:"column:lead_time_days"`
	Note         string    `gorm:"column:note"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (Bid) TableName() string {
	return "bids"
}
