package delegation

import "time"

// Delegation is the persisted grant row. A nil ResourceID is a wildcard
// grant covering every resource of ResourceType.
type Delegation struct {
	ID           int64      `gorm:"primaryKey"`
	FromUserID   int64      `gorm:"column:from_user_id;not null;index"`
	ToUserID     int64      `gorm:"column:to_user_id;not null;index"`
	ResourceType string     `gorm:"column:resource_type;not null;index"`
	ResourceID   *string    `gorm:"column:resource_id"`
	Permission   string     `gorm:"column:permission;not null"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	ExpiresAt    *time.Time `gorm:"column:expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Delegation) TableName() string {
	return "delegations"
}
