package delegation

import (
	"time"

	delegationDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/delegation"
)

// Delegation is a directed grant: the grantor (FromUserID) extends one
// permission over one resource type to the grantee (ToUserID), optionally
// scoped to a single resource instance and optionally time-bounded.
type Delegation struct {
	ID           int64          `json:"id"`
	FromUserID   int64          `json:"from_user_id"`
	ToUserID     int64          `json:"to_user_id"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   *string        `json:"resource_id,omitempty"`
	Permission   PermissionKind `json:"permission"`
	IsActive     bool           `json:"is_active"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsWildcard reports whether the grant covers every resource of its type.
func (d *Delegation) IsWildcard() bool {
	return d.ResourceID == nil
}

// AppliesTo reports whether the grant covers the queried resource instance.
// A wildcard grant covers any resource of the type, including an unscoped
// (empty) query.
func (d *Delegation) AppliesTo(resourceID string) bool {
	if d.ResourceID == nil {
		return true
	}
	return resourceID != "" && *d.ResourceID == resourceID
}

// IsLive reports whether the grant is effective at the given instant:
// active, and either unexpired or without an expiry. The expiry bound is
// exclusive: the grant is valid while now < expires_at.
func (d *Delegation) IsLive(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ExpiresAt == nil {
		return true
	}
	return now.Before(*d.ExpiresAt)
}

func FromDataModel(d *delegationDatamodel.Delegation) *Delegation {
	return &Delegation{
		ID:           d.ID,
		FromUserID:   d.FromUserID,
		ToUserID:     d.ToUserID,
		ResourceType: ResourceType(d.ResourceType),
		ResourceID:   d.ResourceID,
		Permission:   PermissionKind(d.Permission),
		IsActive:     d.IsActive,
		ExpiresAt:    d.ExpiresAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
