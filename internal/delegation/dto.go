package delegation

import (
	"time"

	"github.com/bidquo/rfq-marketplace/internal"
)

// CreateDelegationDTO is the request payload for creating a delegation. The
// grantor is always the acting user; it is never taken from the payload.
type CreateDelegationDTO struct {
	ToUserID     int64      `json:"to_user_id"`
	ResourceType string     `json:"resource_type"`
	ResourceID   *string    `json:"resource_id,omitempty"`
	Permission   string     `json:"permission"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func (dto CreateDelegationDTO) Validate() error {
	if dto.ToUserID == 0 {
		return internal.NewValidationFieldError("to_user_id", "to_user_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.ResourceType == "" {
		return internal.NewValidationFieldError("resource_type", "resource_type is required", internal.ErrCodeInvalidResource)
	}
	if dto.Permission == "" {
		return internal.NewValidationFieldError("permission", "permission is required", internal.ErrCodeInvalidPerm)
	}
	if dto.ResourceID != nil && *dto.ResourceID == "" {
		return internal.NewValidationFieldError("resource_id", "resource_id cannot be empty; omit it for a wildcard grant", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateDelegationDTO is a partial update: only the supplied fields change.
type UpdateDelegationDTO struct {
	IsActive  *bool      `json:"is_active,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// ClearExpiry removes the time bound; it wins over ExpiresAt when both
	// are supplied.
	ClearExpiry bool `json:"clear_expiry,omitempty"`
}

func (dto UpdateDelegationDTO) Validate() error {
	if dto.IsActive == nil && dto.ExpiresAt == nil && !dto.ClearExpiry {
		return internal.NewValidationError("at least one of is_active, expires_at or clear_expiry must be supplied", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UserProfile is the public subset of a user record used to hydrate
// delegation listings.
type UserProfile struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// DelegationResponse is a delegation hydrated with the counterpart's public
// profile: the grantee on outgoing listings, the grantor on incoming ones.
type DelegationResponse struct {
	Delegation
	Grantee *UserProfile `json:"grantee,omitempty"`
	Grantor *UserProfile `json:"grantor,omitempty"`
}

// PermissionTuple is one element of a subject's effective permission set.
type PermissionTuple struct {
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   *string        `json:"resource_id,omitempty"`
	Permission   PermissionKind `json:"permission"`
}

type CheckPermissionResponse struct {
	HasPermission bool `json:"hasPermission"`
}
