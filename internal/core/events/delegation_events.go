package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDelegationCreated = "delegation.created"
	EventTypeDelegationUpdated = "delegation.updated"
	EventTypeDelegationRevoked = "delegation.revoked"
)

// DelegationCreatedEvent records a new grant for the audit stream.
type DelegationCreatedEvent struct {
	BaseEvent
	DelegationID int64  `json:"delegation_id"`
	FromUserID   int64  `json:"from_user_id"`
	ToUserID     int64  `json:"to_user_id"`
	ResourceType string `json:"resource_type"`
	Permission   string `json:"permission"`
}

func NewDelegationCreatedEvent(delegationID, fromUserID, toUserID int64, resourceType, permission string) *DelegationCreatedEvent {
	return &DelegationCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDelegationCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"delegation_id": delegationID,
				"from_user_id":  fromUserID,
				"to_user_id":    toUserID,
				"resource_type": resourceType,
				"permission":    permission,
			},
		},
		DelegationID: delegationID,
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		ResourceType: resourceType,
		Permission:   permission,
	}
}

// DelegationUpdatedEvent records a lifecycle change (activation toggle or
// expiry change) on an existing grant.
type DelegationUpdatedEvent struct {
	BaseEvent
	DelegationID int64      `json:"delegation_id"`
	ActorID      int64      `json:"actor_id"`
	IsActive     *bool      `json:"is_active,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ClearExpiry  bool       `json:"clear_expiry,omitempty"`
}

func NewDelegationUpdatedEvent(delegationID, actorID int64, isActive *bool, expiresAt *time.Time, clearExpiry bool) *DelegationUpdatedEvent {
	data := map[string]interface{}{
		"delegation_id": delegationID,
		"actor_id":      actorID,
	}
	if isActive != nil {
		data["is_active"] = *isActive
	}
	if clearExpiry {
		data["clear_expiry"] = true
	} else if expiresAt != nil {
		data["expires_at"] = expiresAt.Format(time.RFC3339)
	}

	return &DelegationUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDelegationUpdated,
			Timestamp: time.Now(),
			Data:      data,
		},
		DelegationID: delegationID,
		ActorID:      actorID,
		IsActive:     isActive,
		ExpiresAt:    expiresAt,
		ClearExpiry:  clearExpiry,
	}
}

// DelegationRevokedEvent records a hard delete. The store keeps no tombstone,
// so this event is the only retained trace of a removed grant.
type DelegationRevokedEvent struct {
	BaseEvent
	DelegationID int64  `json:"delegation_id"`
	ActorID      int64  `json:"actor_id"`
	ToUserID     int64  `json:"to_user_id"`
	ResourceType string `json:"resource_type"`
	Permission   string `json:"permission"`
}

func NewDelegationRevokedEvent(delegationID, actorID, toUserID int64, resourceType, permission string) *DelegationRevokedEvent {
	return &DelegationRevokedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDelegationRevoked,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"delegation_id": delegationID,
				"actor_id":      actorID,
				"to_user_id":    toUserID,
				"resource_type": resourceType,
				"permission":    permission,
			},
		},
		DelegationID: delegationID,
		ActorID:      actorID,
		ToUserID:     toUserID,
		ResourceType: resourceType,
		Permission:   permission,
	}
}
