package delegation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bidquo/rfq-marketplace/internal"
	delegationDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/delegation"
	"github.com/bidquo/rfq-marketplace/internal/core/events"
)

// RepositoryAPI is the delegation store contract. Implementations translate
// storage failures to plain errors; the service maps them to the
// unavailable taxonomy.
type RepositoryAPI interface {
	Create(row *delegationDatamodel.Delegation) error
	GetByID(id int64) (*delegationDatamodel.Delegation, error)
	// UpdateGuarded applies the updates only if the row's updated_at still
	// equals expectedUpdatedAt, reporting whether a row was written.
	UpdateGuarded(id int64, expectedUpdatedAt time.Time, updates map[string]interface{}) (bool, error)
	Delete(id int64) error
	ListFrom(userID int64) ([]*delegationDatamodel.Delegation, error)
	ListTo(userID int64) ([]*delegationDatamodel.Delegation, error)
	FindForSubject(toUserID int64, resourceType, permission string) ([]*delegationDatamodel.Delegation, error)
}

// UserDirectory resolves user records from the identity store. A missing
// user is reported as (nil, nil), not an error.
type UserDirectory interface {
	GetUserInfo(userID int64) (*UserInfo, error)
}

// UserInfo is what the engine needs to know about a user: the public
// profile for hydration plus the static role for authority checks.
type UserInfo struct {
	UserProfile
	Role string
}

// Actor is the authenticated acting user on every mutating operation.
type Actor struct {
	ID   int64
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

const updateAttempts = 3

// Service is the delegation engine: it validates grant creation against the
// resource catalog, enforces lifecycle transitions, and resolves effective
// permissions.
type Service struct {
	repo    RepositoryAPI
	users   UserDirectory
	catalog *Catalog
	events  EventPublisher
	cache   *expirable.LRU[string, bool]
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo RepositoryAPI, users UserDirectory, catalog *Catalog, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		catalog: catalog,
		events:  publisher,
		logger:  logger,
		now:     time.Now,
	}
}

// WithCheckCache enables the effective-permission check cache. The TTL
// bounds how stale a deactivation or expiry change may be observed; a zero
// TTL leaves caching off.
func (s *Service) WithCheckCache(size int, ttl time.Duration) *Service {
	if ttl > 0 && size > 0 {
		s.cache = expirable.NewLRU[string, bool](size, nil, ttl)
	}
	return s
}

// WithClock overrides the evaluation clock. Only server time is ever used;
// no client-supplied time is trusted.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates and persists a new grant from the acting user. The
// grantor is always the actor; the public API never accepts a from_user_id.
func (s *Service) Create(actor Actor, dto CreateDelegationDTO) (*Delegation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	resourceType := ResourceType(dto.ResourceType)
	permission := PermissionKind(dto.Permission)

	if !s.catalog.ValidResourceType(resourceType) {
		return nil, internal.NewValidationError(
			fmt.Sprintf("unknown resource type %q", dto.ResourceType), internal.ErrCodeInvalidResource)
	}
	if !s.catalog.ValidPermission(permission) {
		return nil, internal.NewValidationError(
			fmt.Sprintf("unknown permission %q", dto.Permission), internal.ErrCodeInvalidPerm)
	}
	if !s.catalog.IsApplicable(permission, resourceType) {
		return nil, internal.NewValidationError(
			fmt.Sprintf("permission %q is not valid for resource type %q", dto.Permission, dto.ResourceType),
			internal.ErrCodePermNotForType)
	}

	if dto.ToUserID == actor.ID {
		return nil, internal.ErrSelfDelegation
	}

	now := s.now()
	if dto.ExpiresAt != nil && !dto.ExpiresAt.After(now) {
		return nil, internal.ErrExpiryInPast
	}

	grantee, err := s.users.GetUserInfo(dto.ToUserID)
	if err != nil {
		s.logger.Error("failed to resolve grantee", "error", err, "to_user_id", dto.ToUserID)
		return nil, internal.NewUnavailableError("identity store unreachable", err)
	}
	if grantee == nil {
		return nil, internal.ErrGranteeNotFound
	}

	authorized, err := s.grantorHolds(actor, permission, resourceType, dto.ResourceID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		s.logger.Warn("delegation denied: grantor lacks permission",
			"from_user_id", actor.ID,
			"resource_type", resourceType,
			"permission", permission)
		return nil, internal.ErrGrantorAuthority
	}

	row := &delegationDatamodel.Delegation{
		FromUserID:   actor.ID,
		ToUserID:     dto.ToUserID,
		ResourceType: string(resourceType),
		ResourceID:   dto.ResourceID,
		Permission:   string(permission),
		IsActive:     true,
		ExpiresAt:    dto.ExpiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create delegation", "error", err, "from_user_id", actor.ID)
		return nil, internal.NewUnavailableError("delegation store unreachable", err)
	}

	s.invalidateChecks()
	s.publish(events.NewDelegationCreatedEvent(row.ID, row.FromUserID, row.ToUserID, row.ResourceType, row.Permission))

	s.logger.Info("delegation created",
		"delegation_id", row.ID,
		"from_user_id", row.FromUserID,
		"to_user_id", row.ToUserID,
		"resource_type", row.ResourceType,
		"permission", row.Permission,
		"wildcard", row.ResourceID == nil)

	return FromDataModel(row), nil
}

// grantorHolds is the fail-closed authority check: the grantor must hold at
// least the permission being delegated, natively via role or transitively
// via a live delegation whose scope covers the requested scope.
func (s *Service) grantorHolds(actor Actor, pk PermissionKind, rt ResourceType, resourceID *string) (bool, error) {
	if s.catalog.RoleHolds(actor.Role, pk, rt) {
		return true, nil
	}

	rows, err := s.repo.FindForSubject(actor.ID, string(rt), string(pk))
	if err != nil {
		s.logger.Error("failed to read grantor delegations", "error", err, "user_id", actor.ID)
		return false, internal.NewUnavailableError("delegation store unreachable", err)
	}

	now := s.now()
	for _, row := range rows {
		grant := FromDataModel(row)
		if !grant.IsLive(now) {
			continue
		}
		// A wildcard grant covers any requested scope; a specific grant
		// only authorizes re-extending that exact resource.
		if grant.IsWildcard() {
			return true, nil
		}
		if resourceID != nil && *grant.ResourceID == *resourceID {
			return true, nil
		}
	}
	return false, nil
}

// Update applies a partial lifecycle change. Only the grantor or an
// administrator may mutate a delegation.
func (s *Service) Update(actor Actor, id int64, dto UpdateDelegationDTO) (*Delegation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.getOwned(actor, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !dto.ClearExpiry && dto.ExpiresAt != nil && !dto.ExpiresAt.After(now) {
		return nil, internal.ErrExpiryInPast
	}

	updates := map[string]interface{}{"updated_at": now}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.ClearExpiry {
		updates["expires_at"] = nil
	} else if dto.ExpiresAt != nil {
		updates["expires_at"] = *dto.ExpiresAt
	}

	// Guarded write so concurrent updates to the same row cannot silently
	// drop each other; retry after re-reading on a miss.
	for attempt := 0; attempt < updateAttempts; attempt++ {
		applied, err := s.repo.UpdateGuarded(id, row.UpdatedAt, updates)
		if err != nil {
			s.logger.Error("failed to update delegation", "error", err, "delegation_id", id)
			return nil, internal.NewUnavailableError("delegation store unreachable", err)
		}
		if applied {
			s.invalidateChecks()
			s.publish(events.NewDelegationUpdatedEvent(id, actor.ID, dto.IsActive, dto.ExpiresAt, dto.ClearExpiry))

			updated, err := s.repo.GetByID(id)
			if err != nil {
				return nil, internal.NewUnavailableError("delegation store unreachable", err)
			}
			// A concurrent Remove may land between the write and this read.
			if updated == nil {
				return nil, internal.ErrDelegationNotFound
			}
			s.logger.Info("delegation updated", "delegation_id", id, "actor_id", actor.ID)
			return FromDataModel(updated), nil
		}

		row, err = s.repo.GetByID(id)
		if err != nil {
			return nil, internal.NewUnavailableError("delegation store unreachable", err)
		}
		if row == nil {
			return nil, internal.ErrDelegationNotFound
		}
	}

	return nil, internal.NewConflictError("delegation was modified concurrently, retry", internal.ErrCodeConcurrentUpdate)
}

// Remove hard-deletes a grant. The revocation is published to the audit
// event stream; no tombstone row is kept.
func (s *Service) Remove(actor Actor, id int64) error {
	row, err := s.getOwned(actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete delegation", "error", err, "delegation_id", id)
		return internal.NewUnavailableError("delegation store unreachable", err)
	}

	s.invalidateChecks()
	s.publish(events.NewDelegationRevokedEvent(row.ID, actor.ID, row.ToUserID, row.ResourceType, row.Permission))

	s.logger.Info("delegation removed", "delegation_id", id, "actor_id", actor.ID)
	return nil
}

func (s *Service) getOwned(actor Actor, id int64) (*delegationDatamodel.Delegation, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load delegation", "error", err, "delegation_id", id)
		return nil, internal.NewUnavailableError("delegation store unreachable", err)
	}
	if row == nil {
		return nil, internal.ErrDelegationNotFound
	}
	if row.FromUserID != actor.ID && !actor.IsAdmin() {
		return nil, internal.ErrNotGrantor
	}
	return row, nil
}

// ListFrom returns the actor's outgoing delegations hydrated with each
// grantee's public profile.
func (s *Service) ListFrom(userID int64) ([]DelegationResponse, error) {
	rows, err := s.repo.ListFrom(userID)
	if err != nil {
		s.logger.Error("failed to list outgoing delegations", "error", err, "user_id", userID)
		return nil, internal.NewUnavailableError("delegation store unreachable", err)
	}

	responses := make([]DelegationResponse, 0, len(rows))
	for _, row := range rows {
		resp := DelegationResponse{Delegation: *FromDataModel(row)}
		resp.Grantee = s.lookupProfile(row.ToUserID)
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListTo returns the actor's incoming delegations hydrated with each
// grantor's public profile.
func (s *Service) ListTo(userID int64) ([]DelegationResponse, error) {
	rows, err := s.repo.ListTo(userID)
	if err != nil {
		s.logger.Error("failed to list incoming delegations", "error", err, "user_id", userID)
		return nil, internal.NewUnavailableError("delegation store unreachable", err)
	}

	responses := make([]DelegationResponse, 0, len(rows))
	for _, row := range rows {
		resp := DelegationResponse{Delegation: *FromDataModel(row)}
		resp.Grantor = s.lookupProfile(row.FromUserID)
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *Service) lookupProfile(userID int64) *UserProfile {
	info, err := s.users.GetUserInfo(userID)
	if err != nil || info == nil {
		if err != nil {
			s.logger.Warn("failed to hydrate user profile", "error", err, "user_id", userID)
		}
		return nil
	}
	profile := info.UserProfile
	return &profile
}

// CheckPermission decides whether the subject currently holds the permission
// over the resource via delegation. "Not granted" is a valid negative
// answer, never an error.
func (s *Service) CheckPermission(subjectID int64, resourceType ResourceType, permission PermissionKind, resourceID string) (bool, error) {
	if !s.catalog.ValidResourceType(resourceType) {
		return false, internal.NewValidationError(
			fmt.Sprintf("unknown resource type %q", resourceType), internal.ErrCodeInvalidResource)
	}
	if !s.catalog.ValidPermission(permission) {
		return false, internal.NewValidationError(
			fmt.Sprintf("unknown permission %q", permission), internal.ErrCodeInvalidPerm)
	}

	cacheKey := fmt.Sprintf("%d|%s|%s|%s", subjectID, resourceType, permission, resourceID)
	if s.cache != nil {
		if granted, ok := s.cache.Get(cacheKey); ok {
			return granted, nil
		}
	}

	rows, err := s.repo.FindForSubject(subjectID, string(resourceType), string(permission))
	if err != nil {
		s.logger.Error("failed to read delegations for check", "error", err, "subject_id", subjectID)
		return false, internal.NewUnavailableError("delegation store unreachable", err)
	}

	now := s.now()
	granted := false
	for _, row := range rows {
		grant := FromDataModel(row)
		if grant.AppliesTo(resourceID) && grant.IsLive(now) {
			granted = true
			break
		}
	}

	if s.cache != nil {
		s.cache.Add(cacheKey, granted)
	}
	return granted, nil
}

// HasPermission is the combined check used by route middleware: a native
// role grant passes immediately, otherwise delegations are consulted.
func (s *Service) HasPermission(userID int64, role, resourceType, permission, resourceID string) (bool, error) {
	rt := ResourceType(resourceType)
	pk := PermissionKind(permission)
	if s.catalog.RoleHolds(role, pk, rt) {
		return true, nil
	}
	return s.CheckPermission(userID, rt, pk, resourceID)
}

// GetMyPermissions enumerates the subject's full effective permission set:
// one tuple per live grant, deduplicated. The result is an unordered set.
func (s *Service) GetMyPermissions(subjectID int64) ([]PermissionTuple, error) {
	rows, err := s.repo.ListTo(subjectID)
	if err != nil {
		s.logger.Error("failed to enumerate permissions", "error", err, "subject_id", subjectID)
		return nil, internal.NewUnavailableError("delegation store unreachable", err)
	}

	now := s.now()
	seen := make(map[string]bool)
	tuples := make([]PermissionTuple, 0, len(rows))
	for _, row := range rows {
		grant := FromDataModel(row)
		if !grant.IsLive(now) {
			continue
		}
		key := string(grant.ResourceType) + "|" + string(grant.Permission)
		if grant.ResourceID != nil {
			key += "|" + *grant.ResourceID
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		tuples = append(tuples, PermissionTuple{
			ResourceType: grant.ResourceType,
			ResourceID:   grant.ResourceID,
			Permission:   grant.Permission,
		})
	}
	return tuples, nil
}

func (s *Service) invalidateChecks() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish delegation event", "error", err, "event_type", event.EventType())
	}
}
