package rfq

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/bidquo/rfq-marketplace/internal"
	"github.com/bidquo/rfq-marketplace/internal/delegation"
)

type Repository interface {
	Create(r *RFQ) error
	GetByID(id int64) (*RFQ, error)
	Update(r *RFQ) error
	ListOpen(limit, offset int) ([]*RFQ, error)
	ListByBuyer(buyerID int64, limit, offset int) ([]*RFQ, error)
}

// PermissionChecker resolves delegated permissions; the delegation engine
// satisfies it.
type PermissionChecker interface {
	CheckPermission(subjectID int64, resourceType delegation.ResourceType, permission delegation.PermissionKind, resourceID string) (bool, error)
}

// CategoryValidator reports whether a category name is currently selectable.
// The category service satisfies it.
type CategoryValidator interface {
	IsValidCategory(name string) bool
}

type Service struct {
	repo       Repository
	checker    PermissionChecker
	categories CategoryValidator
	logger     *slog.Logger
}

func NewService(repo Repository, checker PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		checker: checker,
		logger:  logger,
	}
}

// WithCategoryCatalog enables category validation against the curated list.
// Without it any non-empty category string is accepted.
func (s *Service) WithCategoryCatalog(v CategoryValidator) *Service {
	s.categories = v
	return s
}

func (s *Service) validCategory(name string) bool {
	if name == "" || s.categories == nil {
		return true
	}
	return s.categories.IsValidCategory(name)
}

func (s *Service) CreateRFQ(buyerID int64, companyID *int64, dto CreateRFQDTO) (*RFQ, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if companyID == nil {
		return nil, internal.NewValidationError("user has no company", internal.ErrCodeValidationFailed)
	}
	if !s.validCategory(dto.Category) {
		return nil, internal.NewValidationError("unknown category", internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	r := &RFQ{
		BuyerID:     buyerID,
		CompanyID:   *companyID,
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		Quantity:    dto.Quantity,
		Status:      StatusOpen,
		Deadline:    dto.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(r); err != nil {
		s.logger.Error("failed to create rfq", "error", err, "buyer_id", buyerID)
		return nil, internal.NewUnavailableError("rfq store unreachable", err)
	}

	s.logger.Info("rfq created", "rfq_id", r.ID, "buyer_id", buyerID, "title", r.Title)
	return r, nil
}

func (s *Service) GetRFQ(id int64) (*RFQ, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get rfq", "error", err, "rfq_id", id)
		return nil, internal.NewUnavailableError("rfq store unreachable", err)
	}
	if r == nil {
		return nil, internal.NewNotFoundError("RFQ not found", internal.ErrCodeRFQNotFound)
	}
	return r, nil
}

// UpdateRFQ edits an open request for quote. Non-owners need a live delegated
// edit grant covering this RFQ; owners and admins pass directly.
func (s *Service) UpdateRFQ(actorID int64, actorRole string, id int64, dto UpdateRFQDTO) (*RFQ, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	r, err := s.GetRFQ(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeEdit(actorID, actorRole, r); err != nil {
		return nil, err
	}

	if !r.IsOpen() {
		return nil, internal.NewConflictError("RFQ is no longer open", internal.ErrCodeRFQClosed)
	}

	if dto.Title != nil {
		r.Title = *dto.Title
	}
	if dto.Description != nil {
		r.Description = *dto.Description
	}
	if dto.Category != nil {
		if !s.validCategory(*dto.Category) {
			return nil, internal.NewValidationError("unknown category", internal.ErrCodeValidationFailed)
		}
		r.Category = *dto.Category
	}
	if dto.Quantity != nil {
		r.Quantity = *dto.Quantity
	}
	if dto.Deadline != nil {
		r.Deadline = dto.Deadline
	}
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(r); err != nil {
		s.logger.Error("failed to update rfq", "error", err, "rfq_id", id)
		return nil, internal.NewUnavailableError("rfq store unreachable", err)
	}

	s.logger.Info("rfq updated", "rfq_id", id, "actor_id", actorID)
	return r, nil
}

func (s *Service) CloseRFQ(actorID int64, actorRole string, id int64) (*RFQ, error) {
	r, err := s.GetRFQ(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeEdit(actorID, actorRole, r); err != nil {
		return nil, err
	}

	if !r.IsOpen() {
		return nil, internal.NewConflictError("RFQ is already closed", internal.ErrCodeRFQClosed)
	}

	r.Close()
	if err := s.repo.Update(r); err != nil {
		s.logger.Error("failed to close rfq", "error", err, "rfq_id", id)
		return nil, internal.NewUnavailableError("rfq store unreachable", err)
	}

	s.logger.Info("rfq closed", "rfq_id", id, "actor_id", actorID)
	return r, nil
}

// authorizeEdit lets the owner and admins through, then falls back to the
// delegation engine for everyone else.
func (s *Service) authorizeEdit(actorID int64, actorRole string, r *RFQ) error {
	if r.BuyerID == actorID || actorRole == delegation.RoleAdmin {
		return nil
	}

	granted, err := s.checker.CheckPermission(actorID,
		delegation.ResourceRFQ, delegation.PermissionEdit, strconv.FormatInt(r.ID, 10))
	if err != nil {
		return err
	}
	if !granted {
		s.logger.Warn("rfq edit denied",
			"rfq_id", r.ID,
			"actor_id", actorID,
			"owner_id", r.BuyerID)
		return internal.NewForbiddenError("no permission to edit this RFQ", internal.ErrCodeRFQEditDenied)
	}
	return nil
}

func (s *Service) ListOpenRFQs(limit, offset int) ([]*RFQ, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rfqs, err := s.repo.ListOpen(limit, offset)
	if err != nil {
		s.logger.Error("failed to list open rfqs", "error", err)
		return nil, internal.NewUnavailableError("rfq store unreachable", err)
	}
	return rfqs, nil
}

func (s *Service) ListMyRFQs(buyerID int64, limit, offset int) ([]*RFQ, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rfqs, err := s.repo.ListByBuyer(buyerID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list buyer rfqs", "error", err, "buyer_id", buyerID)
		return nil, internal.NewUnavailableError("rfq store unreachable", err)
	}
	return rfqs, nil
}
