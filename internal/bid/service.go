package bid

import (
	"log/slog"
	"time"

	"github.com/bidquo/rfq-marketplace/internal"
	"github.com/bidquo/rfq-marketplace/internal/delegation"
	"github.com/bidquo/rfq-marketplace/internal/rfq"
)

const defaultCurrency = "USD"

type Repository interface {
	Create(b *Bid) error
	ListByRFQ(rfqID int64, limit, offset int) ([]*Bid, error)
	ListBySupplier(supplierID int64, limit, offset int) ([]*Bid, error)
}

// RFQDirectory exposes the RFQ lookups bidding depends on; the rfq service
// satisfies it.
type RFQDirectory interface {
	GetRFQ(id int64) (*rfq.RFQ, error)
}

type PermissionChecker interface {
	CheckPermission(subjectID int64, resourceType delegation.ResourceType, permission delegation.PermissionKind, resourceID string) (bool, error)
}

type Service struct {
	repo    Repository
	rfqs    RFQDirectory
	checker PermissionChecker
	logger  *slog.Logger
}

func NewService(repo Repository, rfqs RFQDirectory, checker PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		rfqs:    rfqs,
		checker: checker,
		logger:  logger,
	}
}

// SubmitBid places a bid on an open RFQ. Buyers cannot bid on their own
// requests.
func (s *Service) SubmitBid(supplierID int64, companyID *int64, dto SubmitBidDTO) (*Bid, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if companyID == nil {
		return nil, internal.NewValidationError("user has no company", internal.ErrCodeValidationFailed)
	}

	r, err := s.rfqs.GetRFQ(dto.RFQID)
	if err != nil {
		return nil, err
	}
	if r.BuyerID == supplierID {
		return nil, internal.NewValidationError("cannot bid on your own RFQ", internal.ErrCodeOwnRFQBid)
	}
	if !r.IsOpen() {
		return nil, internal.NewConflictError("RFQ is no longer open for bids", internal.ErrCodeRFQClosed)
	}

	currency := dto.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now()
	b := &Bid{
		RFQID:        dto.RFQID,
		SupplierID:   supplierID,
		CompanyID:    *companyID,
		AmountCents:  dto.AmountCents,
		Currency:     currency,
		LeadTimeDays: dto.LeadTimeDays,
		Note:         dto.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(b); err != nil {
		s.logger.Error("failed to create bid", "error", err, "rfq_id", dto.RFQID, "supplier_id", supplierID)
		return nil, internal.NewUnavailableError("bid store unreachable", err)
	}

	s.logger.Info("bid submitted",
		"bid_id", b.ID,
		"rfq_id", b.RFQID,
		"supplier_id", supplierID,
		"amount_cents", b.AmountCents)
	return b, nil
}

// ListBidsForRFQ is restricted to the RFQ owner and admins; anyone else needs
// a live scope-wide delegated view grant on bids.
func (s *Service) ListBidsForRFQ(actorID int64, actorRole string, rfqID int64, limit, offset int) ([]*Bid, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r, err := s.rfqs.GetRFQ(rfqID)
	if err != nil {
		return nil, err
	}

	if r.BuyerID != actorID && actorRole != delegation.RoleAdmin {
		granted, err := s.checker.CheckPermission(actorID, delegation.ResourceBid, delegation.PermissionView, "")
		if err != nil {
			return nil, err
		}
		if !granted {
			s.logger.Warn("bid listing denied", "rfq_id", rfqID, "actor_id", actorID)
			return nil, internal.NewForbiddenError("no permission to view bids for this RFQ", internal.ErrCodeBidViewDenied)
		}
	}

	bids, err := s.repo.ListByRFQ(rfqID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list bids", "error", err, "rfq_id", rfqID)
		return nil, internal.NewUnavailableError("bid store unreachable", err)
	}
	return bids, nil
}

func (s *Service) ListMyBids(supplierID int64, limit, offset int) ([]*Bid, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	bids, err := s.repo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list supplier bids", "error", err, "supplier_id", supplierID)
		return nil, internal.NewUnavailableError("bid store unreachable", err)
	}
	return bids, nil
}
