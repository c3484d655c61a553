package product

import (
	"log/slog"
	"time"

	"github.com/bidquo/rfq-marketplace/internal"
)

type Repository interface {
	Create(p *Product) error
	GetByID(id int64) (*Product, error)
	ListByCompany(companyID int64, limit, offset int) ([]*Product, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateProduct adds an entry to the supplier's showcase. The supplier must
// belong to a company.
func (s *Service) CreateProduct(companyID *int64, dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if companyID == nil {
		return nil, internal.NewValidationError("user has no company", internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	p := &Product{
		CompanyID:   *companyID,
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		ImageURL:    dto.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create product", "error", err, "company_id", *companyID)
		return nil, internal.NewUnavailableError("product store unreachable", err)
	}

	s.logger.Info("product created", "product_id", p.ID, "company_id", p.CompanyID)
	return p, nil
}

func (s *Service) GetProduct(id int64) (*Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get product", "error", err, "product_id", id)
		return nil, internal.NewUnavailableError("product store unreachable", err)
	}
	if p == nil {
		return nil, internal.NewNotFoundError("Product not found", internal.ErrCodeProductNotFound)
	}
	return p, nil
}

func (s *Service) ListCompanyProducts(companyID int64, limit, offset int) ([]*Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list products", "error", err, "company_id", companyID)
		return nil, internal.NewUnavailableError("product store unreachable", err)
	}
	return products, nil
}
