package company

import (
	"log/slog"
	"time"

	"github.com/bidquo/rfq-marketplace/internal"
)

type Repository interface {
	Create(c *Company) error
	GetByID(id int64) (*Company, error)
	List(limit, offset int) ([]*Company, error)
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

func (s *Service) CreateCompany(dto CreateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	c := &Company{
		Name:        dto.Name,
		Description: dto.Description,
		Website:     dto.Website,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create company", "error", err, "name", dto.Name)
		return nil, internal.NewUnavailableError("company store unreachable", err)
	}

	s.logger.Info("company created", "company_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) GetCompany(id int64) (*Company, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get company", "error", err, "company_id", id)
		return nil, internal.NewUnavailableError("company store unreachable", err)
	}
	if c == nil {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	return c, nil
}

func (s *Service) ListCompanies(limit, offset int) ([]*Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	companies, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, internal.NewUnavailableError("company store unreachable", err)
	}
	return companies, nil
}
