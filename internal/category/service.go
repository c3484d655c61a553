package category

import (
	"log/slog"

	"github.com/bidquo/rfq-marketplace/internal"
	categoryDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.RFQCategory, error)
	GetByName(name string) (*categoryDatamodel.RFQCategory, error)
	Create(category *categoryDatamodel.RFQCategory) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAllCategories returns the active categories as picker entries.
func (s *Service) GetAllCategories() ([]CategoryResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get categories", "error", err)
		return nil, internal.NewUnavailableError("category store unreachable", err)
	}

	var responses []CategoryResponse
	for _, row := range rows {
		domainCategory := FromDataModel(row)
		if domainCategory.IsActive {
			responses = append(responses, domainCategory.ToResponse())
		}
	}
	return responses, nil
}

// IsValidCategory reports whether an active category with this name exists.
// Store errors answer false; a degraded catalog must not admit free-text
// categories.
func (s *Service) IsValidCategory(name string) bool {
	row, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Warn("error checking category validity", "name", name, "error", err)
		return false
	}
	return row != nil && row.IsActive
}

func (s *Service) CreateCategory(dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check existing category", "error", err, "name", dto.Name)
		return nil, internal.NewUnavailableError("category store unreachable", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("category already exists", internal.ErrCodeValidationFailed)
	}

	c := NewCategory(dto.Name, dto.Description)
	row := ToDataModel(c)
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, internal.NewUnavailableError("category store unreachable", err)
	}
	c.ID = row.ID

	s.logger.Info("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// DeactivateCategory retires a category from the picker. Existing RFQs keep
// their stored category name.
func (s *Service) DeactivateCategory(id int64) error {
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate category", "error", err, "category_id", id)
		return internal.NewUnavailableError("category store unreachable", err)
	}
	s.logger.Info("category deactivated", "category_id", id)
	return nil
}
