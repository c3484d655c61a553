package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bidquo/rfq-marketplace/internal"
	"github.com/bidquo/rfq-marketplace/internal/category"
	categoryDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

// Mock repository for testing
type mockCategoryRepository struct {
	rows        map[string]*categoryDatamodel.RFQCategory
	nextID      int64
	getAllError error
	getError    error
	createError error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		rows:   make(map[string]*categoryDatamodel.RFQCategory),
		nextID: 1,
	}
}

func (m *mockCategoryRepository) add(name string, active bool) {
	m.rows[name] = &categoryDatamodel.RFQCategory{
		ID:       m.nextID,
		Name:     name,
		IsActive: active,
	}
	m.nextID++
}

func (m *mockCategoryRepository) GetAll() ([]*categoryDatamodel.RFQCategory, error) {
	if m.getAllError != nil {
		return nil, m.getAllError
	}
	var out []*categoryDatamodel.RFQCategory
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *mockCategoryRepository) GetByName(name string) (*categoryDatamodel.RFQCategory, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.rows[name], nil
}

func (m *mockCategoryRepository) Create(row *categoryDatamodel.RFQCategory) error {
	if m.createError != nil {
		return m.createError
	}
	row.ID = m.nextID
	m.nextID++
	m.rows[row.Name] = row
	return nil
}

func (m *mockCategoryRepository) Deactivate(id int64) error {
	for _, row := range m.rows {
		if row.ID == id {
			row.IsActive = false
		}
	}
	return nil
}

var _ = Describe("CategoryService", func() {
	var (
		service *category.Service
		repo    *mockCategoryRepository
	)

	BeforeEach(func() {
		repo = newMockCategoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(repo, logger)

		repo.add("fasteners", true)
		repo.add("electronics", true)
		repo.add("asbestos", false)
	})

	Describe("GetAllCategories", func() {
		It("returns only active categories", func() {
			categories, err := service.GetAllCategories()

			Expect(err).ToNot(HaveOccurred())
			Expect(categories).To(HaveLen(2))
			for _, c := range categories {
				Expect(c.Name).ToNot(Equal("asbestos"))
			}
		})

		It("maps store failures to unavailable", func() {
			repo.getAllError = errors.New("connection refused")

			_, err := service.GetAllCategories()

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnavailable))
		})
	})

	Describe("IsValidCategory", func() {
		It("accepts an active category", func() {
			Expect(service.IsValidCategory("fasteners")).To(BeTrue())
		})

		It("rejects a deactivated category", func() {
			Expect(service.IsValidCategory("asbestos")).To(BeFalse())
		})

		It("rejects an unknown name", func() {
			Expect(service.IsValidCategory("unobtainium")).To(BeFalse())
		})

		It("answers false when the store is down", func() {
			repo.getError = errors.New("connection refused")
			Expect(service.IsValidCategory("fasteners")).To(BeFalse())
		})
	})

	Describe("CreateCategory", func() {
		It("creates a new active category", func() {
			created, err := service.CreateCategory(category.CreateCategoryDTO{
				Name:        "packaging",
				Description: "Boxes, crates and wrapping",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.IsActive).To(BeTrue())
			Expect(service.IsValidCategory("packaging")).To(BeTrue())
		})

		It("rejects an empty name", func() {
			_, err := service.CreateCategory(category.CreateCategoryDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("conflicts on a duplicate name", func() {
			_, err := service.CreateCategory(category.CreateCategoryDTO{Name: "fasteners"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})

	Describe("DeactivateCategory", func() {
		It("retires the category from the picker", func() {
			Expect(service.DeactivateCategory(1)).To(Succeed())
			Expect(service.IsValidCategory("fasteners")).To(BeFalse())
		})
	})
})
