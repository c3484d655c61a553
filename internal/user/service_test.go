package user_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bidquo/rfq-marketplace/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[int64]*user.User
	searchError error
	getError    error
	lastQuery   string
	lastLimit   int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*user.User)}
}

func (m *mockUserRepository) GetByID(userID int64) (*user.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, exists := m.users[userID]
	if !exists {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Search(query string, limit int) ([]*user.User, error) {
	m.lastQuery = query
	m.lastLimit = limit
	if m.searchError != nil {
		return nil, m.searchError
	}
	var out []*user.User
	for _, u := range m.users {
		if strings.HasPrefix(strings.ToLower(u.Name), strings.ToLower(query)) ||
			strings.HasPrefix(strings.ToLower(u.Email), strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	return out, nil
}

var _ = Describe("UserService", func() {
	var (
		service *user.Service
		repo    *mockUserRepository
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		service = user.NewService(repo)

		repo.users[1] = &user.User{ID: 1, Name: "Maya Buyer", Email: "maya@acme.example", Role: "BUYER", IsActive: true}
		repo.users[2] = &user.User{ID: 2, Name: "Sam Supplier", Email: "sam@bolt.example", Role: "SUPPLIER", IsActive: true}
	})

	Describe("GetByID", func() {
		It("returns the user", func() {
			u, err := service.GetByID(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(u.Name).To(Equal("Maya Buyer"))
		})

		It("wraps repository errors", func() {
			_, err := service.GetByID(999)

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, user.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("SearchUsers", func() {
		It("matches by name prefix and projects public profiles", func() {
			profiles, err := service.SearchUsers("maya")

			Expect(err).ToNot(HaveOccurred())
			Expect(profiles).To(HaveLen(1))
			Expect(profiles[0].Name).To(Equal("Maya Buyer"))
			Expect(profiles[0].Email).To(Equal("maya@acme.example"))
		})

		It("trims surrounding whitespace before searching", func() {
			profiles, err := service.SearchUsers("  sam  ")

			Expect(err).ToNot(HaveOccurred())
			Expect(profiles).To(HaveLen(1))
			Expect(repo.lastQuery).To(Equal("sam"))
		})

		It("returns an empty set for a blank query without touching the store", func() {
			profiles, err := service.SearchUsers("   ")

			Expect(err).ToNot(HaveOccurred())
			Expect(profiles).To(BeEmpty())
			Expect(repo.lastQuery).To(BeEmpty())
		})

		It("caps the result size", func() {
			_, err := service.SearchUsers("a")

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(20))
		})

		It("wraps repository errors", func() {
			repo.searchError = errors.New("connection refused")

			_, err := service.SearchUsers("maya")

			Expect(err).To(HaveOccurred())
		})
	})
})
