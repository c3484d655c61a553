package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	passwords     map[string]string // email -> password hash
	userIDs       map[string]int64  // email -> userID
	usersByID     map[int64]*User
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	companyID := int64(10)
	return &mockUserRepository{
		passwords: map[string]string{
			"maya@acme.example": string(hashedPassword),
			"sam@bolt.example":  string(hashedPassword),
			"admin@bidquo.dev":  string(hashedPassword),
		},
		userIDs: map[string]int64{
			"maya@acme.example": 1,
			"sam@bolt.example":  2,
			"admin@bidquo.dev":  3,
		},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "maya@acme.example", Name: "Maya Buyer", Role: RoleBuyer, CompanyID: &companyID},
			2: {ID: 2, Email: "sam@bolt.example", Name: "Sam Supplier", Role: RoleSupplier, CompanyID: &companyID},
			3: {ID: 3, Email: "admin@bidquo.dev", Name: "Site Admin", Role: RoleAdmin},
		},
	}
}

func (m *mockUserRepository) GetPasswordForEmail(email string) (string, int64, error) {
	if m.returnError {
		return "", 0, m.errorToReturn
	}

	if hash, exists := m.passwords[email]; exists {
		return hash, m.userIDs[email], nil
	}
	return "", 0, ErrUserNotFound
}

func (m *mockUserRepository) GetUserByID(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}

	if user, exists := m.usersByID[userID]; exists {
		return user, nil
	}
	return nil, ErrUserNotFound
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockUserRepository
		tokenGen      *JWTTokenGenerator
		accessSecret  string        = "test-access-secret"
		refreshSecret string        = "test-refresh-secret"
		accessTTL     time.Duration = 15 * time.Minute
		refreshTTL    time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				// Given
				dto := LoginDTO{
					Email:    "maya@acme.example",
					Password: "correct_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should embed the user id in the access token claims", func() {
				dto := LoginDTO{
					Email:    "maya@acme.example",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("1"))
				gomega.Expect(claims.Email).To(gomega.Equal("maya@acme.example"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject a wrong password", func() {
				dto := LoginDTO{
					Email:    "maya@acme.example",
					Password: "wrong_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown email the same way", func() {
				dto := LoginDTO{
					Email:    "nobody@acme.example",
					Password: "correct_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should not leak repository failures", func() {
				mockRepo.returnError = true
				mockRepo.errorToReturn = errors.New("connection refused")

				_, err := service.Authenticate(LoginDTO{
					Email:    "maya@acme.example",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the payload is incomplete", func() {
			ginkgo.It("should require an email", func() {
				_, err := service.Authenticate(LoginDTO{Password: "correct_password"})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})

			ginkgo.It("should require a password", func() {
				_, err := service.Authenticate(LoginDTO{Email: "maya@acme.example"})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a fresh pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "sam@bolt.example",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(refreshed.RefreshToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("2"))
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject an expired token", func() {
			expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, -time.Minute, refreshTTL)
			token, err := expiredGen.GenerateAccessToken(1, "maya@acme.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			otherGen := NewJWTTokenGenerator("other-secret", "other-refresh", accessTTL, refreshTTL)
			token, err := otherGen.GenerateAccessToken(1, "maya@acme.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("GetUserByID", func() {
		ginkgo.It("should return the full acting identity", func() {
			user, err := service.GetUserByID(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Role).To(gomega.Equal(RoleBuyer))
			gomega.Expect(user.CompanyID).ToNot(gomega.BeNil())
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a hash that verifies", func() {
			hash, err := service.HashPassword("s3cret")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword(hash, "s3cret")).To(gomega.Succeed())
			gomega.Expect(VerifyPassword(hash, "wrong")).ToNot(gomega.Succeed())
		})
	})
})
