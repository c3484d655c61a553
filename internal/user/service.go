package user

import (
	"fmt"
	"strings"
)

const maxSearchResults = 20

type Service struct {
	repo Repository
}

type Repository interface {
	GetByID(userID int64) (*User, error)
	Search(query string, limit int) ([]*User, error)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// SearchUsers matches name or email by prefix and returns public profiles.
// Empty or whitespace-only queries yield no results.
func (s *Service) SearchUsers(query string) ([]PublicProfile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []PublicProfile{}, nil
	}

	users, err := s.repo.Search(query, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	profiles := make([]PublicProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Public()
	}
	return profiles, nil
}
