package rfq

import (
	"errors"
	"time"
)

type CreateRFQDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Quantity    int64      `json:"quantity"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (dto CreateRFQDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if dto.Quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}
	if dto.Deadline != nil && dto.Deadline.Before(time.Now()) {
		return errors.New("deadline cannot be in the past")
	}
	return nil
}

// UpdateRFQDTO carries a partial update; nil fields are left unchanged.
type UpdateRFQDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Quantity    *int64     `json:"quantity,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (dto UpdateRFQDTO) Validate() error {
	if dto.Title == nil && dto.Description == nil && dto.Category == nil &&
		dto.Quantity == nil && dto.Deadline == nil {
		return errors.New("at least one field must be provided")
	}
	if dto.Title != nil && (*dto.Title == "" || len(*dto.Title) > 200) {
		return errors.New("title must be between 1 and 200 characters")
	}
	if dto.Quantity != nil && *dto.Quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}
	return nil
}
