package company

import "errors"

type CreateCompanyDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Website     *string `json:"website,omitempty"`
}

func (dto CreateCompanyDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 200 {
		return errors.New("name must be less than 200 characters")
	}
	return nil
}
