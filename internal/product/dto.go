package product

import "errors"

type CreateProductDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (dto CreateProductDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 200 {
		return errors.New("name must be less than 200 characters")
	}
	if len(dto.Description) > 2000 {
		return errors.New("description must be less than 2000 characters")
	}
	return nil
}
