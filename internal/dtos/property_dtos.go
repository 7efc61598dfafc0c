package dtos

import "github.com/crowdhq/crowd-client-go/internal/models"

// PropertyInput is the payload for creating or updating a listing. Update
// sends a sparse version of the same shape; zero-valued optional fields are
// omitted from the wire.
type PropertyInput struct {
	Title            string                   `json:"title,omitempty" validate:"omitempty,min=3"`
	Description      string                   `json:"description,omitempty"`
	PropertyType     models.PropertyType      `json:"propertyType,omitempty"`
	Bedrooms         *int                     `json:"bedrooms,omitempty" validate:"omitempty,min=0"`
	Bathrooms        *int                     `json:"bathrooms,omitempty" validate:"omitempty,min=0"`
	Size             *float64                 `json:"size,omitempty" validate:"omitempty,gt=0"`
	Features         []models.PropertyFeature `json:"features,omitempty"`
	Address          *models.PropertyAddress  `json:"address,omitempty"`
	Price            *models.Price            `json:"price,omitempty"`
	AvailabilityDate string                   `json:"availabilityDate,omitempty"`
	Status           models.PropertyStatus    `json:"status,omitempty"`
}

// ImageFile is a local file reference queued for multipart upload.
type ImageFile struct {
	Path     string
	MIME     string
	Filename string
}
