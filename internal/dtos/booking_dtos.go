package dtos

import (
	"time"

	"github.com/crowdhq/crowd-client-go/internal/models"
)

// BookViewingRequest books a property viewing. The booking store fills a zero
// ScheduledDate with its selected date before sending.
type BookViewingRequest struct {
	PropertyID    string    `json:"propertyId" validate:"required"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Notes         string    `json:"notes,omitempty"`
}

// RescheduleRequest updates an existing viewing.
type RescheduleRequest struct {
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type UpdateViewingStatusRequest struct {
	Status models.ViewingStatus `json:"status" validate:"required,oneof=pending confirmed completed canceled no_show"`
	Notes  string               `json:"notes,omitempty"`
}
