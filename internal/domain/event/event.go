package event

import (
	"errors"
	"time"
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time,omitempty"`
	Location    string    `json:"location,omitempty"`
	Category    string    `json:"category"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("event not found")

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=120"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	Time        string    `json:"time" binding:"omitempty,max=40"`
	Location    string    `json:"location" binding:"omitempty,max=160"`
	Category    string    `json:"category" binding:"required,oneof=worship fellowship community youth"`
}

// a full update payload, applied only by the creator or an admin.
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=120"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	Time        string    `json:"time" binding:"omitempty,max=40"`
	Location    string    `json:"location" binding:"omitempty,max=160"`
	Category    string    `json:"category" binding:"required,oneof=worship fellowship community youth"`
}
