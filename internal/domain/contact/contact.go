package contact

import (
	"time"

	"github.com/google/uuid"
)

// Message has no approval state: it is write-only for the public and readable
// by admins.
type Message struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Subject         string    `json:"subject"`
	Message         string    `json:"message"`
	NewsletterOptIn bool      `json:"newsletterOptIn"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateMessageRequest struct {
	FirstName       string `json:"firstName" binding:"required,min=1,max=80"`
	LastName        string `json:"lastName" binding:"required,min=1,max=80"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"omitempty,max=20"`
	Subject         string `json:"subject" binding:"required,min=2,max=160"`
	Message         string `json:"message" binding:"required,min=2,max=4000"`
	NewsletterOptIn bool   `json:"newsletterOptIn"`
}

func NewFromCreateRequest(req CreateMessageRequest) Message {
	return Message{
		ID:              uuid.NewString(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Subject:         req.Subject,
		Message:         req.Message,
		NewsletterOptIn: req.NewsletterOptIn,
		CreatedAt:       time.Now().UTC(),
	}
}
