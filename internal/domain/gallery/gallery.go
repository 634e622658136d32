package gallery

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category,omitempty"`
	IsVideo   bool      `json:"isVideo"`
	CreatedBy string    `json:"createdBy,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("gallery item not found")

type CreateItemRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=160"`
	ImageURL string `json:"imageUrl" binding:"required,url"`
	Category string `json:"category" binding:"omitempty,max=60"`
	IsVideo  bool   `json:"isVideo"`
}

func NewFromCreateRequest(req CreateItemRequest, createdBy string, autoApprove bool) Item {
	now := time.Now().UTC()

	return Item{
		ID:        uuid.NewString(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Category:  req.Category,
		IsVideo:   req.IsVideo,
		CreatedBy: createdBy,
		Approved:  autoApprove,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
