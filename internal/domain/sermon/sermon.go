package sermon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Sermon struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Pastor       string    `json:"pastor"`
	Date         time.Time `json:"date"`
	Duration     string    `json:"duration,omitempty"`
	AudioURL     string    `json:"audioUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("sermon not found")

type CreateSermonRequest struct {
	Title        string    `json:"title" binding:"required,min=2,max=160"`
	Description  string    `json:"description" binding:"omitempty,max=2000"`
	Pastor       string    `json:"pastor" binding:"required,min=2,max=120"`
	Date         time.Time `json:"date" binding:"required"`
	Duration     string    `json:"duration" binding:"omitempty,max=40"`
	AudioURL     string    `json:"audioUrl" binding:"omitempty,url"`
	ThumbnailURL string    `json:"thumbnailUrl" binding:"omitempty,url"`
}

type UpdateSermonRequest struct {
	Title        string    `json:"title" binding:"required,min=2,max=160"`
	Description  string    `json:"description" binding:"omitempty,max=2000"`
	Pastor       string    `json:"pastor" binding:"required,min=2,max=120"`
	Date         time.Time `json:"date" binding:"required"`
	Duration     string    `json:"duration" binding:"omitempty,max=40"`
	AudioURL     string    `json:"audioUrl" binding:"omitempty,url"`
	ThumbnailURL string    `json:"thumbnailUrl" binding:"omitempty,url"`
}

func NewFromCreateRequest(req CreateSermonRequest, createdBy string, autoApprove bool) Sermon {
	now := time.Now().UTC()

	return Sermon{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Pastor:       req.Pastor,
		Date:         req.Date,
		Duration:     req.Duration,
		AudioURL:     req.AudioURL,
		ThumbnailURL: req.ThumbnailURL,
		CreatedBy:    createdBy,
		Approved:     autoApprove,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
