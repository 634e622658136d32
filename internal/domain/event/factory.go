package event

import (
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest stamps identity and timestamps. The approved flag
// follows the auto-approve policy: admin submissions go live immediately.
func NewFromCreateRequest(req CreateEventRequest, createdBy string, autoApprove bool) Event {
	now := time.Now().UTC()

	return Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		CreatedBy:   createdBy,
		Approved:    autoApprove,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
