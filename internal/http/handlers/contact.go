package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/domain/contact"
)

type ContactStore interface {
	Create(ctx context.Context, m contact.Message) (contact.Message, error)
	List(ctx context.Context) ([]contact.Message, error)
}

type ContactHandler struct {
	repo ContactStore
}

func NewContactHandler(repo ContactStore) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// SubmitMessage accepts a contact form submission from anyone, no account
// needed.
func (h *ContactHandler) SubmitMessage(ctx *gin.Context) {
	var req contact.CreateMessageRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, contact.NewFromCreateRequest(req))

	if err != nil {
		RespondInternal(ctx, "Could not submit message")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":      created.ID,
		"message": "Thank you for reaching out. We will get back to you soon.",
	})
}

func (h *ContactHandler) ListMessages(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	messages, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list messages")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": messages,
		"count": len(messages),
	})
}
