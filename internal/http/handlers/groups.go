package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/domain/group"
)

type GroupsStore interface {
	List(ctx context.Context) ([]group.Group, error)
}

type GroupsHandler struct {
	repo GroupsStore
}

func NewGroupsHandler(repo GroupsStore) *GroupsHandler {
	return &GroupsHandler{repo: repo}
}

func (h *GroupsHandler) ListGroups(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	groups, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list community groups")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": groups,
		"count": len(groups),
	})
}
