package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/authz"
	"github.com/gracecommunity/churchhub/internal/cache"
	"github.com/gracecommunity/churchhub/internal/domain/gallery"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/middlewares"
	"github.com/gracecommunity/churchhub/internal/observability"
)

type GalleryStore interface {
	Create(ctx context.Context, item gallery.Item) (gallery.Item, error)
	GetByID(ctx context.Context, id string) (gallery.Item, error)
	ListApproved(ctx context.Context) ([]gallery.Item, error)
	ListByCreator(ctx context.Context, userID string) ([]gallery.Item, error)
	Delete(ctx context.Context, id string) error
}

const cacheKeyGallery = "public:gallery"

type GalleryHandler struct {
	repo  GalleryStore
	cache cache.Cache
	prom  *observability.Prom
}

func NewGalleryHandler(repo GalleryStore, c cache.Cache, prom *observability.Prom) *GalleryHandler {
	return &GalleryHandler{repo: repo, cache: c, prom: prom}
}

func (h *GalleryHandler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, cacheKeyGallery)
	}
}

func (h *GalleryHandler) countSubmission(approved bool) {
	if h.prom == nil {
		return
	}

	state := "pending"
	if approved {
		state = "approved"
	}

	h.prom.Submissions.WithLabelValues("gallery", state).Inc()
}

func (h *GalleryHandler) CreateItem(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	if err := authz.Can(actor, authz.ActionSubmitContent, ""); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	var req gallery.CreateItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	item := gallery.NewFromCreateRequest(req, actor.ID, actor.Role == user.RoleAdmin)

	created, err := h.repo.Create(cctx, item)

	if err != nil {
		RespondInternal(ctx, "Could not create gallery item")
		return
	}

	h.countSubmission(created.Approved)

	if created.Approved {
		h.invalidate(cctx)
	}

	ctx.JSON(http.StatusCreated, created)
}

// ListItems is the public listing: approved items only, newest first.
func (h *GalleryHandler) ListItems(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if h.cache != nil {
		if body, ok := h.cache.Get(cctx, cacheKeyGallery); ok {
			RespondRawJSONWithETag(ctx, http.StatusOK, body)
			return
		}
	}

	items, err := h.repo.ListApproved(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list gallery items")
		return
	}

	body, err := json.Marshal(gin.H{
		"items": items,
		"count": len(items),
	})

	if err != nil {
		RespondInternal(ctx, "Could not list gallery items")
		return
	}

	if h.cache != nil {
		h.cache.Set(cctx, cacheKeyGallery, body)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

func (h *GalleryHandler) GetItemByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	item, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			RespondNotFound(ctx, "Gallery item not found")
			return
		}
		RespondInternal(ctx, "Could not fetch gallery item")
		return
	}

	actor := middlewares.ActorFromContext(ctx)

	if !item.Approved && actor.Role != user.RoleAdmin && actor.ID != item.CreatedBy {
		RespondNotFound(ctx, "Gallery item not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, item)
}

func (h *GalleryHandler) ListMyItems(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	items, err := h.repo.ListByCreator(cctx, actor.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list gallery items")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *GalleryHandler) DeleteItem(ctx *gin.Context) {
	id := ctx.Param("id")
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			RespondNotFound(ctx, "Gallery item not found")
			return
		}
		RespondInternal(ctx, "Could not delete gallery item")
		return
	}

	if err := authz.Can(actor, authz.ActionManageOwn, existing.CreatedBy); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			RespondNotFound(ctx, "Gallery item not found")
			return
		}
		RespondInternal(ctx, "Could not delete gallery item")
		return
	}

	h.invalidate(cctx)

	ctx.Status(http.StatusNoContent)
}
