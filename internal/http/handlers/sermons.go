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
	"github.com/gracecommunity/churchhub/internal/domain/sermon"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/middlewares"
	"github.com/gracecommunity/churchhub/internal/observability"
)

type SermonsStore interface {
	Create(ctx context.Context, s sermon.Sermon) (sermon.Sermon, error)
	GetByID(ctx context.Context, id string) (sermon.Sermon, error)
	ListApproved(ctx context.Context) ([]sermon.Sermon, error)
	ListByCreator(ctx context.Context, userID string) ([]sermon.Sermon, error)
	Update(ctx context.Context, id string, req sermon.UpdateSermonRequest) (sermon.Sermon, error)
	Delete(ctx context.Context, id string) error
}

const cacheKeySermons = "public:sermons"

type SermonsHandler struct {
	repo  SermonsStore
	cache cache.Cache
	prom  *observability.Prom
}

func NewSermonsHandler(repo SermonsStore, c cache.Cache, prom *observability.Prom) *SermonsHandler {
	return &SermonsHandler{repo: repo, cache: c, prom: prom}
}

func (h *SermonsHandler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, cacheKeySermons)
	}
}

func (h *SermonsHandler) countSubmission(approved bool) {
	if h.prom == nil {
		return
	}

	state := "pending"
	if approved {
		state = "approved"
	}

	h.prom.Submissions.WithLabelValues("sermon", state).Inc()
}

func (h *SermonsHandler) CreateSermon(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	if err := authz.Can(actor, authz.ActionSubmitContent, ""); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	var req sermon.CreateSermonRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	s := sermon.NewFromCreateRequest(req, actor.ID, actor.Role == user.RoleAdmin)

	created, err := h.repo.Create(cctx, s)

	if err != nil {
		RespondInternal(ctx, "Could not create sermon")
		return
	}

	h.countSubmission(created.Approved)

	if created.Approved {
		h.invalidate(cctx)
	}

	ctx.JSON(http.StatusCreated, created)
}

// ListSermons is the public listing: approved sermons only, newest first.
func (h *SermonsHandler) ListSermons(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if h.cache != nil {
		if body, ok := h.cache.Get(cctx, cacheKeySermons); ok {
			RespondRawJSONWithETag(ctx, http.StatusOK, body)
			return
		}
	}

	sermons, err := h.repo.ListApproved(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list sermons")
		return
	}

	body, err := json.Marshal(gin.H{
		"items": sermons,
		"count": len(sermons),
	})

	if err != nil {
		RespondInternal(ctx, "Could not list sermons")
		return
	}

	if h.cache != nil {
		h.cache.Set(cctx, cacheKeySermons, body)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

func (h *SermonsHandler) GetSermonByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, sermon.ErrNotFound) {
			RespondNotFound(ctx, "Sermon not found")
			return
		}
		RespondInternal(ctx, "Could not fetch sermon")
		return
	}

	actor := middlewares.ActorFromContext(ctx)

	if !s.Approved && actor.Role != user.RoleAdmin && actor.ID != s.CreatedBy {
		RespondNotFound(ctx, "Sermon not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, s)
}

func (h *SermonsHandler) ListMySermons(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	sermons, err := h.repo.ListByCreator(cctx, actor.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list sermons")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": sermons,
		"count": len(sermons),
	})
}

func (h *SermonsHandler) UpdateSermon(ctx *gin.Context) {
	id := ctx.Param("id")
	actor := middlewares.ActorFromContext(ctx)

	var req sermon.UpdateSermonRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, sermon.ErrNotFound) {
			RespondNotFound(ctx, "Sermon not found")
			return
		}
		RespondInternal(ctx, "Could not update sermon")
		return
	}

	if err := authz.Can(actor, authz.ActionManageOwn, existing.CreatedBy); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, sermon.ErrNotFound) {
			RespondNotFound(ctx, "Sermon not found")
			return
		}
		RespondInternal(ctx, "Could not update sermon")
		return
	}

	h.invalidate(cctx)

	ctx.JSON(http.StatusOK, updated)
}

func (h *SermonsHandler) DeleteSermon(ctx *gin.Context) {
	id := ctx.Param("id")
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, sermon.ErrNotFound) {
			RespondNotFound(ctx, "Sermon not found")
			return
		}
		RespondInternal(ctx, "Could not delete sermon")
		return
	}

	if err := authz.Can(actor, authz.ActionManageOwn, existing.CreatedBy); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, sermon.ErrNotFound) {
			RespondNotFound(ctx, "Sermon not found")
			return
		}
		RespondInternal(ctx, "Could not delete sermon")
		return
	}

	h.invalidate(cctx)

	ctx.Status(http.StatusNoContent)
}
