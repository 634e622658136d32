package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/approval"
	"github.com/gracecommunity/churchhub/internal/cache"
	"github.com/gracecommunity/churchhub/internal/domain/event"
	"github.com/gracecommunity/churchhub/internal/domain/gallery"
	"github.com/gracecommunity/churchhub/internal/domain/sermon"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/observability"
)

// Per-kind slices of the repositories the admin surface needs. The approval
// workflow sees them through approval.Store.

type AdminUsersStore interface {
	ListPending(ctx context.Context) ([]user.User, error)
	SetApproved(ctx context.Context, id string) (user.User, error)
	SetRole(ctx context.Context, id string, role user.Role) (user.User, error)
	Delete(ctx context.Context, id string) error
	CountApproved(ctx context.Context) (int, error)
	CountPending(ctx context.Context) (int, error)
}

type AdminEventsStore interface {
	ListPending(ctx context.Context) ([]event.Event, error)
	SetApproved(ctx context.Context, id string) (event.Event, error)
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
	CountUpcomingApproved(ctx context.Context) (int, error)
}

type AdminSermonsStore interface {
	ListPending(ctx context.Context) ([]sermon.Sermon, error)
	SetApproved(ctx context.Context, id string) (sermon.Sermon, error)
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
}

type AdminGalleryStore interface {
	ListPending(ctx context.Context) ([]gallery.Item, error)
	SetApproved(ctx context.Context, id string) (gallery.Item, error)
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
}

type AdminHandler struct {
	users   AdminUsersStore
	events  AdminEventsStore
	sermons AdminSermonsStore
	gallery AdminGalleryStore
	cache   cache.Cache
	prom    *observability.Prom
}

func NewAdminHandler(
	users AdminUsersStore,
	events AdminEventsStore,
	sermons AdminSermonsStore,
	gallery AdminGalleryStore,
	c cache.Cache,
	prom *observability.Prom,
) *AdminHandler {
	return &AdminHandler{
		users:   users,
		events:  events,
		sermons: sermons,
		gallery: gallery,
		cache:   c,
		prom:    prom,
	}
}

func (h *AdminHandler) countDecision(kind string, removed bool) {
	if h.prom == nil {
		return
	}

	outcome := "approved"
	if removed {
		outcome = "removed"
	}

	h.prom.Decisions.WithLabelValues(kind, outcome).Inc()
}

// invalidate drops the public listing cache for a kind after a decision
// changes what the listing would return.
func (h *AdminHandler) invalidate(ctx context.Context, kind string) {
	if h.cache == nil {
		return
	}

	switch kind {
	case "event":
		h.cache.Delete(ctx, cacheKeyEvents)
	case "sermon":
		h.cache.Delete(ctx, cacheKeySermons)
	case "gallery":
		h.cache.Delete(ctx, cacheKeyGallery)
	}
}

type decideUserRequest struct {
	UserID   string `json:"userId" binding:"required,uuid"`
	Approved *bool  `json:"approved" binding:"required"`
}

type decideEventRequest struct {
	EventID  string `json:"eventId" binding:"required,uuid"`
	Approved *bool  `json:"approved" binding:"required"`
}

type decideSermonRequest struct {
	SermonID string `json:"sermonId" binding:"required,uuid"`
	Approved *bool  `json:"approved" binding:"required"`
}

type decideItemRequest struct {
	ItemID   string `json:"itemId" binding:"required,uuid"`
	Approved *bool  `json:"approved" binding:"required"`
}

// --- pending listings ---

func (h *AdminHandler) ListPendingUsers(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	users, err := h.users.ListPending(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list pending users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": users, "count": len(users)})
}

func (h *AdminHandler) ListPendingEvents(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	events, err := h.events.ListPending(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list pending events")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": events, "count": len(events)})
}

func (h *AdminHandler) ListPendingSermons(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	sermons, err := h.sermons.ListPending(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list pending sermons")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": sermons, "count": len(sermons)})
}

func (h *AdminHandler) ListPendingGallery(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	items, err := h.gallery.ListPending(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list pending gallery items")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// --- decisions ---

func (h *AdminHandler) ApproveUser(ctx *gin.Context) {
	var req decideUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	outcome, err := approval.Decide[user.User](cctx, h.users, req.UserID, *req.Approved)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not apply decision")
		return
	}

	h.countDecision("user", outcome.Removed)

	ctx.JSON(http.StatusOK, outcome)
}

func (h *AdminHandler) ApproveEvent(ctx *gin.Context) {
	var req decideEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	h.decideEvent(ctx, req.EventID, *req.Approved)
}

// ApproveEventByID is the PATCH /events/:id/approve form: approval only,
// rejection goes through the decision body endpoint.
func (h *AdminHandler) ApproveEventByID(ctx *gin.Context) {
	h.decideEvent(ctx, ctx.Param("id"), true)
}

func (h *AdminHandler) decideEvent(ctx *gin.Context, id string, approved bool) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	outcome, err := approval.Decide[event.Event](cctx, h.events, id, approved)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not apply decision")
		return
	}

	h.countDecision("event", outcome.Removed)
	h.invalidate(cctx, "event")

	ctx.JSON(http.StatusOK, outcome)
}

func (h *AdminHandler) ApproveSermon(ctx *gin.Context) {
	var req decideSermonRequest

	if !BindJSON(ctx, &req) {
		return
	}

	h.decideSermon(ctx, req.SermonID, *req.Approved)
}

func (h *AdminHandler) ApproveSermonByID(ctx *gin.Context) {
	h.decideSermon(ctx, ctx.Param("id"), true)
}

func (h *AdminHandler) decideSermon(ctx *gin.Context, id string, approved bool) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	outcome, err := approval.Decide[sermon.Sermon](cctx, h.sermons, id, approved)

	if err != nil {
		if errors.Is(err, sermon.ErrNotFound) {
			RespondNotFound(ctx, "Sermon not found")
			return
		}
		RespondInternal(ctx, "Could not apply decision")
		return
	}

	h.countDecision("sermon", outcome.Removed)
	h.invalidate(cctx, "sermon")

	ctx.JSON(http.StatusOK, outcome)
}

func (h *AdminHandler) ApproveGalleryItem(ctx *gin.Context) {
	var req decideItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	h.decideGalleryItem(ctx, req.ItemID, *req.Approved)
}

func (h *AdminHandler) ApproveGalleryItemByID(ctx *gin.Context) {
	h.decideGalleryItem(ctx, ctx.Param("id"), true)
}

func (h *AdminHandler) decideGalleryItem(ctx *gin.Context, id string, approved bool) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	outcome, err := approval.Decide[gallery.Item](cctx, h.gallery, id, approved)

	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			RespondNotFound(ctx, "Gallery item not found")
			return
		}
		RespondInternal(ctx, "Could not apply decision")
		return
	}

	h.countDecision("gallery", outcome.Removed)
	h.invalidate(cctx, "gallery")

	ctx.JSON(http.StatusOK, outcome)
}

// PromoteUser raises a user to the admin role.
func (h *AdminHandler) PromoteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	promoted, err := h.users.SetRole(cctx, id, user.RoleAdmin)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not promote user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "user promoted to admin",
		"user":    promoted,
	})
}

// Stats powers the admin dashboard header cards.
func (h *AdminHandler) Stats(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	totalMembers, err := h.users.CountApproved(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	activeEvents, err := h.events.CountUpcomingApproved(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	pending := 0

	for _, count := range []func(context.Context) (int, error){
		h.users.CountPending,
		h.events.CountPending,
		h.sermons.CountPending,
		h.gallery.CountPending,
	} {
		n, err := count(cctx)
		if err != nil {
			RespondInternal(ctx, "Could not compute stats")
			return
		}
		pending += n
	}

	ctx.JSON(http.StatusOK, gin.H{
		"totalMembers":     totalMembers,
		"activeEvents":     activeEvents,
		"pendingApprovals": pending,
	})
}
