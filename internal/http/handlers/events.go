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
	"github.com/gracecommunity/churchhub/internal/domain/event"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/middlewares"
	"github.com/gracecommunity/churchhub/internal/observability"
)

type EventsStore interface {
	Create(ctx context.Context, e event.Event) (event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	ListApproved(ctx context.Context) ([]event.Event, error)
	ListByCreator(ctx context.Context, userID string) ([]event.Event, error)
	Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

const cacheKeyEvents = "public:events"

type EventsHandler struct {
	repo  EventsStore
	cache cache.Cache
	prom  *observability.Prom
}

func NewEventsHandler(repo EventsStore, c cache.Cache, prom *observability.Prom) *EventsHandler {
	return &EventsHandler{repo: repo, cache: c, prom: prom}
}

func (h *EventsHandler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, cacheKeyEvents)
	}
}

func (h *EventsHandler) countSubmission(approved bool) {
	if h.prom == nil {
		return
	}

	state := "pending"
	if approved {
		state = "approved"
	}

	h.prom.Submissions.WithLabelValues("event", state).Inc()
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	if err := authz.Can(actor, authz.ActionSubmitContent, ""); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	// admin submissions skip the pending state
	e := event.NewFromCreateRequest(req, actor.ID, actor.Role == user.RoleAdmin)

	created, err := h.repo.Create(cctx, e)

	if err != nil {
		RespondInternal(ctx, "Could not create event")
		return
	}

	h.countSubmission(created.Approved)

	if created.Approved {
		h.invalidate(cctx)
	}

	ctx.JSON(http.StatusCreated, created)
}

// ListEvents is the public listing: approved events only, soonest first.
func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if h.cache != nil {
		if body, ok := h.cache.Get(cctx, cacheKeyEvents); ok {
			RespondRawJSONWithETag(ctx, http.StatusOK, body)
			return
		}
	}

	events, err := h.repo.ListApproved(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	body, err := json.Marshal(gin.H{
		"items": events,
		"count": len(events),
	})

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	if h.cache != nil {
		h.cache.Set(cctx, cacheKeyEvents, body)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	e, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not fetch event")
		return
	}

	// a pending event is invisible on the public read path
	actor := middlewares.ActorFromContext(ctx)

	if !e.Approved && actor.Role != user.RoleAdmin && actor.ID != e.CreatedBy {
		RespondNotFound(ctx, "Event not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

// ListMyEvents returns the caller's own submissions regardless of state.
func (h *EventsHandler) ListMyEvents(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	events, err := h.repo.ListByCreator(cctx, actor.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": events,
		"count": len(events),
	})
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id := ctx.Param("id")
	actor := middlewares.ActorFromContext(ctx)

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not update event")
		return
	}

	if err := authz.Can(actor, authz.ActionManageOwn, existing.CreatedBy); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not update event")
		return
	}

	h.invalidate(cctx)

	ctx.JSON(http.StatusOK, updated)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id := ctx.Param("id")
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not delete event")
		return
	}

	if err := authz.Can(actor, authz.ActionManageOwn, existing.CreatedBy); err != nil {
		RespondAuthzError(ctx, err)
		return
	}

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not delete event")
		return
	}

	h.invalidate(cctx)

	ctx.Status(http.StatusNoContent)
}
