package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/authz"
	"github.com/gracecommunity/churchhub/internal/domain/event"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/handlers"
	"github.com/gracecommunity/churchhub/internal/http/middlewares"
)

// Fake repository implementation of the handlers.EventsStore interface

type fakeEventsRepo struct {
	createFn        func(ctx context.Context, e event.Event) (event.Event, error)
	getFn           func(ctx context.Context, id string) (event.Event, error)
	listApprovedFn  func(ctx context.Context) ([]event.Event, error)
	listByCreatorFn func(ctx context.Context, userID string) ([]event.Event, error)
	updateFn        func(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeEventsRepo) Create(ctx context.Context, e event.Event) (event.Event, error) {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}

	return e, nil
}

func (f *fakeEventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return event.Event{}, event.ErrNotFound
}

func (f *fakeEventsRepo) ListApproved(ctx context.Context) ([]event.Event, error) {
	if f.listApprovedFn != nil {
		return f.listApprovedFn(ctx)
	}

	return []event.Event{}, nil
}

func (f *fakeEventsRepo) ListByCreator(ctx context.Context, userID string) ([]event.Event, error) {
	if f.listByCreatorFn != nil {
		return f.listByCreatorFn(ctx, userID)
	}

	return []event.Event{}, nil
}

func (f *fakeEventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}

	return event.Event{}, event.ErrNotFound
}

func (f *fakeEventsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return event.ErrNotFound
}

func asActor(a authz.Actor) []gin.HandlerFunc {
	return []gin.HandlerFunc{middlewares.WithActor(a)}
}

func adminActor() authz.Actor {
	return authz.Actor{ID: newUUID(), Role: user.RoleAdmin, Approved: true, Authenticated: true}
}

func coordinatorActor() authz.Actor {
	return authz.Actor{ID: newUUID(), Role: user.RoleCoordinator, Approved: true, Authenticated: true}
}

// --- Create event tests

func TestCreateEventHandler(t *testing.T) {
	now := time.Now().UTC()

	validBody := `{
		"title": "Carol Service",
		"description": "Christmas carols by candlelight",
		"date": "` + now.Add(48*time.Hour).Format(time.RFC3339) + `",
		"time": "6:00 PM",
		"location": "Main Sanctuary",
		"category": "worship"
	}`

	tests := []struct {
		name           string
		actor          authz.Actor
		body           string
		repoSetUp      func(*fakeEventsRepo)
		wantStatusCode int
		wantApproved   *bool
	}{
		{
			name:           "admin_submission_goes_live",
			actor:          adminActor(),
			body:           validBody,
			wantStatusCode: http.StatusCreated,
			wantApproved:   boolPtr(true),
		},
		{
			name:           "coordinator_submission_starts_pending",
			actor:          coordinatorActor(),
			body:           validBody,
			wantStatusCode: http.StatusCreated,
			wantApproved:   boolPtr(false),
		},
		{
			name:           "member_forbidden",
			actor:          authz.Actor{ID: newUUID(), Role: user.RoleMember, Approved: true, Authenticated: true},
			body:           validBody,
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "pending_account_blocked",
			actor:          authz.Actor{ID: newUUID(), Role: user.RoleCoordinator, Approved: false, Authenticated: true},
			body:           validBody,
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "anonymous_unauthenticated",
			actor:          authz.Actor{},
			body:           validBody,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "validation_error_bad_category",
			actor:          adminActor(),
			body:           `{"title": "Carol Service", "date": "` + now.Format(time.RFC3339) + `", "category": "picnic"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "repo_error",
			actor: adminActor(),
			body:  validBody,
			repoSetUp: func(f *fakeEventsRepo) {
				f.createFn = func(ctx context.Context, e event.Event) (event.Event, error) {
					return event.Event{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewEventsHandler(repo, nil, nil)
			r := setupRouter(http.MethodPost, "/events", asActor(tt.actor), h.CreateEvent)

			w := doJSON(t, r, http.MethodPost, "/events", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantApproved != nil {
				var created event.Event

				if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}

				if created.Approved != *tt.wantApproved {
					t.Fatalf("approved = %v, want %v", created.Approved, *tt.wantApproved)
				}
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

// --- Public read tests

func TestGetEventByIDHandler_PendingVisibility(t *testing.T) {
	creator := coordinatorActor()

	pending := event.Event{
		ID:        newUUID(),
		Title:     "Youth Retreat",
		Category:  "youth",
		CreatedBy: creator.ID,
		Approved:  false,
	}

	repo := &fakeEventsRepo{
		getFn: func(ctx context.Context, id string) (event.Event, error) {
			if id == pending.ID {
				return pending, nil
			}
			return event.Event{}, event.ErrNotFound
		},
	}

	tests := []struct {
		name           string
		mw             []gin.HandlerFunc
		wantStatusCode int
	}{
		// an unapproved event is indistinguishable from a missing one
		{name: "anonymous", mw: nil, wantStatusCode: http.StatusNotFound},
		{name: "other_coordinator", mw: asActor(coordinatorActor()), wantStatusCode: http.StatusNotFound},
		{name: "creator", mw: asActor(creator), wantStatusCode: http.StatusOK},
		{name: "admin", mw: asActor(adminActor()), wantStatusCode: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewEventsHandler(repo, nil, nil)
			r := setupRouter(http.MethodGet, "/events/:id", tt.mw, h.GetEventByID)

			w := doJSON(t, r, http.MethodGet, "/events/"+pending.ID, "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetEventByIDHandler_ApprovedIsPublic(t *testing.T) {
	approved := event.Event{
		ID:       newUUID(),
		Title:    "Harvest Festival",
		Category: "community",
		Approved: true,
	}

	repo := &fakeEventsRepo{
		getFn: func(ctx context.Context, id string) (event.Event, error) {
			return approved, nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, nil)
	r := setupRouter(http.MethodGet, "/events/:id", nil, h.GetEventByID)

	w := doJSON(t, r, http.MethodGet, "/events/"+approved.ID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if w.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag header on public read")
	}
}

func TestListEventsHandler(t *testing.T) {
	repo := &fakeEventsRepo{
		listApprovedFn: func(ctx context.Context) ([]event.Event, error) {
			return []event.Event{
				{ID: newUUID(), Title: "Prayer Breakfast", Category: "fellowship", Approved: true},
				{ID: newUUID(), Title: "Harvest Festival", Category: "community", Approved: true},
			}, nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, nil)
	r := setupRouter(http.MethodGet, "/events", nil, h.ListEvents)

	w := doJSON(t, r, http.MethodGet, "/events", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []event.Event `json:"items"`
		Count int           `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 events, got count=%d len=%d", resp.Count, len(resp.Items))
	}
}

// --- Ownership tests

func TestUpdateEventHandler_Ownership(t *testing.T) {
	owner := coordinatorActor()
	other := coordinatorActor()

	now := time.Now().UTC()

	existing := event.Event{
		ID:        newUUID(),
		Title:     "Prayer Breakfast",
		Date:      now.Add(24 * time.Hour),
		Category:  "fellowship",
		CreatedBy: owner.ID,
		Approved:  true,
	}

	body := `{
		"title": "Prayer Breakfast (moved)",
		"date": "` + now.Add(48*time.Hour).Format(time.RFC3339) + `",
		"category": "fellowship"
	}`

	tests := []struct {
		name           string
		actor          authz.Actor
		wantStatusCode int
	}{
		{name: "owner_can_update", actor: owner, wantStatusCode: http.StatusOK},
		{name: "admin_can_update_any", actor: adminActor(), wantStatusCode: http.StatusOK},
		{name: "other_coordinator_forbidden", actor: other, wantStatusCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventsRepo{
				getFn: func(ctx context.Context, id string) (event.Event, error) {
					return existing, nil
				},
				updateFn: func(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
					updated := existing
					updated.Title = req.Title
					updated.Date = req.Date
					return updated, nil
				},
			}

			h := handlers.NewEventsHandler(repo, nil, nil)
			r := setupRouter(http.MethodPut, "/events/:id", asActor(tt.actor), h.UpdateEvent)

			w := doJSON(t, r, http.MethodPut, "/events/"+existing.ID, body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeleteEventHandler(t *testing.T) {
	owner := coordinatorActor()

	existing := event.Event{
		ID:        newUUID(),
		Title:     "Prayer Breakfast",
		CreatedBy: owner.ID,
		Approved:  true,
	}

	t.Run("owner_delete", func(t *testing.T) {
		deleted := false

		repo := &fakeEventsRepo{
			getFn: func(ctx context.Context, id string) (event.Event, error) {
				return existing, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = true
				return nil
			},
		}

		h := handlers.NewEventsHandler(repo, nil, nil)
		r := setupRouter(http.MethodDelete, "/events/:id", asActor(owner), h.DeleteEvent)

		w := doJSON(t, r, http.MethodDelete, "/events/"+existing.ID, "")

		if w.Code != http.StatusNoContent {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		if !deleted {
			t.Fatalf("expected repo delete call")
		}
	})

	t.Run("missing_event", func(t *testing.T) {
		repo := &fakeEventsRepo{}

		h := handlers.NewEventsHandler(repo, nil, nil)
		r := setupRouter(http.MethodDelete, "/events/:id", asActor(owner), h.DeleteEvent)

		w := doJSON(t, r, http.MethodDelete, "/events/"+newUUID(), "")

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})
}

func TestListMyEventsHandler_IncludesPending(t *testing.T) {
	owner := coordinatorActor()

	repo := &fakeEventsRepo{
		listByCreatorFn: func(ctx context.Context, userID string) ([]event.Event, error) {
			if userID != owner.ID {
				return nil, errors.New("unexpected user id")
			}
			return []event.Event{
				{ID: newUUID(), Title: "Pending One", CreatedBy: owner.ID, Approved: false},
				{ID: newUUID(), Title: "Live One", CreatedBy: owner.ID, Approved: true},
			}, nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, nil)
	r := setupRouter(http.MethodGet, "/mine/events", asActor(owner), h.ListMyEvents)

	w := doJSON(t, r, http.MethodGet, "/mine/events", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("expected both pending and approved submissions, count=%d", resp.Count)
	}
}
