package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/domain/event"
	"github.com/gracecommunity/churchhub/internal/domain/gallery"
	"github.com/gracecommunity/churchhub/internal/domain/sermon"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/handlers"
	"github.com/gracecommunity/churchhub/internal/repo/memory"
)

// These run against the real in-memory repositories so the decision
// round-trips (approve persists, reject removes) are observable.

type adminFixture struct {
	users   *memory.UsersRepo
	events  *memory.EventsRepo
	sermons *memory.SermonsRepo
	gallery *memory.GalleryRepo
	handler *handlers.AdminHandler
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:   memory.NewUsersRepo(),
		events:  memory.NewEventsRepo(),
		sermons: memory.NewSermonsRepo(),
		gallery: memory.NewGalleryRepo(),
	}

	f.handler = handlers.NewAdminHandler(f.users, f.events, f.sermons, f.gallery, nil, nil)

	return f
}

func (f *adminFixture) router(method, path string, h gin.HandlerFunc) *gin.Engine {
	return setupRouter(method, path, nil, h)
}

func seedPendingEvent(t *testing.T, f *adminFixture, title string) event.Event {
	t.Helper()

	e, err := f.events.Create(context.Background(), event.NewFromCreateRequest(event.CreateEventRequest{
		Title:    title,
		Date:     time.Now().UTC().Add(72 * time.Hour),
		Category: "worship",
	}, newUUID(), false))

	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	return e
}

func TestApproveEvent_Persists(t *testing.T) {
	f := newAdminFixture()
	pending := seedPendingEvent(t, f, "Carol Service")

	r := f.router(http.MethodPost, "/admin/approve-event", f.handler.ApproveEvent)

	w := doJSON(t, r, http.MethodPost, "/admin/approve-event",
		`{"eventId": "`+pending.ID+`", "approved": true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	stored, err := f.events.GetByID(context.Background(), pending.ID)

	if err != nil {
		t.Fatalf("GetByID after approval: %v", err)
	}

	if !stored.Approved {
		t.Fatalf("expected event approved after decision")
	}

	// deciding again is a no-op, not an error
	w = doJSON(t, r, http.MethodPost, "/admin/approve-event",
		`{"eventId": "`+pending.ID+`", "approved": true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("repeat approval: got status %d, body=%s", w.Code, w.Body.String())
	}
}

func TestRejectEvent_Removes(t *testing.T) {
	f := newAdminFixture()
	pending := seedPendingEvent(t, f, "Unvetted Gathering")

	r := f.router(http.MethodPost, "/admin/approve-event", f.handler.ApproveEvent)

	w := doJSON(t, r, http.MethodPost, "/admin/approve-event",
		`{"eventId": "`+pending.ID+`", "approved": false}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var outcome struct {
		Removed bool   `json:"removed"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("unmarshal outcome: %v", err)
	}

	if !outcome.Removed {
		t.Fatalf("expected removal outcome, got %s", w.Body.String())
	}

	if _, err := f.events.GetByID(context.Background(), pending.ID); err == nil {
		t.Fatalf("expected rejected event to be gone")
	}

	// a second decision on a removed entity is a 404
	w = doJSON(t, r, http.MethodPost, "/admin/approve-event",
		`{"eventId": "`+pending.ID+`", "approved": true}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("decision on removed event: got status %d, want 404", w.Code)
	}
}

func TestApproveEvent_Validation(t *testing.T) {
	f := newAdminFixture()
	r := f.router(http.MethodPost, "/admin/approve-event", f.handler.ApproveEvent)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing_approved", body: `{"eventId": "` + newUUID() + `"}`},
		{name: "missing_id", body: `{"approved": true}`},
		{name: "bad_id_format", body: `{"eventId": "42", "approved": true}`},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/admin/approve-event", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestApproveEvent_ExplicitFalseIsNotMissing(t *testing.T) {
	f := newAdminFixture()
	pending := seedPendingEvent(t, f, "Borderline Case")

	r := f.router(http.MethodPost, "/admin/approve-event", f.handler.ApproveEvent)

	// approved:false must bind as a rejection, not a validation error
	w := doJSON(t, r, http.MethodPost, "/admin/approve-event",
		`{"eventId": "`+pending.ID+`", "approved": false}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}
}

func TestApproveUser_Flow(t *testing.T) {
	f := newAdminFixture()

	pending, err := f.users.Create(context.Background(), user.User{
		ID:       newUUID(),
		Username: "esther",
		Email:    "esther@example.org",
		Role:     user.RoleMember,
	})

	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := f.router(http.MethodPost, "/admin/approve-user", f.handler.ApproveUser)

	w := doJSON(t, r, http.MethodPost, "/admin/approve-user",
		`{"userId": "`+pending.ID+`", "approved": true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	approved, err := f.users.GetByID(context.Background(), pending.ID)

	if err != nil {
		t.Fatalf("GetByID after approval: %v", err)
	}

	if !approved.Approved {
		t.Fatalf("expected user approved")
	}
}

func TestRejectUser_DeletesAccount(t *testing.T) {
	f := newAdminFixture()

	pending, err := f.users.Create(context.Background(), user.User{
		ID:       newUUID(),
		Username: "spammer",
		Email:    "spam@example.org",
		Role:     user.RoleMember,
	})

	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := f.router(http.MethodPost, "/admin/approve-user", f.handler.ApproveUser)

	w := doJSON(t, r, http.MethodPost, "/admin/approve-user",
		`{"userId": "`+pending.ID+`", "approved": false}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if _, err := f.users.GetByID(context.Background(), pending.ID); err == nil {
		t.Fatalf("expected rejected account removed")
	}
}

func TestApproveSermonAndGalleryByID(t *testing.T) {
	f := newAdminFixture()

	s, err := f.sermons.Create(context.Background(), sermon.NewFromCreateRequest(sermon.CreateSermonRequest{
		Title:  "Grace Abounds",
		Pastor: "Rev. Daniel Okafor",
		Date:   time.Now().UTC(),
	}, newUUID(), false))
	if err != nil {
		t.Fatalf("seed sermon: %v", err)
	}

	item, err := f.gallery.Create(context.Background(), gallery.NewFromCreateRequest(gallery.CreateItemRequest{
		Title:    "Baptism Sunday",
		ImageURL: "https://cdn.example.org/baptism.jpg",
	}, newUUID(), false))
	if err != nil {
		t.Fatalf("seed gallery item: %v", err)
	}

	r := gin.New()
	r.PATCH("/sermons/:id/approve", f.handler.ApproveSermonByID)
	r.PATCH("/gallery/:id/approve", f.handler.ApproveGalleryItemByID)

	w := doJSON(t, r, http.MethodPatch, "/sermons/"+s.ID+"/approve", "")

	if w.Code != http.StatusOK {
		t.Fatalf("sermon approve: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, "/gallery/"+item.ID+"/approve", "")

	if w.Code != http.StatusOK {
		t.Fatalf("gallery approve: got status %d, body=%s", w.Code, w.Body.String())
	}

	approvedSermon, _ := f.sermons.GetByID(context.Background(), s.ID)
	if !approvedSermon.Approved {
		t.Fatalf("expected sermon approved")
	}

	approvedItem, _ := f.gallery.GetByID(context.Background(), item.ID)
	if !approvedItem.Approved {
		t.Fatalf("expected gallery item approved")
	}
}

func TestPromoteUser(t *testing.T) {
	f := newAdminFixture()

	u, err := f.users.Create(context.Background(), user.User{
		ID:       newUUID(),
		Username: "deborah",
		Email:    "deborah@example.org",
		Role:     user.RoleCoordinator,
		Approved: true,
	})

	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := f.router(http.MethodPatch, "/admin/users/:id/promote", f.handler.PromoteUser)

	w := doJSON(t, r, http.MethodPatch, "/admin/users/"+u.ID+"/promote", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	promoted, err := f.users.GetByID(context.Background(), u.ID)

	if err != nil {
		t.Fatalf("GetByID after promote: %v", err)
	}

	if promoted.Role != user.RoleAdmin {
		t.Fatalf("role = %q, want admin", promoted.Role)
	}

	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+newUUID()+"/promote", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("promote missing user: got status %d, want 404", w.Code)
	}
}

func TestAdminStats(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	// two approved members, one pending
	for _, u := range []user.User{
		{ID: newUUID(), Username: "a", Email: "a@example.org", Approved: true, Role: user.RoleMember},
		{ID: newUUID(), Username: "b", Email: "b@example.org", Approved: true, Role: user.RoleCoordinator},
		{ID: newUUID(), Username: "c", Email: "c@example.org", Approved: false, Role: user.RoleMember},
	} {
		if _, err := f.users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	// one upcoming approved event, one past approved, one pending
	upcoming := event.NewFromCreateRequest(event.CreateEventRequest{
		Title: "Harvest Festival", Date: time.Now().UTC().Add(24 * time.Hour), Category: "community",
	}, newUUID(), true)

	past := event.NewFromCreateRequest(event.CreateEventRequest{
		Title: "Easter Service", Date: time.Now().UTC().Add(-24 * time.Hour), Category: "worship",
	}, newUUID(), true)

	pendingEv := event.NewFromCreateRequest(event.CreateEventRequest{
		Title: "Youth Lock-in", Date: time.Now().UTC().Add(48 * time.Hour), Category: "youth",
	}, newUUID(), false)

	for _, e := range []event.Event{upcoming, past, pendingEv} {
		if _, err := f.events.Create(ctx, e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	// one pending sermon
	if _, err := f.sermons.Create(ctx, sermon.NewFromCreateRequest(sermon.CreateSermonRequest{
		Title: "On Patience", Pastor: "Rev. Daniel Okafor", Date: time.Now().UTC(),
	}, newUUID(), false)); err != nil {
		t.Fatalf("seed sermon: %v", err)
	}

	r := f.router(http.MethodGet, "/admin/stats", f.handler.Stats)

	w := doJSON(t, r, http.MethodGet, "/admin/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var stats struct {
		TotalMembers     int `json:"totalMembers"`
		ActiveEvents     int `json:"activeEvents"`
		PendingApprovals int `json:"pendingApprovals"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}

	if stats.TotalMembers != 2 {
		t.Fatalf("totalMembers = %d, want 2", stats.TotalMembers)
	}

	if stats.ActiveEvents != 1 {
		t.Fatalf("activeEvents = %d, want 1", stats.ActiveEvents)
	}

	// 1 pending user + 1 pending event + 1 pending sermon
	if stats.PendingApprovals != 3 {
		t.Fatalf("pendingApprovals = %d, want 3", stats.PendingApprovals)
	}
}

func TestListPendingEvents(t *testing.T) {
	f := newAdminFixture()
	now := time.Now().UTC()

	first := event.NewFromCreateRequest(event.CreateEventRequest{
		Title: "First Submitted", Date: now.Add(72 * time.Hour), Category: "worship",
	}, newUUID(), false)
	first.CreatedAt = now.Add(-2 * time.Hour)

	second := event.NewFromCreateRequest(event.CreateEventRequest{
		Title: "Second Submitted", Date: now.Add(24 * time.Hour), Category: "youth",
	}, newUUID(), false)
	second.CreatedAt = now.Add(-time.Hour)

	for _, e := range []event.Event{second, first} {
		if _, err := f.events.Create(context.Background(), e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	r := f.router(http.MethodGet, "/admin/pending-events", f.handler.ListPendingEvents)

	w := doJSON(t, r, http.MethodGet, "/admin/pending-events", "")

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

	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}

	// review queue is oldest-first
	if resp.Items[0].ID != first.ID || resp.Items[1].ID != second.ID {
		t.Fatalf("expected submission order %s, %s; got %s, %s",
			first.ID, second.ID, resp.Items[0].ID, resp.Items[1].ID)
	}
}
