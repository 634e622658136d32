package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/gracecommunity/churchhub/internal/auth"
	"github.com/gracecommunity/churchhub/internal/cache"
	"github.com/gracecommunity/churchhub/internal/config"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/handlers"
	"github.com/gracecommunity/churchhub/internal/http/middlewares"
	"github.com/gracecommunity/churchhub/internal/observability"
)

// UsersStore is the full users repository surface the router wires: the auth
// handlers, the auth middleware and the admin surface each see a slice of it.
type UsersStore interface {
	handlers.UserStore
	handlers.AdminUsersStore
}

type EventsStore interface {
	handlers.EventsStore
	handlers.AdminEventsStore
}

type SermonsStore interface {
	handlers.SermonsStore
	handlers.AdminSermonsStore
}

type GalleryStore interface {
	handlers.GalleryStore
	handlers.AdminGalleryStore
}

// Deps carries everything the router needs. main builds it from config;
// tests build it from memory repositories.
type Deps struct {
	Log *slog.Logger
	Cfg config.Config
	JWT *auth.Manager

	Users    UsersStore
	Events   EventsStore
	Sermons  SermonsStore
	Gallery  GalleryStore
	Contacts handlers.ContactStore
	Groups   handlers.GroupsStore

	Cache   cache.Cache
	Prom    *observability.Prom
	Metrics *prometheus.Registry

	// Ping reports backing-store health for /readyz. nil means always ready.
	Ping func(ctx context.Context) error

	Tracing bool
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	if d.Tracing {
		r.Use(otelgin.Middleware("churchhub"))
	}

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	// burst protection: by IP on the endpoints anyone can hit, by account on
	// the authenticated writes
	publicLimiter := middlewares.NewRateLimiter(d.Cfg.RateLimit, d.Cfg.RateLimitWindow)
	limitByIP := publicLimiter.Middleware(middlewares.KeyByIP)

	writeLimiter := middlewares.NewRateLimiter(d.Cfg.RateLimit, d.Cfg.RateLimitWindow)
	limitByUser := writeLimiter.Middleware(middlewares.KeyByUserOrIP)

	// health
	ping := func() error {
		if d.Ping == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return d.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(d.Users, d.JWT, d.Prom)
	eventsHandler := handlers.NewEventsHandler(d.Events, d.Cache, d.Prom)
	sermonsHandler := handlers.NewSermonsHandler(d.Sermons, d.Cache, d.Prom)
	galleryHandler := handlers.NewGalleryHandler(d.Gallery, d.Cache, d.Prom)
	contactHandler := handlers.NewContactHandler(d.Contacts)
	groupsHandler := handlers.NewGroupsHandler(d.Groups)
	adminHandler := handlers.NewAdminHandler(d.Users, d.Events, d.Sermons, d.Gallery, d.Cache, d.Prom)

	authmw := middlewares.NewAuthMiddleware(d.JWT, d.Users)
	optionalAuth := authmw.OptionalAuth()
	requireAuth := authmw.RequireAuth()
	requireAdmin := authmw.RequireRole(user.RoleAdmin)
	requireCoordinator := authmw.RequireRole(user.RoleCoordinator)

	// public
	r.POST("/auth/register", limitByIP, authHandler.Register)
	r.POST("/auth/login", limitByIP, authHandler.Login)

	r.GET("/events", eventsHandler.ListEvents)
	r.GET("/events/:id", optionalAuth, eventsHandler.GetEventByID)
	r.GET("/sermons", sermonsHandler.ListSermons)
	r.GET("/sermons/:id", optionalAuth, sermonsHandler.GetSermonByID)
	r.GET("/gallery", galleryHandler.ListItems)
	r.GET("/gallery/:id", optionalAuth, galleryHandler.GetItemByID)
	r.GET("/groups", groupsHandler.ListGroups)

	r.POST("/contact", limitByIP, contactHandler.SubmitMessage)

	// authenticated
	r.GET("/me", requireAuth, authHandler.Me)

	r.POST("/events", requireAuth, requireCoordinator, limitByUser, eventsHandler.CreateEvent)
	r.PUT("/events/:id", requireAuth, requireCoordinator, limitByUser, eventsHandler.UpdateEvent)
	r.DELETE("/events/:id", requireAuth, requireCoordinator, limitByUser, eventsHandler.DeleteEvent)

	r.POST("/sermons", requireAuth, requireCoordinator, limitByUser, sermonsHandler.CreateSermon)
	r.PUT("/sermons/:id", requireAuth, requireCoordinator, limitByUser, sermonsHandler.UpdateSermon)
	r.DELETE("/sermons/:id", requireAuth, requireCoordinator, limitByUser, sermonsHandler.DeleteSermon)

	r.POST("/gallery", requireAuth, requireCoordinator, limitByUser, galleryHandler.CreateItem)
	r.DELETE("/gallery/:id", requireAuth, requireCoordinator, limitByUser, galleryHandler.DeleteItem)

	r.GET("/mine/events", requireAuth, requireCoordinator, eventsHandler.ListMyEvents)
	r.GET("/mine/sermons", requireAuth, requireCoordinator, sermonsHandler.ListMySermons)
	r.GET("/mine/gallery", requireAuth, requireCoordinator, galleryHandler.ListMyItems)

	// admin
	r.POST("/auth/coordinators", requireAuth, requireAdmin, authHandler.CreateCoordinator)

	r.PATCH("/events/:id/approve", requireAuth, requireAdmin, adminHandler.ApproveEventByID)
	r.PATCH("/sermons/:id/approve", requireAuth, requireAdmin, adminHandler.ApproveSermonByID)
	r.PATCH("/gallery/:id/approve", requireAuth, requireAdmin, adminHandler.ApproveGalleryItemByID)

	admin := r.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/pending-users", adminHandler.ListPendingUsers)
	admin.GET("/pending-events", adminHandler.ListPendingEvents)
	admin.GET("/pending-sermons", adminHandler.ListPendingSermons)
	admin.GET("/pending-gallery", adminHandler.ListPendingGallery)
	admin.POST("/approve-user", adminHandler.ApproveUser)
	admin.POST("/approve-event", adminHandler.ApproveEvent)
	admin.POST("/approve-sermon", adminHandler.ApproveSermon)
	admin.POST("/approve-gallery", adminHandler.ApproveGalleryItem)
	admin.GET("/contacts", contactHandler.ListMessages)
	admin.GET("/stats", adminHandler.Stats)
	admin.PATCH("/users/:id/promote", adminHandler.PromoteUser)

	return r
}
