package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/authz"
)

const (
	CtxRequestID = "request_id"

	ctxActorKey = "auth.actor"
)

// ActorFromContext returns the authenticated actor stashed by RequireAuth.
// The zero Actor (unauthenticated) is returned when no credential was
// presented on the request.
func ActorFromContext(c *gin.Context) authz.Actor {
	v, ok := c.Get(ctxActorKey)

	if !ok {
		return authz.Actor{}
	}

	actor, ok := v.(authz.Actor)

	if !ok {
		return authz.Actor{}
	}

	return actor
}

func setActor(c *gin.Context, actor authz.Actor) {
	c.Set(ctxActorKey, actor)
}

// WithActor stashes a pre-resolved actor on the request. Handler tests use
// it in place of the full auth middleware chain.
func WithActor(actor authz.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		setActor(c, actor)
		c.Next()
	}
}
