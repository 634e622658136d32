package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracecommunity/churchhub/internal/auth"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/http/middlewares"
	"github.com/gracecommunity/churchhub/internal/observability"
	"github.com/gracecommunity/churchhub/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthHandler struct {
	users UserStore
	jwt   *auth.Manager
	prom  *observability.Prom
}

func NewAuthHandler(users UserStore, jwtManager *auth.Manager, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwtManager,
		prom:  prom,
	}
}

func (h *AuthHandler) countLogin(result string) {
	if h.prom != nil {
		h.prom.Logins.WithLabelValues(result).Inc()
	}
}

// Register is the public self-registration endpoint. New accounts are
// members pending admin approval.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create account")
		return
	}

	now := time.Now().UTC()

	u, err := h.users.Create(cctx, user.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		Role:         user.RoleMember,
		Approved:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			RespondConflict(ctx, "username_taken", "Username is already in use.")
		case errors.Is(err, user.ErrEmailTaken):
			RespondConflict(ctx, "email_taken", "Email is already in use.")
		default:
			RespondInternal(ctx, "Could not create account")
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Registration received. An administrator will review your account.",
		"user":    u,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	// the login field accepts a username or an email
	foundUser, err := h.users.GetByUsername(cctx, req.Username)

	if errors.Is(err, user.ErrNotFound) {
		foundUser, err = h.users.GetByEmail(cctx, req.Username)
	}

	if err != nil {
		h.countLogin("invalid")
		RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.countLogin("invalid")
		RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
		return
	}

	// valid credential, but the account has not been approved yet
	if !foundUser.Approved {
		h.countLogin("pending")
		RespondForbidden(ctx, "account_pending", "Account pending approval")
		return
	}

	token, err := h.jwt.GenerateToken(foundUser)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.countLogin("ok")

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  foundUser,
	})
}

// CreateCoordinator lets an admin provision a coordinator account, which is
// auto-approved.
func (h *AuthHandler) CreateCoordinator(ctx *gin.Context) {
	var req user.CreateCoordinatorRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create coordinator")
		return
	}

	now := time.Now().UTC()

	u, err := h.users.Create(cctx, user.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleCoordinator,
		Approved:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			RespondConflict(ctx, "username_taken", "Username is already in use.")
		case errors.Is(err, user.ErrEmailTaken):
			RespondConflict(ctx, "email_taken", "Coordinator already exists")
		default:
			RespondInternal(ctx, "Could not create coordinator")
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Coordinator created successfully",
		"user":    u,
	})
}

// Me returns the account behind the presented credential.
func (h *AuthHandler) Me(ctx *gin.Context) {
	actor := middlewares.ActorFromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, actor.ID)

	if err != nil {
		RespondNotFound(ctx, "Account not found")
		return
	}

	ctx.JSON(http.StatusOK, u)
}
