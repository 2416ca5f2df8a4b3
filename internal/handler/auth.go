package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error comparisons
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/retail-pos-backend/internal/middleware" // identity helpers
	"github.com/iliyamo/retail-pos-backend/internal/model"      // domain entities
	"github.com/iliyamo/retail-pos-backend/internal/repository" // DB repositories
	"github.com/iliyamo/retail-pos-backend/internal/utils"      // token issuing
)

// CredentialStore is the slice of the user repository the auth
// endpoints need.  *repository.UserRepo satisfies it; tests provide
// stubs.
type CredentialStore interface {
	Create(ctx context.Context, email, names, phone, role, password string, bcryptCost int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	StoreRefresh(ctx context.Context, id, token string, exp time.Time) error
	ClearRefresh(ctx context.Context, id string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Issuer     utils.TokenIssuer
	Users      CredentialStore
	BcryptCost int
}

func NewAuthHandler(issuer utils.TokenIssuer, users CredentialStore, bcryptCost int) *AuthHandler {
	return &AuthHandler{Issuer: issuer, Users: users, BcryptCost: bcryptCost}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Names    string `json:"names" validate:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
type refreshReq struct {
	UserID       string `json:"user_id" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResp struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Register creates a new user account.  Email uniqueness is checked
// against non-deleted users only (exact, case-sensitive match).
//
// TODO: self-registration currently grants the Admin role, carried over
// from the legacy system; revisit before exposing registration publicly.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, names and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Names, req.Phone, model.RoleAdmin, req.Password, h.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email is already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": u.ID})
}

// Login verifies credentials and returns a fresh token pair.  Unknown
// email and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issuePair(c, ctx, u)
}

// Refresh rotates the token pair.  The presented refresh token must
// exactly match the stored one and must not be expired; rotation
// overwrites the stored token, so the old one cannot be replayed.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if u.RefreshToken == "" || u.RefreshToken != req.RefreshToken {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if u.RefreshTokenExpiresAt == nil || !u.RefreshTokenExpiresAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	return h.issuePair(c, ctx, u)
}

// Logout revokes the current user's refresh token server-side.  The
// identity comes from the validated bearer token; a token for a user
// that no longer exists yields 404.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid := middleware.CurrentUserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	if err := h.Users.ClearRefresh(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity claims of the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": middleware.CurrentUserID(c),
		"email":   middleware.CurrentUserEmail(c),
		"role":    middleware.CurrentUserRole(c),
	})
}

// issuePair creates and persists a new access/refresh token pair for u.
func (h *AuthHandler) issuePair(c echo.Context, ctx context.Context, u *model.User) error {
	access, err := h.Issuer.NewAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := h.Issuer.NewRefreshToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Users.StoreRefresh(ctx, u.ID, refresh.Raw, refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp,
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp,
	})
}
