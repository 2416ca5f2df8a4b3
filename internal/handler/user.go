package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/repository"
)

// UserStore is the slice of the user repository the admin user
// endpoints use.
type UserStore interface {
	List(ctx context.Context) ([]*model.User, error)
	Search(ctx context.Context, req model.PageRequest) ([]*model.User, int, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, email, names, phone, role, password string, bcryptCost int) (*model.User, error)
	UpdateProfile(ctx context.Context, id, email, names, phone string) error
	UpdateRole(ctx context.Context, id, role string) error
	SoftDelete(ctx context.Context, id string) error
}

// UserHandler serves user management under /v1/users.  Every route is
// gated behind RequireRole(Admin) in the router; this layer does not
// re-check the caller.
type UserHandler struct {
	Users      UserStore
	BcryptCost int
}

func NewUserHandler(users UserStore, bcryptCost int) *UserHandler {
	return &UserHandler{Users: users, BcryptCost: bcryptCost}
}

// userResponse is the public projection of a user; password hashes and
// token columns never leave this layer.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Names string `json:"names"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Names: u.Names, Phone: u.Phone, Role: u.Role}
}

type updateUserReq struct {
	Email string `json:"email" validate:"required,email"`
	Names string `json:"names" validate:"required"`
	Phone string `json:"phone"`
}

type roleChangeReq struct {
	UserID string `json:"user_id" validate:"required"`
}

// ListUsers handles GET /v1/users.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// SearchUsers handles GET /v1/users/search with paging, sorting and an
// optional free-text filter on email/names.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	var req model.PageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query parameters"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	users, total, err := h.Users.Search(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total_count": total})
}

// GetUser handles GET /v1/users/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// CreateCashier handles POST /v1/users/cashiers.  Same shape as
// registration but the created account always gets the Cashier role.
func (h *UserHandler) CreateCashier(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, names and password are required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.Create(ctx, req.Email, req.Names, req.Phone, model.RoleCashier, req.Password, h.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email is already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// UpdateUser handles PUT /v1/users/:id and overwrites the profile
// fields.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and names are required"})
	}
	id := c.Param("id")
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Users.UpdateProfile(ctx, id, strings.TrimSpace(req.Email), req.Names, req.Phone); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// DeleteUser handles DELETE /v1/users/:id (soft delete).
func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Users.SoftDelete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// PromoteToAdmin handles POST /v1/users/promote.
func (h *UserHandler) PromoteToAdmin(c echo.Context) error {
	return h.changeRole(c, model.RoleAdmin)
}

// DemoteToCustomer handles POST /v1/users/demote.
func (h *UserHandler) DemoteToCustomer(c echo.Context) error {
	return h.changeRole(c, model.RoleCustomer)
}

// changeRole overwrites the target user's role.  Only existence of the
// target is checked here; who may call this is the router's business.
func (h *UserHandler) changeRole(c echo.Context, role string) error {
	var req roleChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Users.UpdateRole(ctx, req.UserID, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "role change failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role updated", "role": role})
}
