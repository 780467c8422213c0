package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
	"identity_backend/internal/feature/identity/transport/http/dto"
)

// AccountUsecase defines the account operations exposed over HTTP.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AccountUsecase interface {
	SignUp(ctx context.Context, userName, email, password string) (*entity.User[string], error)
	SignIn(ctx context.Context, email, password string) (string, error)
	AssignRole(ctx context.Context, userID, roleName string) error
	UnassignRole(ctx context.Context, userID, roleName string) error
	Roles(ctx context.Context, userID string) ([]string, error)
}

// AccountHandler handles signup, login and user role membership.
type AccountHandler struct {
	accounts AccountUsecase
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts AccountUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Signup handles POST /signup.
// - invalid body: 400
// - weak password: 400
// - email already registered: 409 without revealing the reason
// - success: 201 with the new user
func (h *AccountHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.accounts.SignUp(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			// Do not reveal that the email is registered.
			slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "signup failed"})
			return
		}
		writeError(c, "signup failed", err)
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupRes{ID: user.ID, UserName: user.UserName, Email: user.Email})
}

// Login handles POST /login and returns a JWT on success.
// A locked account answers 423; every other failure answers 401.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		if errors.Is(err, domain.ErrLockedOut) {
			c.JSON(http.StatusLocked, dto.ErrorRes{Error: "account locked"})
			return
		}
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}

// UserRoles handles GET /users/:id/roles.
func (h *AccountHandler) UserRoles(c *gin.Context) {
	userID := c.Param("id")
	roles, err := h.accounts.Roles(c.Request.Context(), userID)
	if err != nil {
		writeError(c, "list user roles failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserRolesRes{UserID: userID, Roles: roles})
}

// AssignRole handles POST /users/:id/roles.
func (h *AccountHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.accounts.AssignRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		writeError(c, "assign role failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "ok"})
}

// UnassignRole handles DELETE /users/:id/roles/:name.
func (h *AccountHandler) UnassignRole(c *gin.Context) {
	if err := h.accounts.UnassignRole(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		writeError(c, "unassign role failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
