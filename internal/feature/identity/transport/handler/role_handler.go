package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"identity_backend/internal/feature/identity/domain/entity"
	"identity_backend/internal/feature/identity/transport/http/dto"
)

// RoleUsecase defines the role management operations exposed over HTTP.
type RoleUsecase interface {
	CreateRole(ctx context.Context, name string) (*entity.Role[string], error)
	DeleteRole(ctx context.Context, roleID string) error
	ListRoles(ctx context.Context, limit, offset int) ([]entity.Role[string], error)
	AddRoleClaim(ctx context.Context, roleID string, claim entity.Claim) error
	RoleClaims(ctx context.Context, roleID string) ([]entity.Claim, error)
}

// RoleHandler handles the /roles endpoints.
type RoleHandler struct {
	roles RoleUsecase
}

func NewRoleHandler(roles RoleUsecase) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List handles GET /roles?limit=&offset=.
func (h *RoleHandler) List(c *gin.Context) {
	var q dto.ListRolesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	roles, err := h.roles.ListRoles(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		writeError(c, "list roles failed", err)
		return
	}
	res := make([]dto.RoleRes, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleRes(&r))
	}
	c.JSON(http.StatusOK, res)
}

// Create handles POST /roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req dto.CreateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	role, err := h.roles.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, "create role failed", err)
		return
	}
	c.JSON(http.StatusCreated, toRoleRes(role))
}

// Delete handles DELETE /roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roles.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, "delete role failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Claims handles GET /roles/:id/claims.
func (h *RoleHandler) Claims(c *gin.Context) {
	claims, err := h.roles.RoleClaims(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "list role claims failed", err)
		return
	}
	res := make([]dto.ClaimDTO, 0, len(claims))
	for _, cl := range claims {
		res = append(res, dto.ClaimDTO{Type: cl.Type, Value: cl.Value})
	}
	c.JSON(http.StatusOK, res)
}

// AddClaim handles POST /roles/:id/claims.
func (h *RoleHandler) AddClaim(c *gin.Context) {
	var req dto.ClaimDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	claim := entity.Claim{Type: req.Type, Value: req.Value}
	if err := h.roles.AddRoleClaim(c.Request.Context(), c.Param("id"), claim); err != nil {
		writeError(c, "add role claim failed", err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func toRoleRes(r *entity.Role[string]) dto.RoleRes {
	return dto.RoleRes{ID: r.ID, Name: r.Name, NormalizedName: r.NormalizedName}
}
