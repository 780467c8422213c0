// Package router wires the HTTP routes of the identity service.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity_backend/internal/feature/identity/transport/handler"
	platformhandler "identity_backend/internal/platform/http/handler"
	jwtmw "identity_backend/internal/platform/jwt"
	"identity_backend/internal/shared/ratelimiter"
)

// AdminRole is the role required by the management endpoints.
const AdminRole = "Admin"

func NewRouter(db platformhandler.Pinger, limiter *ratelimiter.RateLimiter,
	accounts *handler.AccountHandler, roles *handler.RoleHandler) *gin.Engine {
	r := gin.Default()

	// No authentication
	health := platformhandler.Health(db)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	throttled := r.Group("/", limiter.Middleware())
	throttled.POST("/signup", accounts.Signup)
	// Issues a JWT
	throttled.POST("/login", accounts.Login)

	// Management routes require a valid JWT carrying the admin role.
	admin := r.Group("/")
	admin.Use(jwtmw.AuthRequired(), jwtmw.RequireRole(AdminRole))
	{
		admin.GET("/roles", roles.List)
		admin.POST("/roles", roles.Create)
		admin.DELETE("/roles/:id", roles.Delete)
		admin.GET("/roles/:id/claims", roles.Claims)
		admin.POST("/roles/:id/claims", roles.AddClaim)

		admin.GET("/users/:id/roles", accounts.UserRoles)
		admin.POST("/users/:id/roles", accounts.AssignRole)
		admin.DELETE("/users/:id/roles/:name", accounts.UnassignRole)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
