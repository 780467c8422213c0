// Package handler provides the HTTP handlers of the identity feature.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/transport/http/dto"
)

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrUserNameAlreadyExists),
		errors.Is(err, domain.ErrRoleAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidOperation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes the mapped status. Internal errors are not exposed.
func writeError(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(status, dto.ErrorRes{Error: "internal server error"})
		return
	}
	slog.Warn(msg, "error", err, "path", c.FullPath())
	c.JSON(status, dto.ErrorRes{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: err.Error()})
}
