package response

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

const internalErrorMessage = "error interno del servidor"

var exposeInternal atomic.Bool

// ExposeInternalErrors controls whether 500 responses include the underlying error text.
// Only development deployments should enable it.
func ExposeInternalErrors(enabled bool) {
	exposeInternal.Store(enabled)
}

// JSON writes a successful envelope: {"ok": true, ...payload}.
func JSON(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK writes a 200 envelope.
func OK(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 envelope.
func Created(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusCreated, payload)
}

// BadRequest writes a 400 validation failure.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, domain.KindValidation, message)
}

// Unauthorized writes a 401 failure.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, domain.KindUnauthorized, message)
}

// Error maps err to a status code and writes the failure envelope.
func Error(c *gin.Context, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		message := internalErrorMessage
		if exposeInternal.Load() {
			message = err.Error()
		}
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "internal", message)
		return
	}
	abort(c, StatusFor(appErr.Kind), appErr.Kind, appErr.Message)
}

// StatusFor returns the HTTP status code for an error kind.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindDuplicate, domain.KindSelfReference, domain.KindInvalidState:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, code domain.Kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"ok":      false,
		"code":    code,
		"message": message,
	})
}
