// Package handlers provides the HTTP request handlers of the automation API.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightops/internal/core/apperror"
	"freightops/internal/infrastructure/storage/postgres"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// ReadBody drains and returns the raw request body. The raw bytes feed both
// DTO binding and the audit log.
func (h *BaseHandler) ReadBody(c *gin.Context) ([]byte, bool) {
	limited := io.LimitReader(c.Request.Body, maxBodyBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		h.HandleError(c, apperror.NewValidation("unreadable request body"))
		return nil, false
	}
	if len(body) > maxBodyBytes {
		appErr := apperror.NewValidation("request body too large")
		appErr.HTTPStatus = http.StatusRequestEntityTooLarge
		h.HandleError(c, appErr)
		return nil, false
	}
	return body, true
}

// HandleError registers the error on the gin context and aborts. The JSON
// response is produced by the error middleware, the single source of truth.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends a 200 response and completes the idempotency key when present.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	h.completeIdempotency(c, http.StatusOK, data)
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response and completes the idempotency key.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	h.completeIdempotency(c, http.StatusCreated, data)
	c.JSON(http.StatusCreated, data)
}

func (h *BaseHandler) completeIdempotency(c *gin.Context, statusCode int, response any) {
	key, exists := c.Get("idempotency_key")
	if !exists {
		return
	}
	store, ok := c.Get("idempotency_store")
	if !ok {
		return
	}
	if s, ok := store.(*postgres.IdempotencyStore); ok && s != nil {
		_ = s.CompleteKey(c.Request.Context(), key.(string), statusCode, "application/json", response)
	}
}
