package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightops/internal/core/apperror"
	"freightops/internal/domain/automation"
	"freightops/internal/infrastructure/http/v1/dto"
	"freightops/internal/infrastructure/storage/postgres"
	"freightops/pkg/logger"
)

// ErrorHandler transforms errors into the failure envelope. Every failure
// carries a channel_message so upstream chat relays never have to format
// errors themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// If the handler already wrote a response, leave it alone.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			body := dto.ErrorEnvelope{
				Success:        false,
				Code:           appErr.Code,
				Message:        appErr.Message,
				Details:        appErr.Details,
				ChannelMessage: automation.FailureMessage(appErr.Message),
			}
			failIdempotency(c, appErr.HTTPStatus, body)
			c.JSON(appErr.HTTPStatus, body)
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err)

		body := dto.ErrorEnvelope{
			Success:        false,
			Code:           apperror.CodeInternal,
			Message:        "Internal server error",
			Details:        map[string]any{"request_id": c.GetString("request_id")},
			ChannelMessage: automation.FailureMessage("Internal server error"),
		}
		failIdempotency(c, http.StatusInternalServerError, body)
		c.JSON(http.StatusInternalServerError, body)
	}
}

// failIdempotency stores the failure against the request's idempotency key
// so a retry replays the same error instead of re-running the command.
func failIdempotency(c *gin.Context, status int, body any) {
	key, exists := c.Get("idempotency_key")
	if !exists {
		return
	}
	store, ok := c.Get("idempotency_store")
	if !ok {
		return
	}
	if s, ok := store.(*postgres.IdempotencyStore); ok && s != nil {
		_ = s.FailKey(c.Request.Context(), key.(string), status, "application/json", body)
	}
}
