package middleware

import (
	"time"

	"github.com/HolmesInc/data-storage/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		details := map[string]interface{}{
			"method":       c.Method(),
			"path":         c.Path(),
			"status_code":  statusCode,
			"latency_ms":   latency.Milliseconds(),
			"ip":           c.IP(),
			"request_body": logger.GetRequestBodySummary(c),
			"request_id":   requestID,
		}

		userID := logger.GetUserIDFromContext(c)
		if userID != nil {
			if statusCode >= 400 {
				logger.ErrorWithUser(*userID, "http_request", err, details)
			} else {
				logger.InfoWithUser(*userID, "http_request", details)
			}
		} else {
			if statusCode >= 400 {
				logger.Error("http_request", err, details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}

func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if statusCode != fiber.StatusForbidden {
			return err
		}

		details := map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"ip":     c.IP(),
			"reason": "access_denied",
		}

		userID := logger.GetUserIDFromContext(c)
		if userID != nil {
			logger.WarnWithUser(*userID, "access_denied", details)
		} else {
			logger.Warn("access_denied", details)
		}

		return err
	}
}
