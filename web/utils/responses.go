package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rewearth/rewearth/web/models"
)

// SendJSON sends a JSON response using Fiber.
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendCreated sends a created resource JSON response.
func SendCreated(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, http.StatusCreated, data)
}

// SendError sends an error JSON response.
func SendError(c *fiber.Ctx, statusCode int, code, message string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message))
}

// SendBadRequest sends a bad request error response.
func SendBadRequest(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// SendUnauthorized sends an unauthorized error response.
func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// SendPaymentRequired sends a payment required error response.
func SendPaymentRequired(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusPaymentRequired, "PAYMENT_REQUIRED", message)
}

// SendNotFound sends a not found error response.
func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// SendConflict sends a conflict error response.
func SendConflict(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusConflict, "CONFLICT", message)
}

// SendServiceUnavailable sends a service unavailable error response.
func SendServiceUnavailable(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message)
}

// SendInternalServerError sends an internal server error response.
func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// GetIPAddress extracts the client IP address.
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}
