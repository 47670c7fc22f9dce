package utils

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform JSON shape returned by every endpoint. RequestID
// mirrors the X-Request-ID header so clients that only log bodies can still
// be correlated with server logs.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// SendSuccess writes a 200 envelope with the given message and payload.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus writes a success envelope with an explicit status
// code, typically 201 for creations.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return send(c, status, Envelope{
		Success: true,
		Message: orDefault(message, "success"),
		Data:    data,
	})
}

// SendError writes a failure envelope. The message is the client-facing
// explanation; internal detail belongs in the logs, not here.
func SendError(c *fiber.Ctx, status int, message string) error {
	return send(c, status, Envelope{
		Success: false,
		Message: orDefault(message, "error"),
	})
}

func send(c *fiber.Ctx, status int, envelope Envelope) error {
	if id, ok := c.Locals("request_id").(string); ok {
		envelope.RequestID = id
	}
	return c.Status(status).JSON(envelope)
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
