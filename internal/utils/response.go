package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope every endpoint responds with. Success mirrors
// the status code: anything below 400 counts as success.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// Send writes the envelope using the provided HTTP status code.
func Send(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	if message == "" {
		if status < fiber.StatusBadRequest {
			message = "success"
		} else {
			message = "error"
		}
	}

	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Success:    status < fiber.StatusBadRequest,
		Message:    message,
		Data:       data,
	})
}

// SendSuccess sends a 200 envelope with a message and payload.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return Send(c, fiber.StatusOK, message, data)
}

// SendCreated sends a 201 envelope with a message and payload.
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return Send(c, fiber.StatusCreated, message, data)
}

// SendError sends an error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if status < fiber.StatusBadRequest {
		status = fiber.StatusInternalServerError
	}
	return Send(c, status, message, nil)
}
