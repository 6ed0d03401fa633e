package utils

import "github.com/gofiber/fiber/v2"

// Pagination carries paging metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// APIResponse is the uniform envelope applied to every response.
type APIResponse struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data"`
	Message    string            `json:"message,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendPage sends a successful list response with pagination metadata.
func SendPage(c *fiber.Ctx, message string, data interface{}, pagination Pagination) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success:    true,
		Data:       data,
		Message:    message,
		Pagination: &pagination,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}

// SendFieldErrors sends a validation error response enumerating the offending
// fields and their reasons.
func SendFieldErrors(c *fiber.Ctx, status int, message string, fields map[string]string) error {
	if message == "" {
		message = "validation failed"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}
