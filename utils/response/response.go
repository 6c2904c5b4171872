package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every JSON endpoint answers with
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Fields is only set for validation
// failures and maps each rejected input field to its messages.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// PaginationMeta describes the page a list response carries
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// PaginatedResponse is the envelope of list endpoints
type PaginatedResponse struct {
	Success    bool           `json:"success"`
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// default messages and codes per status, used when the caller passes none
var failures = map[int]struct{ code, message string }{
	fiber.StatusBadRequest:          {"BAD_REQUEST", "Bad request"},
	fiber.StatusUnauthorized:        {"UNAUTHORIZED", "Authentication credentials were not provided."},
	fiber.StatusForbidden:           {"FORBIDDEN", "You do not have permission to perform this action."},
	fiber.StatusNotFound:            {"NOT_FOUND", "Not found."},
	fiber.StatusTooManyRequests:     {"TOO_MANY_REQUESTS", "Request was throttled."},
	fiber.StatusInternalServerError: {"INTERNAL_ERROR", "Internal server error"},
	fiber.StatusServiceUnavailable:  {"SERVICE_UNAVAILABLE", "Service temporarily unavailable"},
}

func fail(c *fiber.Ctx, status int, message string) error {
	def, ok := failures[status]
	if !ok {
		def.code = "HTTP_ERROR"
	}
	if message == "" {
		message = def.message
	}
	return c.Status(status).JSON(Response{
		Error: &ErrorDetail{Code: def.code, Message: message},
	})
}

// Success answers 200 with data
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data})
}

// Created answers 201 with the stored resource
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: "Resource created successfully",
		Data:    data,
	})
}

// NoContent answers 204 with an empty body
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error answers status with message; an empty message uses the status default
func Error(c *fiber.Ctx, status int, message string) error {
	return fail(c, status, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusNotFound, message)
}

func TooManyRequests(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusTooManyRequests, message)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusInternalServerError, message)
}

func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusServiceUnavailable, message)
}

// ValidationError answers 400 naming every invalid field
func ValidationError(c *fiber.Ctx, fields map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Error: &ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Fields:  fields,
		},
	})
}

// Paginated answers 200 with one page of rows
func Paginated(c *fiber.Ctx, data interface{}, pagination PaginationMeta) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// CalculatePagination derives page metadata for an already clamped page and size
func CalculatePagination(page, size int, total int64) PaginationMeta {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PaginationMeta{
		CurrentPage: page,
		PerPage:     size,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
