// Package common holds the response envelope, RFC 9457 problem details and
// request binding shared by the HTTP handlers.
package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout of every date query parameter.
const DateLayout = "2006-01-02"

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`          // HTTP status code
	Message string `json:"message"`         // Human-readable explanation
	Data    any    `json:"data,omitempty"`  // Response data
	Total   *int   `json:"total,omitempty"` // Number of items for list responses
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

var validate = validator.New()

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInactiveAccount),
		errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrDniAlreadyExists),
		errors.Is(err, domain.ErrEmailDuplicate),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, client.ErrInvalidClient):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ProblemDetailsJSON writes a problem details response. The optional args
// are a detail string, which overrides err's message, and an int status,
// which overrides the status derived from err.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	if err == nil {
		status = fiber.StatusBadRequest
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			status = v
		case error:
			pd.Errors = v.Error()
		default:
			pd.Errors = v
		}
	}
	if status == fiber.StatusInternalServerError && len(args) == 0 {
		pd.Detail = "an unexpected error occurred"
	}
	pd.Status = status

	c.Status(status)
	if err := c.JSON(pd); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return nil
}

// SuccessResponseJSON writes data wrapped in the Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ListResponseJSON writes a list with its size, or 204 when it is empty.
func ListResponseJSON[T any](c *fiber.Ctx, message string, items []T) error {
	if len(items) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	total := len(items)
	return c.Status(fiber.StatusOK).JSON(Response{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    items,
		Total:   &total,
	})
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// ParseAmount parses a decimal amount from a path parameter or body field.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	if !account.HasCentScale(amount) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d decimal places",
			domain.ErrInvalidAmount, s, account.AmountScale)
	}
	return amount, nil
}

// ParseDate parses a YYYY-MM-DD query value as a UTC day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must use %s", domain.ErrInvalidDateRange, s, DateLayout)
	}
	return t, nil
}

// ParseDateRange parses both bounds and rejects from > to.
func ParseDateRange(from, to string) (time.Time, time.Time, error) {
	f, err := ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if f.After(t) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fromDate %s is after toDate %s",
			domain.ErrInvalidDateRange, from, to)
	}
	return f, t, nil
}
