package http

import (
	"net/http"

	"settlement/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every JSON response of the API.
type Envelope struct {
	Success    bool         `json:"success"`
	Data       any          `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// FieldError points at the request field a validation failure refers to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func ok(c echo.Context, data any) error {
	return respond(c, http.StatusOK, data, "")
}

func created(c echo.Context, data any, message string) error {
	return respond(c, http.StatusCreated, data, message)
}

func page[T any](c echo.Context, p queries.Page[T]) error {
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    p.Items,
		Pagination: &Pagination{
			Total: p.Total,
			Page:  p.Page,
			Limit: p.Limit,
		},
	})
}
