package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// NewErrorHandler renders every error returned by a handler or middleware as a failed
// Envelope with the status matching its kind.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := failure(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("route", c.Path()),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}

func failure(err error) (int, Envelope) {
	var (
		requestErr    *RequestError
		bindErr       *BindError
		transitionErr *errs.InvalidTransitionError
		balanceErr    *errs.InsufficientBalanceError
		existsErr     *errs.AlreadyExistsError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &requestErr):
		return http.StatusBadRequest, failed(requestErr.Message, requestErr.Fields...)
	case errors.As(err, &bindErr):
		return http.StatusUnprocessableEntity, failed(bindErr.Error())
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, failed(ErrUnauthorized.Error())
	case errors.As(err, &transitionErr):
		return http.StatusConflict, failed(fmt.Sprintf("%s cannot move from %s to %s",
			transitionErr.Entity, transitionErr.Current, transitionErr.Target))
	case errors.As(err, &balanceErr):
		return http.StatusPaymentRequired, failed(fmt.Sprintf(
			"insufficient balance: available %d, requested %d; the balance may have changed since it was loaded",
			balanceErr.Balance, balanceErr.Requested))
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, failed(err.Error())
	case isForbidden(err):
		return http.StatusForbidden, failed(forbiddenMessage(err))
	case errors.As(err, &existsErr):
		return http.StatusConflict, failed(existsErr.ParamName + " already exists")
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, failed("the resource was changed by another request, reload and retry")
	case errors.Is(err, order.ErrItemPriceIsFrozen), errors.Is(err, order.ErrItemSetIsFrozen):
		return http.StatusConflict, failed(err.Error())
	case isValidation(err):
		return http.StatusBadRequest, failed("request validation failed", fieldErrors(err, nil)...)
	case errors.As(err, &httpErr):
		return httpErr.Code, failed(fmt.Sprint(httpErr.Message))
	default:
		return http.StatusInternalServerError, failed(http.StatusText(http.StatusInternalServerError))
	}
}

func failed(message string, fields ...FieldError) Envelope {
	return Envelope{
		Success: false,
		Message: message,
		Errors:  fields,
	}
}

func isForbidden(err error) bool {
	return errors.Is(err, ErrRoleDenied) ||
		errors.Is(err, commands.ErrForbidden) ||
		errors.Is(err, withdrawal.ErrNotOwner) ||
		errors.Is(err, order.ErrDriverIsNotAssigned) ||
		errors.Is(err, order.ErrDriverIsSuspended)
}

func forbiddenMessage(err error) string {
	for _, sentinel := range []error{
		ErrRoleDenied,
		withdrawal.ErrNotOwner,
		order.ErrDriverIsNotAssigned,
		order.ErrDriverIsSuspended,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return commands.ErrForbidden.Error()
}

func isValidation(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

// fieldErrors flattens joined and wrapped validation errors into per-field messages.
func fieldErrors(err error, out []FieldError) []FieldError {
	switch e := err.(type) { //nolint:errorlint // walks the tree itself
	case *errs.ValueIsRequiredError:
		return append(out, FieldError{Field: e.ParamName, Message: "is required"})
	case *errs.ValueIsInvalidError:
		msg := "is invalid"
		if e.Cause != nil {
			msg = e.Cause.Error()
		}
		return append(out, FieldError{Field: e.ParamName, Message: msg})
	case *errs.ValueIsOutOfRangeError:
		return append(out, FieldError{
			Field:   e.ParamName,
			Message: fmt.Sprintf("%v is outside of [%v, %v]", e.Value, e.Min, e.Max),
		})
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			out = fieldErrors(inner, out)
		}
		return out
	case interface{ Unwrap() error }:
		return fieldErrors(e.Unwrap(), out)
	default:
		return out
	}
}
