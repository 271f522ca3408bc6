package http

import (
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func queryInt(c echo.Context, name string) (int, error) {
	var v int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func queryString(c echo.Context, name string) (string, error) {
	var v string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func queryPagination(c echo.Context) (queries.Pagination, error) {
	pageNumber, err := queryInt(c, "page")
	if err != nil {
		return queries.Pagination{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return queries.Pagination{}, err
	}
	return queries.NewPagination(pageNumber, limit)
}

func queryWithdrawalStatus(c echo.Context) (*withdrawal.Status, error) {
	raw, err := queryString(c, "status")
	if err != nil || raw == "" {
		return nil, err
	}
	status, err := withdrawal.StatusFromString(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func queryViolationStatus(c echo.Context) (*violation.Status, error) {
	raw, err := queryString(c, "status")
	if err != nil || raw == "" {
		return nil, err
	}
	status, err := violation.StatusFromString(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
