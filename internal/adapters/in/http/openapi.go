package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"settlement/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// LoadDocument parses and validates the embedded OpenAPI document.
func LoadDocument(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}
	return doc, nil
}

// OpenAPIValidator checks each request against the operation declared for the echo route
// it matched. Routes the document does not declare pass through unchecked.
func OpenAPIValidator(doc *openapi3.T) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := documentPath(c.Path())
			item := doc.Paths.Find(path)
			if item == nil {
				return next(c)
			}
			req := c.Request()
			operation := item.GetOperation(req.Method)
			if operation == nil {
				return next(c)
			}

			names, values := c.ParamNames(), c.ParamValues()
			pathParams := make(map[string]string, len(names))
			for i, name := range names {
				pathParams[name] = values[i]
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route: &routers.Route{
					Spec:      doc,
					Path:      path,
					PathItem:  item,
					Method:    req.Method,
					Operation: operation,
				},
				Options: options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return documentError(err)
			}
			return next(c)
		}
	}
}

// documentPath turns an echo route like /withdrawal/:id into /withdrawal/{id}.
func documentPath(route string) string {
	segments := strings.Split(route, "/")
	for i, segment := range segments {
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

func documentError(err error) *RequestError {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		multi = openapi3.MultiError{err}
	}

	fields := make([]FieldError, 0, len(multi))
	for _, e := range multi {
		fields = append(fields, documentFieldError(e))
	}
	return &RequestError{Message: "request does not match the API contract", Fields: fields}
}

func documentFieldError(err error) FieldError {
	var (
		requestErr *openapi3filter.RequestError
		schemaErr  *openapi3.SchemaError
	)
	field := "request"
	if errors.As(err, &requestErr) {
		switch {
		case requestErr.Parameter != nil:
			field = requestErr.Parameter.Name
		case requestErr.RequestBody != nil:
			field = "body"
		}
	}
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
		return FieldError{Field: field, Message: schemaErr.Reason}
	}
	if requestErr != nil && requestErr.Reason != "" {
		return FieldError{Field: field, Message: requestErr.Reason}
	}
	return FieldError{Field: field, Message: err.Error()}
}

var registerSwagger sync.Once

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

// RegisterSwagger publishes doc to the swagger UI served by echo-swagger. The swag registry
// is process wide, so only the first document is kept.
func RegisterSwagger(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding openapi document: %w", err)
	}
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}
