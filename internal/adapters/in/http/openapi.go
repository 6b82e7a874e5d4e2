package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

var (
	swaggerOnce sync.Once
	swaggerErr  error
)

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// OpenAPIValidator rejects requests that do not match doc with 400. Routes
// missing from doc, such as /health, pass through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if isUndocumentedRoute(findErr) {
				return next(ctx)
			}
			if findErr != nil {
				return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: findErr.Error()})
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return ctx.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: "Invalid request: " + validationErr.Error(),
				})
			}

			return next(ctx)
		}
	}, nil
}

// isUndocumentedRoute reports whether err means the request matches no
// operation of the document. The router returns a fresh RouteError per call,
// so the reason text is compared instead of the sentinel itself.
func isUndocumentedRoute(err error) bool {
	var routeErr *routers.RouteError
	if !errors.As(err, &routeErr) {
		return false
	}
	return routeErr.Reason == routers.ErrPathNotFound.Error() ||
		routeErr.Reason == routers.ErrMethodNotAllowed.Error()
}

// swaggerDoc serves the API document to the swagger UI.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// registerSwagger publishes doc under the default swag instance. swag allows a
// single registration per process, later calls are no-ops.
func registerSwagger(doc *openapi3.T) error {
	swaggerOnce.Do(func() {
		data, err := doc.MarshalJSON()
		if err != nil {
			swaggerErr = fmt.Errorf("marshal openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return swaggerErr
}
