package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	jsonmodel "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/middleware"
)

// DecodeRecord reads the request body as a record of spec, stores it in the
// request context, or returns 400 with Issues when reading fails.
func DecodeRecord(spec *jsonmodel.RecordSpec, opt jsonmodel.ParseOpt) echo.MiddlewareFunc {
	opt = middleware.ApplyDefaults(opt)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r, err := jsonmodel.FromJSONReader(c.Request().Context(), spec, c.Request().Body, opt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorBody(err))
			}
			ctx := middleware.ContextWithRecord(c.Request().Context(), r)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetRecord fetches the decoded record of typeName from echo.Context.
func GetRecord(c echo.Context, typeName string) (*jsonmodel.Record, bool) {
	return middleware.RecordFromContext(c.Request().Context(), typeName)
}

// Record answers with the record's toJSON document.
func Record(c echo.Context, status int, r *jsonmodel.Record) error {
	b, err := jsonmodel.ToJSONBytes(r)
	if err != nil {
		return err
	}
	return c.JSONBlob(status, b)
}
