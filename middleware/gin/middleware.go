package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jsonmodel "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/middleware"
)

// DecodeRecord reads the request body as a record of spec with opt (or
// DefaultParseOpt when zero), stores it in the request context, and on
// failure aborts with 400 and the Issues payload.
func DecodeRecord(spec *jsonmodel.RecordSpec, opt jsonmodel.ParseOpt) gin.HandlerFunc {
	opt = middleware.ApplyDefaults(opt)
	return func(c *gin.Context) {
		r, err := jsonmodel.FromJSONReader(c.Request.Context(), spec, c.Request.Body, opt)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorBody(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithRecord(c.Request.Context(), r))
		c.Next()
	}
}

// GetRecord fetches the decoded record of typeName from gin.Context.
func GetRecord(c *gin.Context, typeName string) (*jsonmodel.Record, bool) {
	return middleware.RecordFromContext(c.Request.Context(), typeName)
}

// Record answers with the record's toJSON document.
func Record(c *gin.Context, status int, r *jsonmodel.Record) {
	b, err := jsonmodel.ToJSONBytes(r)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, middleware.ErrorBody(err))
		return
	}
	c.Data(status, "application/json", b)
}
