package response

import (
	"github.com/gin-gonic/gin"
)

// The wire contract is intentionally flat: every body carries an "ok" boolean,
// failures add an "error" string, and successes may add resource fields at the
// top level (e.g. {"ok":true,"leads":[...]}). The browser client depends on
// this shape.

// Well-known error strings.
const (
	ErrUnauthorized     = "unauthorized"
	ErrMethodNotAllowed = "method_not_allowed"
	ErrRateLimited      = "rate_limit_exceeded"
	ErrInternal         = "internal_error"
)

// OK sends {"ok":true} merged with the given extra top-level fields.
func OK(c *gin.Context, statusCode int, extra gin.H) {
	c.JSON(statusCode, body(true, "", extra))
}

// Fail sends {"ok":false,"error":msg}.
func Fail(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, body(false, msg, nil))
}

// FailWithFields sends a failure with per-field validation details attached.
func FailWithFields(c *gin.Context, statusCode int, msg string, fields map[string]string) {
	out := body(false, msg, nil)
	if len(fields) > 0 {
		out["fields"] = fields
	}
	c.JSON(statusCode, out)
}

// AbortFail aborts the middleware chain and sends a failure response.
func AbortFail(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, body(false, msg, nil))
}

func body(ok bool, errMsg string, extra gin.H) gin.H {
	out := gin.H{"ok": ok}
	if errMsg != "" {
		out["error"] = errMsg
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
