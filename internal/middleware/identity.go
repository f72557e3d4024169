package middleware

import "github.com/labstack/echo/v4"

// OperatorID returns the subject of the operator token for this request,
// or "anonymous" when the route is not behind JWTAuth.
func OperatorID(c echo.Context) string { return operatorID(c) }

func operatorID(c echo.Context) string {
	if s, ok := c.Get(ctxOperatorID).(string); ok && s != "" {
		return s
	}
	return "anonymous"
}
