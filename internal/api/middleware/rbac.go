package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/authz"
)

// Authorize enforces the role policy for the given operation using the
// claims injected by Auth. When the route carries an :id parameter it is
// passed to the policy as the target account, enabling self-access clauses.
func Authorize(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ClaimsFromContext(c)
			if err != nil {
				return err
			}

			var targetID int64
			if raw := c.Param("id"); raw != "" {
				// An unparsable id denies self-access but still lets role
				// clauses grant; the handler rejects the malformed id itself.
				targetID, _ = strconv.ParseInt(raw, 10, 64)
			}

			if err := authz.Authorize(claims.UserID, claims.Roles, op, targetID); err != nil {
				return err
			}
			return next(c)
		}
	}
}
