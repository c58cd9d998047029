package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/shared/apperror"
	"github.com/siddheshp/ems-api-okta/internal/shared/response"
)

// AdminGroup is the identity-provider group required for privileged
// operations. Matching is exact and case-sensitive: "Admin" does not pass.
const AdminGroup = "admin"

// RequireGroup allows the request only when the principal attached by
// Authenticate carries the given group. A missing principal is a 403, not
// a 401: authentication is Authenticate's concern, ordering is enforced by
// route composition.
func RequireGroup(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(PrincipalKey)
		if !exists {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Missing identity", nil)
			c.Abort()
			return
		}

		principal, ok := v.(auth.Principal)
		if !ok || !principal.HasGroup(group) {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Insufficient role", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
