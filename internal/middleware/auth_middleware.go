package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/shared/apperror"
	"github.com/siddheshp/ems-api-okta/internal/shared/contextutil"
	"github.com/siddheshp/ems-api-okta/internal/shared/response"
)

// PrincipalKey is the gin context key under which Authenticate stores the
// verified identity.
const PrincipalKey = "principal"

// Authenticate extracts the bearer token from the Authorization header,
// verifies it, and attaches the resulting Principal to the request.
// The scheme match is case-insensitive; the token itself must be non-empty
// after trimming, so "Bearer" and "Bearer   " are both rejected.
func Authenticate(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthenticated, "Missing credentials", nil)
			c.Abort()
			return
		}

		token, ok := extractBearerToken(header)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthenticated, "Malformed credentials", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			// The verifier error stays visible in details, not swallowed.
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthenticated, "Invalid credentials", err.Error())
			c.Abort()
			return
		}

		principal := auth.Principal{
			Subject: claims.Subject,
			Email:   claims.Email,
			Groups:  claims.Groups,
		}
		if principal.Groups == nil {
			principal.Groups = []string{}
		}

		c.Set(PrincipalKey, principal)
		ctx := contextutil.WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractBearerToken(header string) (string, bool) {
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(rest)
	if token == "" {
		return "", false
	}

	return token, true
}
