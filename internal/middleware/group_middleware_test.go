package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/middleware"
)

func setupGroupRouter(principal *auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only",
		func(c *gin.Context) {
			if principal != nil {
				c.Set(middleware.PrincipalKey, *principal)
			}
			c.Next()
		},
		middleware.RequireGroup(middleware.AdminGroup),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r
}

func serveGroupRequest(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireGroup_MissingPrincipal(t *testing.T) {
	r := setupGroupRouter(nil)

	w := serveGroupRequest(r)

	// Forbidden, not Unauthorized: authentication is not this gate's job.
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Missing identity")
}

func TestRequireGroup_InsufficientRole(t *testing.T) {
	cases := []struct {
		name   string
		groups []string
	}{
		{"nil groups", nil},
		{"empty groups", []string{}},
		{"wrong case", []string{"Admin"}},
		{"other groups only", []string{"users", "editors"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupGroupRouter(&auth.Principal{Subject: "00u1abcd", Groups: tc.groups})

			w := serveGroupRequest(r)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "Insufficient role")
		})
	}
}

func TestRequireGroup_Allowed(t *testing.T) {
	cases := []struct {
		name   string
		groups []string
	}{
		{"only admin", []string{"admin"}},
		{"admin among others", []string{"users", "admin", "editors"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupGroupRouter(&auth.Principal{Subject: "00u1abcd", Groups: tc.groups})

			w := serveGroupRequest(r)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
