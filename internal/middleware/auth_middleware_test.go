package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/middleware"
)

type fakeVerifier struct {
	VerifyFn func(ctx context.Context, rawToken string) (*auth.Claims, error)
}

func (f *fakeVerifier) Verify(ctx context.Context, rawToken string) (*auth.Claims, error) {
	return f.VerifyFn(ctx, rawToken)
}

func setupAuthRouter(verifier auth.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Authenticate(verifier), func(c *gin.Context) {
		v, _ := c.Get(middleware.PrincipalKey)
		p := v.(auth.Principal)
		c.JSON(http.StatusOK, gin.H{
			"subject": p.Subject,
			"groups":  p.Groups,
		})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	verifier := &fakeVerifier{
		VerifyFn: func(ctx context.Context, rawToken string) (*auth.Claims, error) {
			t.Fatal("verifier must not be called without a header")
			return nil, nil
		},
	}
	r := setupAuthRouter(verifier)

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing credentials")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"bare scheme", "Bearer"},
		{"scheme with single space", "Bearer "},
		{"scheme with only spaces", "Bearer    "},
		{"no scheme at all", "invalid-token-format"},
		{"wrong scheme", "Basic abc123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &fakeVerifier{
				VerifyFn: func(ctx context.Context, rawToken string) (*auth.Claims, error) {
					t.Fatal("verifier must not be called for a malformed header")
					return nil, nil
				},
			}
			r := setupAuthRouter(verifier)

			w := doRequest(r, tc.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Malformed credentials")
		})
	}
}

func TestAuthenticate_VerifierFailure(t *testing.T) {
	verifier := &fakeVerifier{
		VerifyFn: func(ctx context.Context, rawToken string) (*auth.Claims, error) {
			return nil, errors.New("token verification failed: signature invalid")
		},
	}
	r := setupAuthRouter(verifier)

	w := doRequest(r, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// The verifier error must stay visible, not be swallowed.
	assert.Contains(t, w.Body.String(), "signature invalid")
}

func TestAuthenticate_Success(t *testing.T) {
	t.Run("attaches principal", func(t *testing.T) {
		verifier := &fakeVerifier{
			VerifyFn: func(ctx context.Context, rawToken string) (*auth.Claims, error) {
				assert.Equal(t, "good-token", rawToken)
				return &auth.Claims{
					Subject: "00u1abcd",
					Email:   "jane@test.com",
					Groups:  []string{"users"},
				}, nil
			},
		}
		r := setupAuthRouter(verifier)

		w := doRequest(r, "Bearer good-token")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "00u1abcd")
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		verifier := &fakeVerifier{
			VerifyFn: func(ctx context.Context, rawToken string) (*auth.Claims, error) {
				return &auth.Claims{Subject: "00u1abcd"}, nil
			},
		}
		r := setupAuthRouter(verifier)

		for _, header := range []string{"bearer good-token", "BEARER good-token", "BeArEr good-token"} {
			w := doRequest(r, header)
			assert.Equal(t, http.StatusOK, w.Code, header)
		}
	})

	t.Run("nil groups become an empty slice", func(t *testing.T) {
		verifier := &fakeVerifier{
			VerifyFn: func(ctx context.Context, rawToken string) (*auth.Claims, error) {
				return &auth.Claims{Subject: "00u1abcd", Groups: nil}, nil
			},
		}
		r := setupAuthRouter(verifier)

		w := doRequest(r, "Bearer good-token")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"groups":[]`)
	})
}
