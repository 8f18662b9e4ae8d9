package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newAuthRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler, func(ctx *gin.Context) {
		id, ok := ctx.Get(ContextUserID)
		if !ok {
			ctx.String(http.StatusOK, "anonymous")
			return
		}
		ctx.String(http.StatusOK, "user %d", id.(uint))
	})

	return r
}

func TestVerifyJWT(t *testing.T) {
	valid, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "a@example.com", "user", time.Hour)
	require.NoError(t, err)
	expired, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "a@example.com", "user", -time.Minute)
	require.NoError(t, err)
	foreign, err := jwthelper.GenerateToken([]byte("another-key"), 42, "a@example.com", "user", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Access token required"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Access token required"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token expired"},
		{"bad signature", "Bearer " + foreign, http.StatusUnauthorized, "Invalid token"},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, "user 42"},
	}

	r := newAuthRouter(NewAuthenticator(testSigningKey).VerifyJWT())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalJWT(t *testing.T) {
	valid, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "a@example.com", "user", time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(NewAuthenticator(testSigningKey).OptionalJWT())

	for header, want := range map[string]string{
		"":                 "anonymous",
		"Bearer broken":    "anonymous",
		"Bearer " + valid: "user 7",
		"bearer " + valid: "user 7",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Body.String())
	}
}
