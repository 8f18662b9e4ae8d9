package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/jwthelper"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("Access token required", "Please provide a valid access token"))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			if errors.Is(err, jwthelper.ErrTokenExpired) {
				response.RenderErr(ctx, response.ErrUnauthorized("Token expired", "Please login again"))
				return
			}

			response.RenderErr(ctx, response.ErrUnauthorized("Invalid token", "The provided token is invalid"))
			return
		}

		ctx.Set(ContextUserID, claims.UserID)
		ctx.Next()
	}
}

// OptionalJWT identifies the caller when a valid token is sent and lets
// everyone else through anonymously.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if claims, err := jwthelper.ParseToken(a.signingKey, token); err == nil {
				ctx.Set(ContextUserID, claims.UserID)
			}
		}

		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
