package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/raffle-api/internal/service"
)

type AdminVerifier interface {
	VerifyToken(token string) error
	VerifyPassword(password string) error
}

type legacyCredential struct {
	Pass string `json:"pass"`
}

// AdminAuthenticator lets a request through when it carries a valid admin
// bearer token, or the legacy admin password as ?pass= or a JSON "pass" field.
type AdminAuthenticator struct {
	verifier AdminVerifier
}

func NewAdminAuthenticator(verifier AdminVerifier) *AdminAuthenticator {
	return &AdminAuthenticator{
		verifier: verifier,
	}
}

func (a *AdminAuthenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, ok := bearerToken(ctx.GetHeader("Authorization")); ok {
			if err := a.verifier.VerifyToken(token); err != nil {
				response.RenderErr(ctx, response.ErrUnauthorized(err))
				return
			}
			ctx.Next()
			return
		}

		if err := a.verifier.VerifyPassword(legacyPassword(ctx)); err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	return strings.TrimSpace(header[len(prefix):]), true
}

func legacyPassword(ctx *gin.Context) string {
	if pass := ctx.Query("pass"); pass != "" {
		return pass
	}

	if ctx.Request.Method != http.MethodPost || ctx.Request.Body == nil {
		return ""
	}

	// ShouldBindBodyWith caches the body so the handler can bind it again.
	var cred legacyCredential
	if err := ctx.ShouldBindBodyWith(&cred, binding.JSON); err != nil {
		return ""
	}

	return cred.Pass
}

var _ AdminVerifier = (*service.AdminAuthService)(nil)
