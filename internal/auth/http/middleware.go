// Package http provides authentication, authorization and rate limiting middleware.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	authService "github.com/aru-nika-08/attendance-tracking-system/internal/auth/service"
	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware establishes the principal from an optional
// "Authorization: Bearer <jwt>" header. Requests without the header continue
// anonymously; a present but invalid credential is rejected with 401.
func AuthenticationMiddleware(verifier authService.PrincipalVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidCredentials, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidCredentials, logger)
			c.Abort()
			return
		}

		principal, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := authDomain.WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("email", principal.Email),
			slog.String("role", string(principal.Role)))

		c.Next()
	}
}

// RequireAuthentication rejects anonymous requests with 401. It must run
// after AuthenticationMiddleware.
func RequireAuthentication(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authDomain.PrincipalFromContext(c.Request.Context()); !ok {
			httputil.HandleErrorGin(c, authDomain.ErrAuthenticationRequired, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and principals without role
// with 403. It must run after AuthenticationMiddleware.
func RequireRole(role authDomain.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authDomain.PrincipalFromContext(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, authDomain.ErrAuthenticationRequired, logger)
			c.Abort()
			return
		}

		if principal.Role != role {
			logger.Debug("authorization failed: insufficient role",
				slog.String("email", principal.Email),
				slog.String("role", string(principal.Role)),
				slog.String("required", string(role)))
			httputil.HandleErrorGin(c, authDomain.ErrInsufficientRole, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
