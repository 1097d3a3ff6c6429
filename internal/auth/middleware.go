package auth

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/users"
)

// UserEnsurer upserts the authenticated user; *users.Repo in production.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// WithUser resolves the caller and stores firebase_uid / user_db_id in the
// Gin context. It never aborts: handlers decide what an anonymous caller
// gets (mutations return 401, list queries return empty collections).
//
// When authClient is nil the middleware runs in development mode and trusts
// the X-User-Id header instead of verifying a token.
func WithUser(authClient *auth.Client, userRepo UserEnsurer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid, email := resolveCaller(c, authClient, log)
		if fuid == "" {
			c.Next()
			return
		}

		uid, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       email,
			DisplayName: c.GetHeader("X-User-Name"),
		})
		if err != nil {
			log.Warn("ensure user failed", zap.String("firebase_uid", fuid), zap.Error(err))
			c.Next()
			return
		}

		c.Set(CtxFirebaseUID, fuid)
		c.Set(CtxUserDBID, uid)
		c.Set(CtxUserEmail, email)
		c.Next()
	}
}

func resolveCaller(c *gin.Context, authClient *auth.Client, log *zap.Logger) (uid, email string) {
	if authClient == nil {
		// Development mode: trust the header.
		return strings.TrimSpace(c.GetHeader("X-User-Id")), c.GetHeader("X-User-Email")
	}

	token := extractToken(c)
	if token == "" {
		return "", ""
	}

	decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		log.Debug("invalid id token", zap.Error(err))
		return "", ""
	}

	if e, ok := decoded.Claims["email"].(string); ok {
		email = e
	}
	return decoded.UID, email
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
