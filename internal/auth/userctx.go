package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
	CtxUserEmail   = "user_email"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// Empty when the request carried no valid credentials.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserDBID returns the database user id set by the auth middleware,
// or "" for an unauthenticated request.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}
