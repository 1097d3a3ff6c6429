package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/users"
)

type fakeEnsurer struct {
	calls []users.UpsertUser
	id    string
	err   error
}

func (f *fakeEnsurer) EnsureUser(_ context.Context, u users.UpsertUser) (string, error) {
	f.calls = append(f.calls, u)
	return f.id, f.err
}

type capturedCtx struct {
	firebaseUID string
	userDBID    string
	email       string
}

// captureRouter records what the middleware left in the context.
func captureRouter(ensurer UserEnsurer) (*gin.Engine, *capturedCtx) {
	gin.SetMode(gin.TestMode)
	captured := &capturedCtx{}
	r := gin.New()
	r.Use(WithUser(nil, ensurer, zap.NewNop()))
	r.GET("/probe", func(c *gin.Context) {
		captured.firebaseUID = c.GetString(CtxFirebaseUID)
		captured.userDBID = c.GetString(CtxUserDBID)
		captured.email = c.GetString(CtxUserEmail)
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestWithUser_DevMode(t *testing.T) {
	t.Run("trusts the X-User-Id header when firebase is disabled", func(t *testing.T) {
		ensurer := &fakeEnsurer{id: "db-uuid-1"}
		r, captured := captureRouter(ensurer)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-User-Id", "fb-123")
		req.Header.Set("X-User-Email", "dev@example.com")
		req.Header.Set("X-User-Name", "Dev")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fb-123", captured.firebaseUID)
		assert.Equal(t, "db-uuid-1", captured.userDBID)
		assert.Equal(t, "dev@example.com", captured.email)

		require.Len(t, ensurer.calls, 1)
		assert.Equal(t, "fb-123", ensurer.calls[0].FirebaseUID)
		assert.Equal(t, "Dev", ensurer.calls[0].DisplayName)
	})

	t.Run("missing header leaves the request anonymous without aborting", func(t *testing.T) {
		ensurer := &fakeEnsurer{id: "db-uuid-1"}
		r, captured := captureRouter(ensurer)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		require.Equal(t, http.StatusOK, w.Code, "middleware must never abort")
		assert.Empty(t, captured.firebaseUID)
		assert.Empty(t, captured.userDBID)
		assert.Empty(t, ensurer.calls)
	})

	t.Run("ensure failure degrades to anonymous", func(t *testing.T) {
		ensurer := &fakeEnsurer{err: assert.AnError}
		r, captured := captureRouter(ensurer)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-User-Id", "fb-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, captured.userDBID)
	})
}

func TestUserDBID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, UserDBID(c))
	c.Set(CtxUserDBID, "db-uuid-9")
	assert.Equal(t, "db-uuid-9", UserDBID(c))
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newCtx := func(header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		return c
	}

	assert.Equal(t, "abc.def.ghi", extractToken(newCtx("Bearer abc.def.ghi")))
	assert.Empty(t, extractToken(newCtx("")))
	assert.Empty(t, extractToken(newCtx("Basic dXNlcjpwYXNz")))
	assert.Empty(t, extractToken(newCtx("Bearer ")))
}
