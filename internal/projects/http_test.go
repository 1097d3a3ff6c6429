package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
)

type fakeStore struct {
	projects map[string]*Project // keyed by userDBID + "/" + publicID
	created  []Draft
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: make(map[string]*Project)}
}

func (f *fakeStore) key(userDBID, publicID string) string { return userDBID + "/" + publicID }

func (f *fakeStore) Create(_ context.Context, userDBID string, d Draft) (*Project, error) {
	f.created = append(f.created, d)
	p := &Project{
		PublicID:     "sa-12345-6789",
		Name:         d.Name,
		TechStack:    TechStack(d.TechStack),
		CurrentPhase: Phase(d.CurrentPhase),
		TargetPhase:  Phase(d.TargetPhase),
		ScalingGoals: d.ScalingGoals,
		Status:       StatusActive,
	}
	f.projects[f.key(userDBID, p.PublicID)] = p
	return p, nil
}

func (f *fakeStore) List(_ context.Context, userDBID string) ([]Project, error) {
	out := []Project{}
	for k, p := range f.projects {
		if len(k) > len(userDBID) && k[:len(userDBID)] == userDBID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, userDBID, publicID string) (*Project, error) {
	p, ok := f.projects[f.key(userDBID, publicID)]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) Update(_ context.Context, userDBID, publicID string, u UpdateFields) (*Project, error) {
	p, ok := f.projects[f.key(userDBID, publicID)]
	if !ok {
		return nil, ErrNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Status != nil {
		p.Status = Status(*u.Status)
	}
	return p, nil
}

func (f *fakeStore) SoftDelete(_ context.Context, userDBID, publicID string) (bool, error) {
	k := f.key(userDBID, publicID)
	if _, ok := f.projects[k]; !ok {
		return false, nil
	}
	delete(f.projects, k)
	return true, nil
}

// newTestRouter mounts the handlers behind a stub auth middleware that trusts
// the X-User-Id header, mirroring development mode.
func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User-Id"); uid != "" {
			c.Set(auth.CtxUserDBID, uid)
		}
		c.Next()
	})
	Register(r.Group("/projects"), store, zap.NewNop())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]any {
	return map[string]any{
		"name":          "My Shop",
		"tech_stack":    "mern",
		"current_phase": "startup",
		"target_phase":  "scale",
		"scaling_goals": []string{"handle 10k users"},
	}
}

func TestCreateProject(t *testing.T) {
	t.Run("unauthenticated create returns 401", func(t *testing.T) {
		r := newTestRouter(newFakeStore())
		w := doJSON(t, r, http.MethodPost, "/projects", "", validCreateBody())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "user not authenticated")
	})

	t.Run("valid create returns 201 with the project", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		w := doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OK      bool    `json:"ok"`
			Project Project `json:"project"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "My Shop", resp.Project.Name)
		assert.Equal(t, StatusActive, resp.Project.Status)
		require.Len(t, store.created, 1)
	})

	t.Run("invalid enum returns 400 with validation message", func(t *testing.T) {
		r := newTestRouter(newFakeStore())
		body := validCreateBody()
		body["tech_stack"] = "fortran"
		w := doJSON(t, r, http.MethodPost, "/projects", "user-1", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Validation error")
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		r := newTestRouter(newFakeStore())
		req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString("{not json"))
		req.Header.Set("X-User-Id", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListProjects(t *testing.T) {
	t.Run("anonymous caller gets an empty list", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodGet, "/projects", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK       bool      `json:"ok"`
			Projects []Project `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Empty(t, resp.Projects)
	})

	t.Run("owner sees their projects", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodGet, "/projects", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Projects []Project `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Projects, 1)
	})
}

func TestGetProject(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)
	doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

	t.Run("non-owner gets 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/projects/sa-12345-6789", "user-2", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "project not found or access denied")
	})

	t.Run("unauthenticated gets 401", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/projects/sa-12345-6789", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("owner gets the project", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/projects/sa-12345-6789", "user-1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUpdateProject(t *testing.T) {
	t.Run("rejects invalid status", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodPatch, "/projects/sa-12345-6789", "user-1",
			map[string]any{"status": "paused"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "status must be one of")
	})

	t.Run("rejects blank name", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodPatch, "/projects/sa-12345-6789", "user-1",
			map[string]any{"name": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name is required")
	})

	t.Run("applies partial update", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodPatch, "/projects/sa-12345-6789", "user-1",
			map[string]any{"name": "Renamed", "status": "archived"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Project Project `json:"project"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Renamed", resp.Project.Name)
		assert.Equal(t, StatusArchived, resp.Project.Status)
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("delete then get returns 404", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodDelete, "/projects/sa-12345-6789", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/projects/sa-12345-6789", "user-1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deleting someone else's project returns 404", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store)
		doJSON(t, r, http.MethodPost, "/projects", "user-1", validCreateBody())

		w := doJSON(t, r, http.MethodDelete, "/projects/sa-12345-6789", "user-2", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
