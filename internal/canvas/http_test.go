package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

// memStore keeps versions in memory for a single owned project.
type memStore struct {
	owner    string
	publicID string
	versions []Version
}

func (m *memStore) owned(userDBID, publicID string) error {
	if userDBID != m.owner || publicID != m.publicID {
		return projects.ErrNotFound
	}
	return nil
}

func (m *memStore) SaveVersion(_ context.Context, userDBID, publicID string, g *Graph) (*Version, error) {
	if err := m.owned(userDBID, publicID); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	v := Version{
		ID:            "v",
		VersionNumber: len(m.versions) + 1,
		GraphJSON:     raw,
		CreatedAt:     time.Now(),
	}
	m.versions = append(m.versions, v)
	return &v, nil
}

func (m *memStore) Latest(_ context.Context, userDBID, publicID string) (*Version, error) {
	if err := m.owned(userDBID, publicID); err != nil {
		return nil, err
	}
	if len(m.versions) == 0 {
		return nil, projects.ErrNotFound
	}
	v := m.versions[len(m.versions)-1]
	return &v, nil
}

func (m *memStore) ListVersions(_ context.Context, userDBID, publicID string) ([]Version, error) {
	if err := m.owned(userDBID, publicID); err != nil {
		return nil, err
	}
	return m.versions, nil
}

func newCanvasRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User-Id"); uid != "" {
			c.Set(auth.CtxUserDBID, uid)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	RegisterProjectSubroutes(api.Group("/projects"), store, zap.NewNop())
	Register(api, zap.NewNop())
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

func TestSaveCanvas(t *testing.T) {
	const path = "/api/v1/projects/sa-12345-6789/canvas"

	t.Run("unauthenticated save returns 401", func(t *testing.T) {
		r := newCanvasRouter(&memStore{owner: "user-1", publicID: "sa-12345-6789"})
		w := doJSON(t, r, http.MethodPost, path, "", validGraph())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid graph returns 400", func(t *testing.T) {
		r := newCanvasRouter(&memStore{owner: "user-1", publicID: "sa-12345-6789"})
		g := validGraph()
		g.Nodes[0].Type = "mainframe"
		w := doJSON(t, r, http.MethodPost, path, "user-1", g)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Validation error")
	})

	t.Run("non-owner save returns 404", func(t *testing.T) {
		r := newCanvasRouter(&memStore{owner: "user-1", publicID: "sa-12345-6789"})
		w := doJSON(t, r, http.MethodPost, path, "user-2", validGraph())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("saves assign increasing version numbers", func(t *testing.T) {
		store := &memStore{owner: "user-1", publicID: "sa-12345-6789"}
		r := newCanvasRouter(store)

		w := doJSON(t, r, http.MethodPost, path, "user-1", validGraph())
		require.Equal(t, http.StatusCreated, w.Code)
		w = doJSON(t, r, http.MethodPost, path, "user-1", validGraph())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Version Version `json:"version"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Version.VersionNumber)
	})
}

func TestLoadCanvas(t *testing.T) {
	const path = "/api/v1/projects/sa-12345-6789/canvas"

	t.Run("anonymous latest returns null version", func(t *testing.T) {
		r := newCanvasRouter(&memStore{owner: "user-1", publicID: "sa-12345-6789"})
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version":null`)
	})

	t.Run("no saved canvas returns null version", func(t *testing.T) {
		r := newCanvasRouter(&memStore{owner: "user-1", publicID: "sa-12345-6789"})
		w := doJSON(t, r, http.MethodGet, path, "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version":null`)
	})

	t.Run("owner gets the latest version", func(t *testing.T) {
		store := &memStore{owner: "user-1", publicID: "sa-12345-6789"}
		r := newCanvasRouter(store)
		doJSON(t, r, http.MethodPost, path, "user-1", validGraph())

		w := doJSON(t, r, http.MethodGet, path, "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Version *Version `json:"version"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Version)
		assert.Equal(t, 1, resp.Version.VersionNumber)
	})

	t.Run("anonymous versions list is empty", func(t *testing.T) {
		store := &memStore{owner: "user-1", publicID: "sa-12345-6789"}
		r := newCanvasRouter(store)
		doJSON(t, r, http.MethodPost, path, "user-1", validGraph())

		w := doJSON(t, r, http.MethodGet, path+"/versions", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"versions":[]`)
	})
}

func TestExportCanvasYAML(t *testing.T) {
	const path = "/api/v1/projects/sa-12345-6789/canvas"

	t.Run("exports the latest graph as yaml attachment", func(t *testing.T) {
		store := &memStore{owner: "user-1", publicID: "sa-12345-6789"}
		r := newCanvasRouter(store)
		doJSON(t, r, http.MethodPost, path, "user-1", validGraph())

		w := doJSON(t, r, http.MethodGet, path+"/export.yaml", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-yaml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "canvas.yaml")
		assert.Contains(t, w.Body.String(), "load_balancer")
	})

	t.Run("no saved canvas returns 404", func(t *testing.T) {
		r := newCanvasRouter(&memStore{owner: "user-1", publicID: "sa-12345-6789"})
		w := doJSON(t, r, http.MethodGet, path+"/export.yaml", "user-1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPreviewEndpoint(t *testing.T) {
	const path = "/api/v1/canvas/preview"
	r := newCanvasRouter(&memStore{})

	t.Run("anonymous preview is allowed", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, path, "", validGraph())
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Preview Preview `json:"preview"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Preview.Terraform, `resource "aws_lb"`)
		assert.Contains(t, resp.Preview.Kubernetes, "kind: Deployment")
	})

	t.Run("invalid graph returns 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, path, "", &Graph{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
