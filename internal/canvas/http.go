package canvas

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

// Store is the persistence surface the handlers need; tests swap in a fake.
type Store interface {
	SaveVersion(ctx context.Context, userDBID, publicID string, g *Graph) (*Version, error)
	Latest(ctx context.Context, userDBID, publicID string) (*Version, error)
	ListVersions(ctx context.Context, userDBID, publicID string) ([]Version, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

// RegisterProjectSubroutes mounts the canvas endpoints under the projects
// group; Register mounts the stateless preview endpoint.
func RegisterProjectSubroutes(rg *gin.RouterGroup, store Store, log *zap.Logger) {
	h := &Handler{store: store, log: log}

	rg.POST("/:public_id/canvas", h.save)
	rg.GET("/:public_id/canvas", h.latest)
	rg.GET("/:public_id/canvas/versions", h.versions)
	rg.GET("/:public_id/canvas/export.yaml", h.exportYAML)
}

func Register(rg *gin.RouterGroup, log *zap.Logger) {
	h := &Handler{log: log}
	rg.POST("/canvas/preview", h.preview)
}

func (h *Handler) save(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var g Graph
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := g.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	v, err := h.store.SaveVersion(c.Request.Context(), userID, c.Param("public_id"), &g)
	if err != nil {
		if err == projects.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": projects.ErrNotFound.Error()})
			return
		}
		h.log.Error("save canvas failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save canvas"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "version": v})
}

func (h *Handler) latest(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": nil})
		return
	}

	v, err := h.store.Latest(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		if err == projects.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"ok": true, "version": nil})
			return
		}
		h.log.Error("load canvas failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load canvas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "version": v})
}

func (h *Handler) versions(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "versions": []Version{}})
		return
	}

	items, err := h.store.ListVersions(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		if err == projects.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"ok": true, "versions": []Version{}})
			return
		}
		h.log.Error("list canvas versions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to list canvas versions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "versions": items})
}

func (h *Handler) exportYAML(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	v, err := h.store.Latest(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		if err == projects.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no saved canvas"})
			return
		}
		h.log.Error("load canvas failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to export canvas"})
		return
	}

	var g Graph
	if err := json.Unmarshal(v.GraphJSON, &g); err != nil {
		h.log.Error("decode stored canvas failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to export canvas"})
		return
	}

	out, err := ExportYAML(&g)
	if err != nil {
		h.log.Error("export canvas failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to export canvas"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="canvas.yaml"`)
	c.Data(http.StatusOK, "application/x-yaml", []byte(out))
}

// preview turns a posted node graph into Terraform/Kubernetes text without
// persisting anything.
func (h *Handler) preview(c *gin.Context) {
	var g Graph
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := g.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "preview": GeneratePreview(&g)})
}
