package advisor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/compliance"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/configgen"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/recommend"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/roadmap"
	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

// ProjectSource provides the owned project a generator runs against.
type ProjectSource interface {
	Get(ctx context.Context, userDBID, publicID string) (*projects.Project, error)
}

// Store is the persistence surface the handlers need; tests swap in a fake.
type Store interface {
	ReplaceRecommendations(ctx context.Context, userDBID, publicID string, recs []recommend.Recommendation) error
	ListRecommendations(ctx context.Context, userDBID, publicID string) ([]StoredRecommendation, error)
	ReplaceRoadmap(ctx context.Context, userDBID, publicID string, steps []roadmap.Step) error
	ListRoadmap(ctx context.Context, userDBID, publicID string) ([]StoredStep, error)
	UpsertConfigurations(ctx context.Context, userDBID, publicID string, arts []configgen.Artifact) error
	ListConfigurations(ctx context.Context, userDBID, publicID string) ([]StoredConfiguration, error)
	ReplaceComplianceChecks(ctx context.Context, userDBID, publicID string, checks []compliance.Check) error
	ListComplianceChecks(ctx context.Context, userDBID, publicID string) ([]StoredCheck, error)
}

type Handler struct {
	store    Store
	projects ProjectSource
	log      *zap.Logger
}

// RegisterProjectSubroutes mounts the advisory endpoints under the projects
// group: /:public_id/{recommendations,roadmap,configurations,compliance}.
func RegisterProjectSubroutes(rg *gin.RouterGroup, store Store, src ProjectSource, log *zap.Logger) {
	h := &Handler{store: store, projects: src, log: log}

	rg.POST("/:public_id/recommendations/generate", h.generateRecommendations)
	rg.GET("/:public_id/recommendations", h.listRecommendations)
	rg.POST("/:public_id/roadmap/generate", h.generateRoadmap)
	rg.GET("/:public_id/roadmap", h.listRoadmap)
	rg.POST("/:public_id/configurations/generate", h.generateConfigurations)
	rg.GET("/:public_id/configurations", h.listConfigurations)
	rg.POST("/:public_id/compliance/generate", h.generateCompliance)
	rg.GET("/:public_id/compliance", h.listCompliance)
}

// ownedProject is the shared preamble of every generate handler: an
// authenticated caller and a project they own.
func (h *Handler) ownedProject(c *gin.Context) (*projects.Project, bool) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return nil, false
	}

	p, err := h.projects.Get(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		if err == projects.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": projects.ErrNotFound.Error()})
			return nil, false
		}
		h.log.Error("load project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load project"})
		return nil, false
	}
	return p, true
}

func (h *Handler) generateRecommendations(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	recs := recommend.Generate(p)
	if err := h.store.ReplaceRecommendations(c.Request.Context(), auth.UserDBID(c), p.PublicID, recs); err != nil {
		h.log.Error("store recommendations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "recommendations": recs})
}

func (h *Handler) listRecommendations(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "recommendations": []StoredRecommendation{}})
		return
	}

	items, err := h.store.ListRecommendations(c.Request.Context(), userID, c.Param("public_id"))
	h.respondList(c, "recommendations", items, []StoredRecommendation{}, err)
}

func (h *Handler) generateRoadmap(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	steps := roadmap.Generate(p)
	if err := h.store.ReplaceRoadmap(c.Request.Context(), auth.UserDBID(c), p.PublicID, steps); err != nil {
		h.log.Error("store roadmap failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to generate roadmap"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "roadmap": steps})
}

func (h *Handler) listRoadmap(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "roadmap": []StoredStep{}})
		return
	}

	items, err := h.store.ListRoadmap(c.Request.Context(), userID, c.Param("public_id"))
	h.respondList(c, "roadmap", items, []StoredStep{}, err)
}

func (h *Handler) generateConfigurations(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	arts := configgen.Generate(p)
	if err := h.store.UpsertConfigurations(c.Request.Context(), auth.UserDBID(c), p.PublicID, arts); err != nil {
		h.log.Error("store configurations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to generate configurations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "configurations": arts})
}

func (h *Handler) listConfigurations(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "configurations": []StoredConfiguration{}})
		return
	}

	items, err := h.store.ListConfigurations(c.Request.Context(), userID, c.Param("public_id"))
	h.respondList(c, "configurations", items, []StoredConfiguration{}, err)
}

func (h *Handler) generateCompliance(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	checks := compliance.Generate(p)
	if err := h.store.ReplaceComplianceChecks(c.Request.Context(), auth.UserDBID(c), p.PublicID, checks); err != nil {
		h.log.Error("store compliance checks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to generate compliance checks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "checks": checks})
}

func (h *Handler) listCompliance(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "checks": []StoredCheck{}})
		return
	}

	items, err := h.store.ListComplianceChecks(c.Request.Context(), userID, c.Param("public_id"))
	h.respondList(c, "checks", items, []StoredCheck{}, err)
}

// respondList implements the read-path contract: a project the caller does
// not own yields an empty collection, not an error.
func (h *Handler) respondList(c *gin.Context, key string, items any, empty any, err error) {
	if err == projects.ErrNotFound {
		c.JSON(http.StatusOK, gin.H{"ok": true, key: empty})
		return
	}
	if err != nil {
		h.log.Error("list "+key+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to list " + key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, key: items})
}
