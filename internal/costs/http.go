package costs

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type ProjectSource interface {
	Get(ctx context.Context, userDBID, publicID string) (*projects.Project, error)
}

type Handler struct {
	svc      *Service
	projects ProjectSource
	log      *zap.Logger
}

// RegisterProjectSubroutes mounts GET /:public_id/costs under the projects
// group; Register mounts the standalone estimate endpoint.
func RegisterProjectSubroutes(rg *gin.RouterGroup, svc *Service, src ProjectSource, log *zap.Logger) {
	h := &Handler{svc: svc, projects: src, log: log}
	rg.GET("/:public_id/costs", h.projectCosts)
}

func Register(rg *gin.RouterGroup, svc *Service, log *zap.Logger) {
	h := &Handler{svc: svc, log: log}
	rg.POST("/costs/estimate", h.estimate)
}

func (h *Handler) projectCosts(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	p, err := h.projects.Get(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		if err == projects.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": projects.ErrNotFound.Error()})
			return
		}
		h.log.Error("load project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to estimate costs"})
		return
	}

	est := h.svc.Estimate(c.Request.Context(), Input{
		TechStack:    p.TechStack,
		CurrentPhase: p.CurrentPhase,
		TargetPhase:  p.TargetPhase,
		GoalCount:    len(p.ScalingGoals),
	})
	c.JSON(http.StatusOK, gin.H{"ok": true, "estimate": est})
}

type estimateReq struct {
	TechStack    string `json:"tech_stack"`
	CurrentPhase string `json:"current_phase"`
	TargetPhase  string `json:"target_phase"`
	GoalCount    int    `json:"goal_count"`
}

// estimate computes a projection from inline fields, for the new-project
// form before anything is saved. Pure computation, no ownership involved.
func (h *Handler) estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	d := projects.Draft{
		Name:         "estimate",
		TechStack:    req.TechStack,
		CurrentPhase: req.CurrentPhase,
		TargetPhase:  req.TargetPhase,
	}
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	est := h.svc.Estimate(c.Request.Context(), Input{
		TechStack:    projects.TechStack(req.TechStack),
		CurrentPhase: projects.Phase(req.CurrentPhase),
		TargetPhase:  projects.Phase(req.TargetPhase),
		GoalCount:    req.GoalCount,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true, "estimate": est})
}
