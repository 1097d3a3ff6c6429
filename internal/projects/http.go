package projects

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
)

// Store is the slice of Repo the handlers need; tests swap in a fake.
type Store interface {
	Create(ctx context.Context, userDBID string, d Draft) (*Project, error)
	List(ctx context.Context, userDBID string) ([]Project, error)
	Get(ctx context.Context, userDBID, publicID string) (*Project, error)
	Update(ctx context.Context, userDBID, publicID string, u UpdateFields) (*Project, error)
	SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func Register(rg *gin.RouterGroup, store Store, log *zap.Logger) {
	h := &Handler{store: store, log: log}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.DELETE("/:public_id", h.remove)
}

type createReq struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	TechStack    string   `json:"tech_stack"`
	CurrentPhase string   `json:"current_phase"`
	TargetPhase  string   `json:"target_phase"`
	CurrentInfra string   `json:"current_infra"`
	ScalingGoals []string `json:"scaling_goals"`
}

func (h *Handler) create(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	d := Draft{
		Name:         req.Name,
		Description:  req.Description,
		TechStack:    req.TechStack,
		CurrentPhase: req.CurrentPhase,
		TargetPhase:  req.TargetPhase,
		CurrentInfra: req.CurrentInfra,
		ScalingGoals: req.ScalingGoals,
	}
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	p, err := h.store.Create(c.Request.Context(), userID, d)
	if err != nil {
		h.log.Error("create project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		// read path: anonymous callers see an empty collection
		c.JSON(http.StatusOK, gin.H{"ok": true, "projects": []Project{}})
		return
	}

	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("list projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	p, err := h.store.Get(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": ErrNotFound.Error()})
			return
		}
		h.log.Error("get project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to get project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	TechStack    *string   `json:"tech_stack"`
	CurrentPhase *string   `json:"current_phase"`
	TargetPhase  *string   `json:"target_phase"`
	CurrentInfra *string   `json:"current_infra"`
	ScalingGoals *[]string `json:"scaling_goals"`
	Status       *string   `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := validateUpdate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	u := UpdateFields{
		Name:         req.Name,
		Description:  req.Description,
		TechStack:    req.TechStack,
		CurrentPhase: req.CurrentPhase,
		TargetPhase:  req.TargetPhase,
		CurrentInfra: req.CurrentInfra,
		ScalingGoals: req.ScalingGoals,
		Status:       req.Status,
	}

	p, err := h.store.Update(c.Request.Context(), userID, c.Param("public_id"), u)
	if err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": ErrNotFound.Error()})
			return
		}
		h.log.Error("update project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) remove(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	ok, err := h.store.SoftDelete(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		h.log.Error("delete project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to delete project"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": ErrNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func validateUpdate(req *updateReq) error {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		*req.Name = trimmed
		if trimmed == "" {
			return validationMsg("name is required")
		}
		if len(trimmed) > MaxNameLen {
			return validationMsg("name exceeds maximum length of 100")
		}
	}
	if req.TechStack != nil {
		if !oneOf(*req.TechStack, "mern", "mean", "nextjs", "django", "flask", "rails", "laravel", "golang") {
			return validationMsg("techstack must be one of [mern mean nextjs django flask rails laravel golang]")
		}
	}
	if req.CurrentPhase != nil && !validPhase(*req.CurrentPhase) {
		return validationMsg("currentphase must be one of [startup growth scale enterprise]")
	}
	if req.TargetPhase != nil && !validPhase(*req.TargetPhase) {
		return validationMsg("targetphase must be one of [startup growth scale enterprise]")
	}
	if req.Status != nil && !oneOf(*req.Status, "active", "completed", "archived") {
		return validationMsg("status must be one of [active completed archived]")
	}
	if req.ScalingGoals != nil {
		normalized := NormalizeGoals(*req.ScalingGoals)
		*req.ScalingGoals = normalized
	}
	return nil
}

func validationMsg(s string) error {
	return fmt.Errorf("Validation error: %s", s)
}

func validPhase(s string) bool {
	return oneOf(s, "startup", "growth", "scale", "enterprise")
}

func oneOf(s string, opts ...string) bool {
	for _, o := range opts {
		if s == o {
			return true
		}
	}
	return false
}
