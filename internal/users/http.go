package users

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	firebaseUID := strings.TrimSpace(c.GetString("firebase_uid"))
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	user, err := h.repo.GetByFirebaseUID(c.Request.Context(), firebaseUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}
