package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/httpresp"
	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.Profile
	if err := h.db.First(&profile, userID).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	httpresp.OK(c, profile)
}
