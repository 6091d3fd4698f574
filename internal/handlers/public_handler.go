package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/httpresp"
	"github.com/idolyst/mentorship-api/internal/models"
)

type availabilityService interface {
	Execute(ctx context.Context, mentorID uint) ([]models.AvailabilitySlot, error)
}

type PublicHandler struct {
	db           *gorm.DB
	availability availabilityService
}

func NewPublicHandler(db *gorm.DB, availability availabilityService) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
	}
}

func (h *PublicHandler) mentorID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "Invalid mentor id.")
		return 0, false
	}
	return uint(id), true
}

func (h *PublicHandler) ListSessionTypes(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	var mentor models.Profile
	if err := h.db.
		Where("id = ? AND is_mentor = ?", mentorID, true).
		First(&mentor).Error; err != nil {
		httperr.NotFound(c, "mentor_not_found", "Mentor not found.")
		return
	}

	var types []models.SessionType
	if err := h.db.
		Where("mentor_id = ?", mentorID).
		Order("id ASC").
		Find(&types).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_session_types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), mentorID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.List(c, slots)
}
