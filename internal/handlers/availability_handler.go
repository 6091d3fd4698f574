package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/models"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// --------- Requests ---------

type CreateSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// --------- Handlers ---------

func (h *AvailabilityHandler) List(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)

	var slots []models.AvailabilitySlot
	if err := h.db.
		Where("mentor_id = ?", mentorID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_before_start"})
		return
	}
	if req.StartTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot_in_the_past"})
		return
	}

	slot := models.AvailabilitySlot{
		MentorID:  mentorID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
	}

	if err := h.db.Create(&slot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_slot"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	// A booked slot belongs to a session; it can only disappear through
	// that session's lifecycle.
	res := h.db.
		Where("id = ? AND mentor_id = ? AND booked = ?", id, mentorID, false).
		Delete(&models.AvailabilitySlot{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_slot"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "slot_not_found_or_booked"})
		return
	}

	c.Status(http.StatusNoContent)
}
