package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/models"
)

type SessionTypeHandler struct {
	db *gorm.DB
}

func NewSessionTypeHandler(db *gorm.DB) *SessionTypeHandler {
	return &SessionTypeHandler{db: db}
}

// --------- Requests ---------

type CreateSessionTypeRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=255"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
	Currency    string  `json:"currency"`
	IsFree      bool    `json:"is_free"`
}

type UpdateSessionTypeRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	IsFree      *bool    `json:"is_free,omitempty"`
}

// --------- Handlers ---------

func (h *SessionTypeHandler) List(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)

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

func (h *SessionTypeHandler) Create(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSessionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// A free offering cannot carry a price.
	if req.IsFree {
		req.Price = 0
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	st := models.SessionType{
		MentorID:    mentorID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Currency:    req.Currency,
		IsFree:      req.IsFree,
	}

	if err := h.db.Create(&st).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_session_type"})
		return
	}

	c.JSON(http.StatusCreated, st)
}

func (h *SessionTypeHandler) Update(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var st models.SessionType
	if err := h.db.
		Where("id = ? AND mentor_id = ?", id, mentorID).
		First(&st).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session_type_not_found"})
		return
	}

	var req UpdateSessionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
			return
		}
		st.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
			return
		}
		st.Price = *req.Price
	}
	if req.Currency != nil {
		st.Currency = *req.Currency
	}
	if req.IsFree != nil {
		st.IsFree = *req.IsFree
	}
	if st.IsFree {
		st.Price = 0
	}

	if err := h.db.Save(&st).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_session_type"})
		return
	}

	c.JSON(http.StatusOK, st)
}

// Delete removes the offering. Sessions booked against it keep their
// snapshot columns, so history is unaffected.
func (h *SessionTypeHandler) Delete(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND mentor_id = ?", id, mentorID).
		Delete(&models.SessionType{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_session_type"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "session_type_not_found"})
		return
	}

	c.Status(http.StatusNoContent)
}
