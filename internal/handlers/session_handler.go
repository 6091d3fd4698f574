package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/httpresp"
	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/payment"
	ucSession "github.com/idolyst/mentorship-api/internal/usecase/session"
)

// ======================================================
// SERVICE INTERFACES
// ======================================================

type bookSessionService interface {
	Execute(ctx context.Context, menteeID uint, in ucSession.BookSessionInput) (*ucSession.BookSessionResult, error)
}

type updateStatusService interface {
	Execute(ctx context.Context, actorID uint, sessionID uint, in ucSession.UpdateStatusInput) (*models.MentorSession, error)
}

type rescheduleService interface {
	Execute(ctx context.Context, actorID uint, sessionID uint, newSlotID uint) (*models.MentorSession, error)
}

type listSessionsService interface {
	Execute(ctx context.Context, userID uint, status string) ([]models.MentorSession, error)
}

type getSessionService interface {
	Execute(ctx context.Context, userID uint, sessionID uint) (*models.MentorSession, error)
}

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	book       bookSessionService
	update     updateStatusService
	reschedule rescheduleService
	list       listSessionsService
	get        getSessionService
}

func NewSessionHandler(
	book bookSessionService,
	update updateStatusService,
	reschedule rescheduleService,
	list listSessionsService,
	get getSessionService,
) *SessionHandler {
	return &SessionHandler{
		book:       book,
		update:     update,
		reschedule: reschedule,
		list:       list,
		get:        get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookSessionRequest struct {
	MentorID      uint   `json:"mentor_id" binding:"required"`
	SlotID        uint   `json:"slot_id" binding:"required"`
	SessionTypeID uint   `json:"session_type_id" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Provider      string `json:"provider"`
}

type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RescheduleSessionRequest struct {
	SlotID uint `json:"slot_id" binding:"required"`
}

type MeetingLinkRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type SessionNotesRequest struct {
	Notes string `json:"notes" binding:"required,max=2000"`
}

// ======================================================
// BOOK
// ======================================================

func (h *SessionHandler) Book(c *gin.Context) {
	menteeID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	result, err := h.book.Execute(c.Request.Context(), menteeID, ucSession.BookSessionInput{
		MentorID:      req.MentorID,
		SlotID:        req.SlotID,
		SessionTypeID: req.SessionTypeID,
		Title:         req.Title,
		Description:   req.Description,
		Provider:      payment.Provider(req.Provider),
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *SessionHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	status := c.Query("status")

	sessions, err := h.list.Execute(c.Request.Context(), userID, status)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.List(c, sessions)
}

func (h *SessionHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, ok := paramID(c)
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *SessionHandler) Start(c *gin.Context) {
	h.transition(c, ucSession.UpdateStatusInput{NewStatus: "in-progress"})
}

func (h *SessionHandler) Complete(c *gin.Context) {
	h.transition(c, ucSession.UpdateStatusInput{NewStatus: "completed"})
}

func (h *SessionHandler) Cancel(c *gin.Context) {
	var req CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "cancellation_reason_required", "A cancellation reason is required.")
		return
	}

	h.transition(c, ucSession.UpdateStatusInput{
		NewStatus:          "cancelled",
		CancellationReason: req.Reason,
	})
}

func (h *SessionHandler) transition(c *gin.Context, in ucSession.UpdateStatusInput) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, ok := paramID(c)
	if !ok {
		return
	}

	s, err := h.update.Execute(c.Request.Context(), userID, sessionID, in)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *SessionHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A new slot id is required.")
		return
	}

	s, err := h.reschedule.Execute(c.Request.Context(), userID, sessionID, req.SlotID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// FIELD UPDATES
// ======================================================

func (h *SessionHandler) SetMeetingLink(c *gin.Context) {
	var req MeetingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A valid meeting url is required.")
		return
	}

	h.transition(c, ucSession.UpdateStatusInput{MeetingLink: &req.URL})
}

func (h *SessionHandler) SetNotes(c *gin.Context) {
	var req SessionNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Notes are required.")
		return
	}

	h.transition(c, ucSession.UpdateStatusInput{Notes: &req.Notes})
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid session id.")
		return 0, false
	}
	return uint(id), true
}
