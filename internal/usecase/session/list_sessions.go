package session

import (
	"context"
	"time"

	domain "github.com/idolyst/mentorship-api/internal/domain/session"
	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
)

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	userID uint,
	status string,
) ([]models.MentorSession, error) {

	if status != "" && !validStatusFilter(status) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	return uc.repo.ListSessionsForUser(ctx, userID, status)
}

func validStatusFilter(status string) bool {
	switch domain.Status(status) {
	case domain.StatusScheduled,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRescheduled:
		return true
	}
	return false
}

// ======================================================
// GET
// ======================================================

type GetSession struct {
	repo domain.Repository
}

func NewGetSession(repo domain.Repository) *GetSession {
	return &GetSession{repo: repo}
}

func (uc *GetSession) Execute(
	ctx context.Context,
	userID uint,
	sessionID uint,
) (*models.MentorSession, error) {

	s, err := uc.repo.GetSessionForParticipant(ctx, sessionID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	return s, nil
}

// ======================================================
// AVAILABILITY
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists a mentor's open future slots. Past slots are never
// bookable, so they are filtered at the query.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	mentorID uint,
) ([]models.AvailabilitySlot, error) {

	mentor, err := uc.repo.GetProfileByID(ctx, mentorID)
	if err != nil || !mentor.IsMentor {
		return nil, httperr.ErrBusiness("mentor_not_found")
	}

	return uc.repo.ListOpenSlots(ctx, mentorID, time.Now().UTC())
}
