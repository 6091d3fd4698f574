package session

import (
	"context"
	"time"

	domain "github.com/idolyst/mentorship-api/internal/domain/session"
	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type UpdateStatusInput struct {
	// Empty means no status change; the call may still set the meeting
	// link or the session notes.
	NewStatus string

	CancellationReason string
	MeetingLink        *string
	Notes              *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateSessionStatus struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
}

func NewUpdateSessionStatus(
	repo domain.Repository,
	notifier *notify.Dispatcher,
) *UpdateSessionStatus {
	return &UpdateSessionStatus{
		repo:     repo,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateSessionStatus) Execute(
	ctx context.Context,
	actorID uint,
	sessionID uint,
	in UpdateStatusInput,
) (*models.MentorSession, error) {

	s, err := uc.repo.GetSessionForParticipant(ctx, sessionID, actorID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	role := domain.RoleOf(s, actorID)
	now := time.Now().UTC()

	// Link changes are validated against the current status, before any
	// transition in the same request takes effect.
	if in.MeetingLink != nil {
		if err := domain.SetMeetingLink(s, role, *in.MeetingLink); err != nil {
			return nil, err
		}
	}

	action := "session_updated"

	switch domain.Status(in.NewStatus) {
	case "":
		// field-only update
	case domain.StatusInProgress:
		if err := domain.Start(s, role, now); err != nil {
			return nil, err
		}
		action = "session_started"
	case domain.StatusCompleted:
		if err := domain.Complete(s, role, now); err != nil {
			return nil, err
		}
		action = "session_completed"
	case domain.StatusCancelled:
		if err := domain.Cancel(s, actorID, in.CancellationReason, now); err != nil {
			return nil, err
		}
		action = "session_cancelled"
	default:
		// Includes requests for the current status and for states only
		// reachable through other operations (reschedule).
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	if in.Notes != nil {
		if err := domain.SetNotes(s, role, *in.Notes); err != nil {
			return nil, err
		}
	}

	// Single atomic row write; any failure leaves the stored session in
	// its prior state.
	if err := uc.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		UserID:   counterparty(s, actorID),
		ActorID:  &actorID,
		Action:   action,
		Entity:   "mentor_session",
		EntityID: &s.ID,
	})

	return s, nil
}

func counterparty(s *models.MentorSession, actorID uint) uint {
	if s.MentorID == actorID {
		return s.MenteeID
	}
	return s.MentorID
}
