package session

import (
	"context"

	domain "github.com/idolyst/mentorship-api/internal/domain/session"
	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/notify"
)

type RescheduleSession struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
}

func NewRescheduleSession(
	repo domain.Repository,
	notifier *notify.Dispatcher,
) *RescheduleSession {
	return &RescheduleSession{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *RescheduleSession) Execute(
	ctx context.Context,
	actorID uint,
	sessionID uint,
	newSlotID uint,
) (*models.MentorSession, error) {

	s, err := uc.repo.GetSessionForParticipant(ctx, sessionID, actorID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	role := domain.RoleOf(s, actorID)

	newSlot, err := uc.repo.GetOpenSlot(ctx, s.MentorID, newSlotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	oldSlotID := s.SlotID
	if err := domain.Reschedule(s, role, newSlot); err != nil {
		return nil, err
	}

	// Old slot reopens, new slot is CAS-acquired, session row saved — one
	// transaction, so a lost race leaves everything untouched.
	if err := uc.repo.SwapSessionSlot(ctx, s, oldSlotID); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		UserID:   counterparty(s, actorID),
		ActorID:  &actorID,
		Action:   "session_rescheduled",
		Entity:   "mentor_session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"start_time": s.StartTime,
		},
	})

	return s, nil
}
