package session

import (
	"context"
	"time"

	"github.com/idolyst/mentorship-api/internal/models"
)

type Repository interface {
	// -------- Profile --------
	GetProfileByID(
		ctx context.Context,
		id uint,
	) (*models.Profile, error)

	// -------- SessionType --------
	GetSessionType(
		ctx context.Context,
		mentorID uint,
		typeID uint,
	) (*models.SessionType, error)

	// -------- AvailabilitySlot --------
	GetOpenSlot(
		ctx context.Context,
		mentorID uint,
		slotID uint,
	) (*models.AvailabilitySlot, error)

	ListOpenSlots(
		ctx context.Context,
		mentorID uint,
		from time.Time,
	) ([]models.AvailabilitySlot, error)

	// -------- Session (create / race) --------

	// BookSlotAndCreateSession flips the slot's booked flag with a
	// conditional write and inserts the session in the same transaction.
	// A lost race returns ErrBusiness("slot_unavailable"), never a
	// duplicate booking.
	BookSlotAndCreateSession(
		ctx context.Context,
		s *models.MentorSession,
	) error

	// SwapSessionSlot releases the session's current slot, CAS-acquires
	// newSlotID and saves the session, all in one transaction.
	SwapSessionSlot(
		ctx context.Context,
		s *models.MentorSession,
		oldSlotID uint,
	) error

	// -------- Session (state change) --------
	GetSessionForParticipant(
		ctx context.Context,
		sessionID uint,
		userID uint,
	) (*models.MentorSession, error)

	GetSessionByPaymentReference(
		ctx context.Context,
		reference string,
	) (*models.MentorSession, error)

	UpdateSession(
		ctx context.Context,
		s *models.MentorSession,
	) error

	// -------- Session (projections) --------
	ListSessionsForUser(
		ctx context.Context,
		userID uint,
		status string,
	) ([]models.MentorSession, error)
}
