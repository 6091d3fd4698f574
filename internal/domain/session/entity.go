package session

import (
	"time"

	"github.com/idolyst/mentorship-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// RoleOf derives the caller's side of the session. Callers that are neither
// party never reach these actions (repository lookups scope by participant).
func RoleOf(s *models.MentorSession, userID uint) Role {
	if s.MentorID == userID {
		return RoleMentor
	}
	return RoleMentee
}

func Start(s *models.MentorSession, role Role, now time.Time) error {
	if err := CanStart(Status(s.Status), role, now, s.StartTime); err != nil {
		return err
	}

	s.Status = string(StatusInProgress)
	return nil
}

func Complete(s *models.MentorSession, role Role, now time.Time) error {
	if err := CanComplete(Status(s.Status), role); err != nil {
		return err
	}

	s.Status = string(StatusCompleted)
	s.CompletedAt = &now
	return nil
}

func Cancel(s *models.MentorSession, actorID uint, reason string, now time.Time) error {
	if err := CanCancel(Status(s.Status), now, s.StartTime, reason); err != nil {
		return err
	}

	s.Status = string(StatusCancelled)
	s.CancelledBy = &actorID
	s.CancellationReason = reason
	s.CancelledAt = &now
	return nil
}

// Reschedule moves the session onto a new slot and re-enters the open state.
// Slot bookkeeping (release old, acquire new) is the repository's job.
func Reschedule(s *models.MentorSession, role Role, slot *models.AvailabilitySlot) error {
	if err := CanReschedule(Status(s.Status), role); err != nil {
		return err
	}

	s.SlotID = slot.ID
	s.StartTime = slot.StartTime
	s.EndTime = slot.EndTime
	s.Status = string(StatusRescheduled)
	return nil
}

func SetMeetingLink(s *models.MentorSession, role Role, url string) error {
	if err := CanSetMeetingLink(Status(s.Status), role); err != nil {
		return err
	}

	s.SessionURL = url
	return nil
}

func SetNotes(s *models.MentorSession, role Role, notes string) error {
	if err := CanSetNotes(Status(s.Status), role); err != nil {
		return err
	}

	s.SessionNotes = notes
	return nil
}
