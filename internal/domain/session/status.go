package session

import (
	"strings"
	"time"

	"github.com/idolyst/mentorship-api/internal/httperr"
)

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusInProgress  Status = "in-progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

// Role is the caller's side of a session, derived from the session row
// itself rather than any global account role.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// isOpen: a session that has not started yet. Rescheduled sessions behave
// exactly like scheduled ones for every subsequent transition.
func isOpen(s Status) bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// ===============================
// Validations
// ===============================

// CanStart gates scheduled → in-progress. Mentor only, and never before the
// session's start time; completed and cancelled are terminal.
func CanStart(current Status, role Role, now, startTime time.Time) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_transition")
	}
	if role != RoleMentor {
		return httperr.ErrBusiness("unauthorized_actor")
	}
	if now.Before(startTime) {
		return httperr.ErrBusiness("session_not_started")
	}
	return nil
}

// CanComplete gates in-progress → completed.
func CanComplete(current Status, role Role) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_transition")
	}
	if role != RoleMentor {
		return httperr.ErrBusiness("unauthorized_actor")
	}
	return nil
}

// CanCancel gates scheduled/rescheduled → cancelled. Either party may cancel
// a session that has not started, and must say why.
func CanCancel(current Status, now, startTime time.Time, reason string) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_transition")
	}
	if !now.Before(startTime) {
		return httperr.ErrBusiness("session_already_started")
	}
	if strings.TrimSpace(reason) == "" {
		return httperr.ErrBusiness("cancellation_reason_required")
	}
	return nil
}

// CanReschedule gates scheduled/rescheduled → rescheduled.
func CanReschedule(current Status, role Role) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_transition")
	}
	if role != RoleMentor {
		return httperr.ErrBusiness("unauthorized_actor")
	}
	return nil
}

// CanSetMeetingLink: the link may change while the session is still live.
func CanSetMeetingLink(current Status, role Role) error {
	if !isOpen(current) && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_transition")
	}
	if role != RoleMentor {
		return httperr.ErrBusiness("unauthorized_actor")
	}
	return nil
}

// CanSetNotes: mentor-authored notes exist only after completion.
func CanSetNotes(current Status, role Role) error {
	if current != StatusCompleted {
		return httperr.ErrBusiness("invalid_transition")
	}
	if role != RoleMentor {
		return httperr.ErrBusiness("unauthorized_actor")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
