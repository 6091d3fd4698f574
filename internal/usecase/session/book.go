package session

import (
	"context"
	"strings"

	domain "github.com/idolyst/mentorship-api/internal/domain/session"
	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/notify"
	"github.com/idolyst/mentorship-api/internal/payment"
)

// ======================================================
// INPUT
// ======================================================

type BookSessionInput struct {
	MentorID      uint
	SlotID        uint
	SessionTypeID uint

	Title       string
	Description string

	Provider payment.Provider
}

// BookSessionResult carries the created session plus, for paid bookings, the
// gateway order the client still has to take through approval.
type BookSessionResult struct {
	Session *models.MentorSession `json:"session"`
	Order   *payment.Order        `json:"order,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type BookSession struct {
	repo     domain.Repository
	gateway  payment.Gateway
	notifier *notify.Dispatcher
}

func NewBookSession(
	repo domain.Repository,
	gateway payment.Gateway,
	notifier *notify.Dispatcher,
) *BookSession {
	return &BookSession{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookSession) Execute(
	ctx context.Context,
	menteeID uint,
	in BookSessionInput,
) (*BookSessionResult, error) {

	// 1. Input validation
	title := strings.TrimSpace(in.Title)
	if len(title) < 3 || len(title) > 100 {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if len(in.Description) > 500 {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if menteeID == in.MentorID {
		return nil, httperr.ErrBusiness("validation_error")
	}

	// 2. Slot must still be open and belong to this mentor
	slot, err := uc.repo.GetOpenSlot(ctx, in.MentorID, in.SlotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// 3. Pricing resolution
	st, err := uc.repo.GetSessionType(ctx, in.MentorID, in.SessionTypeID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_type_not_found")
	}

	s := &models.MentorSession{
		MentorID: in.MentorID,
		MenteeID: menteeID,
		SlotID:   slot.ID,

		SessionTypeID:      st.ID,
		SessionTypeName:    st.Name,
		SessionDurationMin: st.DurationMin,

		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,

		Status: string(domain.InitialStatus()),

		Title:       title,
		Description: in.Description,
	}

	var order *payment.Order

	if st.IsFree || st.Price == 0 {
		// Free offerings settle at booking time, no gateway involved.
		s.PaymentStatus = payment.StatusCompleted
		s.PaymentAmount = 0
		s.PaymentCurrency = st.Currency
		s.PaymentProvider = string(payment.ProviderFree)
	} else {
		// 4. Payment initiation. Order creation is not capture; the
		// session stays pending until reconciliation confirms it.
		order, err = uc.gateway.CreateOrder(ctx, menteeID, payment.OrderRequest{
			Provider:    in.Provider,
			Amount:      st.Price,
			Currency:    st.Currency,
			Description: title,
			Metadata: map[string]string{
				"session_type": st.Name,
			},
		})
		if err != nil {
			return nil, err
		}

		s.PaymentStatus = payment.StatusPending
		s.PaymentAmount = st.Price
		s.PaymentCurrency = st.Currency
		s.PaymentProvider = string(in.Provider)
		s.PaymentReference = order.OrderID
	}

	// 5. Atomic slot acquisition + session insert
	if err := uc.repo.BookSlotAndCreateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		UserID:   s.MentorID,
		ActorID:  &menteeID,
		Action:   "session_booked",
		Entity:   "mentor_session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"title":      s.Title,
			"start_time": s.StartTime,
		},
	})

	return &BookSessionResult{Session: s, Order: order}, nil
}
