package session

import (
	"context"

	domain "github.com/idolyst/mentorship-api/internal/domain/session"
	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/notify"
	"github.com/idolyst/mentorship-api/internal/payment"
)

// ReconcilePayment settles a pending session after the provider reports the
// outcome of its order. Order creation at booking time is not capture; this
// is the step that makes a paid session real.
type ReconcilePayment struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
}

func NewReconcilePayment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
) *ReconcilePayment {
	return &ReconcilePayment{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *ReconcilePayment) Execute(
	ctx context.Context,
	reference string,
	outcome string,
) (*models.MentorSession, error) {

	if outcome != payment.StatusCompleted && outcome != payment.StatusFailed {
		return nil, httperr.ErrBusiness("validation_error")
	}

	s, err := uc.repo.GetSessionByPaymentReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	// Providers redeliver webhooks; a settled session stays settled.
	if s.PaymentStatus != payment.StatusPending {
		return s, nil
	}

	s.PaymentStatus = outcome
	if err := uc.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}

	action := "payment_completed"
	if outcome == payment.StatusFailed {
		action = "payment_failed"
	}

	uc.notifier.Dispatch(notify.Event{
		UserID:   s.MenteeID,
		Action:   action,
		Entity:   "mentor_session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"reference": reference,
		},
	})

	return s, nil
}
