package session

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/payment"
)

// fakeRepo is an in-memory domain.Repository. The mutex makes the slot CAS
// behave like the conditional UPDATE the real repository issues.
type fakeRepo struct {
	mu sync.Mutex

	profiles map[uint]*models.Profile
	types    map[uint]*models.SessionType
	slots    map[uint]*models.AvailabilitySlot
	sessions map[uint]*models.MentorSession

	nextSessionID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profiles: map[uint]*models.Profile{},
		types:    map[uint]*models.SessionType{},
		slots:    map[uint]*models.AvailabilitySlot{},
		sessions: map[uint]*models.MentorSession{},
	}
}

func (r *fakeRepo) GetProfileByID(_ context.Context, id uint) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetSessionType(_ context.Context, mentorID, typeID uint) (*models.SessionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.types[typeID]
	if !ok || st.MentorID != mentorID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeRepo) GetOpenSlot(_ context.Context, mentorID, slotID uint) (*models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[slotID]
	if !ok || slot.MentorID != mentorID || slot.Booked {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *slot
	return &cp, nil
}

func (r *fakeRepo) ListOpenSlots(_ context.Context, mentorID uint, from time.Time) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilitySlot
	for _, slot := range r.slots {
		if slot.MentorID == mentorID && !slot.Booked && !slot.StartTime.Before(from) {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (r *fakeRepo) BookSlotAndCreateSession(_ context.Context, s *models.MentorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[s.SlotID]
	if !ok || slot.MentorID != s.MentorID || slot.Booked {
		return httperr.ErrBusiness("slot_unavailable")
	}

	slot.Booked = true
	r.nextSessionID++
	s.ID = r.nextSessionID

	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) SwapSessionSlot(_ context.Context, s *models.MentorSession, oldSlotID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	newSlot, ok := r.slots[s.SlotID]
	if !ok || newSlot.MentorID != s.MentorID || newSlot.Booked {
		return httperr.ErrBusiness("slot_unavailable")
	}

	newSlot.Booked = true
	if old, ok := r.slots[oldSlotID]; ok {
		old.Booked = false
	}

	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) GetSessionForParticipant(_ context.Context, sessionID, userID uint) (*models.MentorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok || (s.MentorID != userID && s.MenteeID != userID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetSessionByPaymentReference(_ context.Context, reference string) (*models.MentorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.PaymentReference == reference && reference != "" {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateSession(_ context.Context, s *models.MentorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) ListSessionsForUser(_ context.Context, userID uint, status string) ([]models.MentorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.MentorSession
	for _, s := range r.sessions {
		if s.MentorID != userID && s.MenteeID != userID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

// slot returns the stored slot row for assertions.
func (r *fakeRepo) slot(id uint) models.AvailabilitySlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.slots[id]
}

func (r *fakeRepo) session(id uint) models.MentorSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.sessions[id]
}

// fakeGateway records calls and hands back canned orders.
type fakeGateway struct {
	mu    sync.Mutex
	calls []payment.OrderRequest
	order *payment.Order
	err   error
}

func (g *fakeGateway) CreateOrder(_ context.Context, _ uint, req payment.OrderRequest) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

func (g *fakeGateway) CaptureOrder(_ context.Context, _ payment.Provider, _ string) (string, error) {
	return "COMPLETED", nil
}

func (g *fakeGateway) VerifyWebhookSignature(_ []byte, _ string) bool {
	return true
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
