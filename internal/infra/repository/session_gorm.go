package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/idolyst/mentorship-api/internal/domain/session"
	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *SessionGormRepository) GetProfileByID(
	ctx context.Context,
	id uint,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// SessionType
// --------------------------------------------------

func (r *SessionGormRepository) GetSessionType(
	ctx context.Context,
	mentorID uint,
	typeID uint,
) (*models.SessionType, error) {

	var st models.SessionType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND mentor_id = ?", typeID, mentorID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// AvailabilitySlot
// --------------------------------------------------

func (r *SessionGormRepository) GetOpenSlot(
	ctx context.Context,
	mentorID uint,
	slotID uint,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND mentor_id = ? AND booked = ?", slotID, mentorID, false).
		First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SessionGormRepository) ListOpenSlots(
	ctx context.Context,
	mentorID uint,
	from time.Time,
) ([]models.AvailabilitySlot, error) {

	var slots []models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where(
			"mentor_id = ? AND booked = ? AND start_time >= ?",
			mentorID, false, from,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Session (create / race)
// --------------------------------------------------

// bookSlot is the compare-and-set on the slot row. Zero rows affected means
// somebody else won the race since the slot was read.
func bookSlot(tx *gorm.DB, slotID uint, mentorID uint) error {
	res := tx.Model(&models.AvailabilitySlot{}).
		Where("id = ? AND mentor_id = ? AND booked = ?", slotID, mentorID, false).
		Update("booked", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

func (r *SessionGormRepository) BookSlotAndCreateSession(
	ctx context.Context,
	s *models.MentorSession,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bookSlot(tx, s.SlotID, s.MentorID); err != nil {
			return err
		}

		if err := tx.Create(s).Error; err != nil {
			// The unique index on slot_id backstops the CAS.
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_unavailable")
			}
			return err
		}

		return nil
	})
}

func (r *SessionGormRepository) SwapSessionSlot(
	ctx context.Context,
	s *models.MentorSession,
	oldSlotID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bookSlot(tx, s.SlotID, s.MentorID); err != nil {
			return err
		}

		if err := tx.Model(&models.AvailabilitySlot{}).
			Where("id = ? AND mentor_id = ?", oldSlotID, s.MentorID).
			Update("booked", false).Error; err != nil {
			return err
		}

		if err := tx.Save(s).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_unavailable")
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Session (state change)
// --------------------------------------------------

func (r *SessionGormRepository) GetSessionForParticipant(
	ctx context.Context,
	sessionID uint,
	userID uint,
) (*models.MentorSession, error) {

	var s models.MentorSession
	if err := r.db.WithContext(ctx).
		Where(
			"id = ? AND (mentor_id = ? OR mentee_id = ?)",
			sessionID, userID, userID,
		).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) GetSessionByPaymentReference(
	ctx context.Context,
	reference string,
) (*models.MentorSession, error) {

	var s models.MentorSession
	if err := r.db.WithContext(ctx).
		Where("payment_reference = ?", reference).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) UpdateSession(
	ctx context.Context,
	s *models.MentorSession,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// --------------------------------------------------
// Session (projections)
// --------------------------------------------------

func (r *SessionGormRepository) ListSessionsForUser(
	ctx context.Context,
	userID uint,
	status string,
) ([]models.MentorSession, error) {

	q := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Mentee").
		Where("mentor_id = ? OR mentee_id = ?", userID, userID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var sessions []models.MentorSession
	if err := q.Order("start_time DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
