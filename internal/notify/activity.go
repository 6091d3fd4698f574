package notify

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/idolyst/mentorship-api/internal/models"
)

// ActivityLogger persists events as activity rows. Keeps the audit trail
// queryable even when nobody is subscribed to the realtime channel.
type ActivityLogger struct {
	db *gorm.DB
}

func NewActivityLogger(db *gorm.DB) *ActivityLogger {
	return &ActivityLogger{db: db}
}

func (l *ActivityLogger) Deliver(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.ActivityLog{
		UserID:   ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

var _ Sink = (*ActivityLogger)(nil)
