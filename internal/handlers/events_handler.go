package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/notify"
)

// EventsHandler bridges the redis session channel onto an SSE stream, so a
// signed-in client sees its session changes pushed instead of polling.
type EventsHandler struct {
	publisher *notify.RedisPublisher
}

func NewEventsHandler(publisher *notify.RedisPublisher) *EventsHandler {
	return &EventsHandler{publisher: publisher}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sub := h.publisher.Subscribe(c.Request.Context(), userID)
	defer sub.Close()

	ch := sub.Channel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("session", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
