package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Deliver(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) wait(t *testing.T, n int) []Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		s.mu.Lock()
		if len(s.events) >= n {
			out := append([]Event(nil), s.events...)
			s.mu.Unlock()
			return out
		}
		s.mu.Unlock()

		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d events", n)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDispatcherFansOutToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	d := NewDispatcher(zap.NewNop(), first, second)

	actor := uint(2)
	d.Dispatch(Event{UserID: 1, ActorID: &actor, Action: "session_booked", Entity: "mentor_session"})

	got := first.wait(t, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "session_booked", got[0].Action)
	assert.Equal(t, uint(1), got[0].UserID)

	second.wait(t, 1)
}

func TestDispatcherSurvivesSinkFailure(t *testing.T) {
	broken := &recordingSink{err: errors.New("connection refused")}
	healthy := &recordingSink{}
	d := NewDispatcher(zap.NewNop(), broken, healthy)

	d.Dispatch(Event{UserID: 1, Action: "session_cancelled"})
	d.Dispatch(Event{UserID: 1, Action: "session_booked"})

	got := healthy.wait(t, 2)
	assert.Equal(t, "session_cancelled", got[0].Action)
	assert.Equal(t, "session_booked", got[1].Action)
}
