package invalidation

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the wire format published to the invalidation topic.
// Downstream read replicas and edge caches consume these to drop
// their own copies of event state.
type Message struct {
	ID         uuid.UUID `json:"id"`
	EventID    string    `json:"event_id"`
	Scope      Scope     `json:"scope"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source"`
}

// NewMessage builds an invalidation message for one event and scope.
func NewMessage(eventID string, scope Scope) *Message {
	return &Message{
		ID:         uuid.New(),
		EventID:    eventID,
		Scope:      scope,
		OccurredAt: time.Now().UTC(),
		Source:     "ticketing-core",
	}
}

// ToJSON serializes the message for publishing.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
