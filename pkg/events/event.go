package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "POST_COMMITTED").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

const (
	PostCommitted = "POST_COMMITTED"
	PostUpdated   = "POST_UPDATED"
	PostDeleted   = "POST_DELETED"
	PageUpdated   = "PAGE_UPDATED"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewPostEvent describes a change to one post. Slug is what readers cache by.
func NewPostEvent(eventType, postId, slug string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"post_id": postId,
			"slug":    slug,
		},
		OccurredAt: time.Now(),
	}
}

// NewPageEvent describes a change to a standing page.
func NewPageEvent(eventType, key string) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       map[string]interface{}{"page": key},
		OccurredAt: time.Now(),
	}
}

// StringField reads a string value from an event payload.
func StringField(e Event, key string) string {
	if v, ok := e.Payload()[key].(string); ok {
		return v
	}
	return ""
}
