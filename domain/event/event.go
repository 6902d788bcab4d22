// Package event carries what happened in the application to the telemetry worker.
// Events are fire and forget: a full telemetry channel drops them.
package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TeamsPublishedType Type = "TEAMS_PUBLISHED"
	MemberRoutedType   Type = "MEMBER_ROUTED"
)

type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

func New(eventType Type, payload any) Event {
	return Event{Type: eventType, CreatedAt: time.Now().UTC(), Payload: payload}
}

// Emit sends without blocking, a nil channel disables telemetry.
func Emit(ch chan<- Event, evt Event) bool {
	select {
	case ch <- evt:
		return true
	default:
		return false
	}
}

// TeamsPublished is raised once a split has been computed, published or not.
type TeamsPublished struct {
	SplitID   uuid.UUID
	MessageID string
	Voice     bool
	Teams     int
	Names     int
	Conflicts int
}

// MemberRouted is raised when a member has been moved to the voice channel of their team.
type MemberRouted struct {
	MessageID string
	MemberID  string
	ChannelID string
}
