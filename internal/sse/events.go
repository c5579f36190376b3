// Package sse streams dataset revisions to dashboard clients over
// Server-Sent Events.
package sse

import (
	"time"

	"github.com/globaldefense/index-server/internal/domain"
)

// The dashboard is read-mostly: clients receive the full dataset document on
// every revision and re-render from it. There is no per-collection diffing on
// the wire; coalescing happens upstream in the syncer.

// EventType represents the type of SSE event.
type EventType string

const (
	// EventConnected confirms the stream is established.
	EventConnected EventType = "connected"
	// EventDataUpdated carries a full dataset revision.
	EventDataUpdated EventType = "data.updated"
	// EventDataEmpty signals that no dataset document exists yet.
	EventDataEmpty EventType = "data.empty"
	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to a client.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// ConnectedEventData is the data payload for connected events.
type ConnectedEventData struct {
	ClientID string `json:"clientId"`
	Message  string `json:"message"`
}

// DataUpdatedEventData is the data payload for data.updated events.
type DataUpdatedEventData struct {
	Dataset *domain.Dataset `json:"dataset"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"serverTime"`
}

// NewConnectedEvent creates a connected event.
func NewConnectedEvent(clientID string) Event {
	return Event{
		Type: EventConnected,
		Data: ConnectedEventData{
			ClientID: clientID,
			Message:  "stream established",
		},
		Timestamp: time.Now(),
	}
}

// NewDataUpdatedEvent creates a data.updated event carrying a full revision.
func NewDataUpdatedEvent(ds *domain.Dataset) Event {
	return Event{
		Type:      EventDataUpdated,
		Data:      DataUpdatedEventData{Dataset: ds},
		Timestamp: time.Now(),
	}
}

// NewDataEmptyEvent creates a data.empty event.
func NewDataEmptyEvent() Event {
	return Event{
		Type:      EventDataEmpty,
		Data:      struct{}{},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
