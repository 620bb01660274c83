package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	ProjectsChanged    EventType = "projects_changed"
	TasksChanged       EventType = "tasks_changed"
	CredentialsChanged EventType = "credentials_changed"
	AuthChanged        EventType = "auth_changed"
)

// Event is a change notification. Subscribers re-read state from its owner;
// the event only says what moved.
type Event struct {
	Type       EventType
	EntityID   string    // id of the project or task touched, empty for bulk changes
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}
