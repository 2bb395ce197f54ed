package ghost

// EventSink receives snapshot lifecycle events. When set on a Session, every
// creation, deletion and timeline key is forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of lifecycle event.
type EventType uint8

const (
	EventSnapshotCreated  EventType = iota // a snapshot node was created
	EventSnapshotDeleted                   // a snapshot node was deleted
	EventKeyRecorded                       // a timeline key was set on a KeyHolder
	EventKeyHolderDeleted                  // a character's KeyHolder was deleted
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventSnapshotCreated:
		return "snapshot-created"
	case EventSnapshotDeleted:
		return "snapshot-deleted"
	case EventKeyRecorded:
		return "key-recorded"
	case EventKeyHolderDeleted:
		return "keyholder-deleted"
	default:
		return "unknown"
	}
}

// Event carries lifecycle data for an EventSink.
type Event struct {
	Type      EventType
	Character string
	Time      int
	Node      string // snapshot or KeyHolder name
}
