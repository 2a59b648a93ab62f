package mansion

// EventKind classifies a scripted room event.
type EventKind string

const (
	EventScare     EventKind = "scare"
	EventDiscovery EventKind = "discovery"
	EventAmbient   EventKind = "ambient"
)

// EventState is the immutable snapshot of session state an event condition
// is evaluated against. Events never see the engine itself.
type EventState struct {
	Health      int
	Sanity      int
	Inventory   []string // IDs of held items
	RoomVisited bool
	SecretFound bool
}

// Holding reports whether the snapshot includes the given item ID.
func (s EventState) Holding(id string) bool {
	for _, held := range s.Inventory {
		if held == id {
			return true
		}
	}
	return false
}

// Event is a one-shot scripted trigger bound to a room. Condition and
// Effect are optional; neither is serialized — saves carry only the Fired
// flag and the engine rebinds events from the generated world at load.
type Event struct {
	Kind        EventKind
	Message     string
	Probability int // percent chance per evaluation, 1-100
	Fired       bool
	Condition   func(EventState) bool
	Effect      func()
}

// Eligible reports whether the event should fire for the given roll.
// roll is a uniform value in [1,100].
func (e *Event) Eligible(roll int, st EventState) bool {
	if e.Fired || roll > e.Probability {
		return false
	}
	if e.Condition != nil && !e.Condition(st) {
		return false
	}
	return true
}

// Fire marks the event fired, runs its side effect, and returns its message.
func (e *Event) Fire() string {
	e.Fired = true
	if e.Effect != nil {
		e.Effect()
	}
	return e.Message
}
