package tackling

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
	CONTACT_FAILED
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case CONTACT_ENTER:
		return "CONTACT_ENTER"
	case CONTACT_STAY:
		return "CONTACT_STAY"
	case CONTACT_EXIT:
		return "CONTACT_EXIT"
	case CONTACT_FAILED:
		return "CONTACT_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ContactEnterEvent is sent on the first step a pair overlaps.
type ContactEnterEvent struct {
	State ContactState
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

// ContactStayEvent is sent on every following step the pair still overlaps.
type ContactStayEvent struct {
	State ContactState
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

// ContactExitEvent is sent once when the pair stops overlapping. A failed
// evaluation counts as not overlapping.
type ContactExitEvent struct {
	Pair string
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// ContactFailedEvent carries a pair whose evaluation returned an error.
type ContactFailedEvent struct {
	State ContactState
}

func (e ContactFailedEvent) Type() EventType { return CONTACT_FAILED }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches contact transitions to listeners once per step.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Pair names in contact, for Enter/Stay/Exit detection
	previousActivePairs map[string]bool
	currentActivePairs  map[string]bool

	// Active pair names in evaluation order, so exits dispatch in pair order
	previousOrder []string
	currentOrder  []string
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 16),
		previousActivePairs: make(map[string]bool),
		currentActivePairs:  make(map[string]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts buffers Enter/Stay/Failed events for one step's states
// and marks the overlapping pairs as active.
func (e *Events) recordContacts(states []ContactState) {
	for _, state := range states {
		if state.Err != nil {
			e.buffer = append(e.buffer, ContactFailedEvent{State: state})
			continue
		}
		if !state.InContact {
			continue
		}

		e.currentActivePairs[state.Pair] = true
		e.currentOrder = append(e.currentOrder, state.Pair)
		if e.previousActivePairs[state.Pair] {
			e.buffer = append(e.buffer, ContactStayEvent{State: state})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{State: state})
		}
	}
}

// processExitEvents emits Exit for pairs active last step but not this one,
// then rotates the active sets.
func (e *Events) processExitEvents() {
	for _, pair := range e.previousOrder {
		if e.previousActivePairs[pair] && !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, ContactExitEvent{Pair: pair})
		}
	}

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
	e.previousOrder, e.currentOrder = e.currentOrder, e.previousOrder[:0]
}

// forget drops a pair from tracking without emitting Exit.
func (e *Events) forget(pair string) {
	delete(e.previousActivePairs, pair)
	delete(e.currentActivePairs, pair)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processExitEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
