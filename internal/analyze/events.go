package analyze

// EventKind tags diagnostic events emitted during an analysis run.
type EventKind string

const (
	EventDetectorMatch EventKind = "detector-match"
	EventPropagated    EventKind = "propagated"
	EventDegraded      EventKind = "degraded"
	EventParseError    EventKind = "parse-error"
)

// Event is one diagnostic emission from the engine. Events exist so callers
// can observe detector and propagation decisions without the core writing to
// any global logger.
type Event struct {
	Kind     EventKind
	Function string
	Message  string
}

// EventSink receives diagnostic events. It may be nil; emissions are then
// dropped. Sinks are called synchronously and must not block.
type EventSink func(Event)

func emit(sink EventSink, e Event) {
	if sink != nil {
		sink(e)
	}
}
