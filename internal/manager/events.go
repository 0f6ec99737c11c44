package manager

// Event represents a manager lifecycle event.
// Minimal and stable: name + model name and optional fields via key/values.
type Event struct {
	Name   string
	Model  string
	Fields map[string]any
}

// Event names.
const (
	EventCompileStart  = "compile_start"
	EventCompileDone   = "compile_done"
	EventCompileFailed = "compile_failed"
	EventLoadDone      = "load_done"
	EventLoadFailed    = "load_failed"
	EventRegister      = "register"
	EventUnloadDone    = "unload_done"
	EventUnloadRefused = "unload_refused"
)

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// LogPublisher forwards events to the manager's logger.
type logPublisher struct{ m *Manager }

func (p logPublisher) Publish(e Event) {
	ev := p.m.log.Debug().Str("event", e.Name).Str("model", e.Model)
	for k, v := range e.Fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("event")
}

// multiPublisher fans an event out to several publishers.
type multiPublisher []EventPublisher

func (mp multiPublisher) Publish(e Event) {
	for _, p := range mp {
		p.Publish(e)
	}
}
