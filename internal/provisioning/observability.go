package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured events as a run progresses.
type Observer interface {
	// Printf emits a free-form log line.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)
}

// Event is a structured provisioning event.
type Event struct {
	Type      EventType
	Step      string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType classifies provisioning events.
type EventType string

const (
	// EventStepStarted indicates a plan step has started.
	EventStepStarted EventType = "step.started"
	// EventStepFailed indicates a plan step failed, aborting the run.
	EventStepFailed EventType = "step.failed"

	// EventResourceCreated indicates a resource was created fresh.
	EventResourceCreated EventType = "resource.created"
	// EventResourceReused indicates an existing resource was adopted
	// instead of creating a duplicate.
	EventResourceReused EventType = "resource.reused"
	// EventResourceWaiting indicates the run is polling for readiness.
	EventResourceWaiting EventType = "resource.waiting"
	// EventResourceReady indicates an asynchronous resource became ready.
	EventResourceReady EventType = "resource.ready"

	// EventRunCompleted indicates the whole plan executed successfully.
	EventRunCompleted EventType = "run.completed"
)

// ConsoleObserver implements Observer on the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	parts := []string{string(event.Type)}
	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}
	log.Print(strings.Join(parts, " "))
}

func logHandleBound(obs Observer, h ResourceHandle, elapsed time.Duration) {
	typ := EventResourceCreated
	msg := fmt.Sprintf("%s created", h.Kind)
	if h.Reused {
		typ = EventResourceReused
		msg = fmt.Sprintf("existing %s adopted", h.Kind)
	}
	obs.Event(Event{
		Type:    typ,
		Step:    h.Name,
		Message: msg,
		Fields: map[string]string{
			"id":      h.ID,
			"elapsed": elapsed.Round(time.Millisecond).String(),
		},
	})
}
