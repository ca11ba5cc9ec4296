package events

import (
	"time"
)

// Event is one entry of an annotation audit trail. Every event belongs to
// the run that produced it and is numbered within that run from 1.
type Event interface {
	Type() string
	RunID() string
	Sequence() int
	Data() interface{}
	Timestamp() time.Time
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore records the audit trail of annotation runs
type EventStore interface {
	AppendEvent(runID string, event Event) error
	ReadEvents(runID string, fromSequence int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
}

// Record is the Event implementation kept by the stores. Run and Seq are
// assigned when the record is appended.
type Record struct {
	Kind    string      `json:"type"`
	Run     string      `json:"run_id"`
	Seq     int         `json:"sequence"`
	Payload interface{} `json:"data"`
	At      time.Time   `json:"time"`
}

func (r Record) Type() string         { return r.Kind }
func (r Record) RunID() string        { return r.Run }
func (r Record) Sequence() int        { return r.Seq }
func (r Record) Data() interface{}    { return r.Payload }
func (r Record) Timestamp() time.Time { return r.At }

// NewEvent creates an unstamped record of the given type
func NewEvent(eventType string, data interface{}) Event {
	return Record{
		Kind:    eventType,
		Payload: data,
		At:      time.Now(),
	}
}
