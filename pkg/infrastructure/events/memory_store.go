package events

import (
	"fmt"
)

// InMemoryEventStore keeps the trail of every run for the lifetime of the
// process. Handlers run synchronously inside AppendEvent, so they observe
// events in order and their errors abort the run.
type InMemoryEventStore struct {
	runs        map[string][]Event
	subscribers map[string][]EventHandler
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		runs:        make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent stamps event with runID and the next sequence number of that
// run, stores it and hands it to the subscribers of its type
func (s *InMemoryEventStore) AppendEvent(runID string, event Event) error {
	if runID == "" {
		return fmt.Errorf("run id cannot be empty")
	}

	stamped := Record{
		Kind:    event.Type(),
		Run:     runID,
		Seq:     len(s.runs[runID]) + 1,
		Payload: event.Data(),
		At:      event.Timestamp(),
	}
	s.runs[runID] = append(s.runs[runID], stamped)

	for _, handler := range s.subscribers[stamped.Kind] {
		if !handler.CanHandle(stamped.Kind) {
			continue
		}
		if err := handler.Handle(stamped); err != nil {
			return fmt.Errorf("handling event %s: %w", stamped.Kind, err)
		}
	}
	return nil
}

// ReadEvents returns the events of runID starting at sequence fromSequence.
// Values below 1 read the whole trail.
func (s *InMemoryEventStore) ReadEvents(runID string, fromSequence int) ([]Event, error) {
	trail := s.runs[runID]
	if fromSequence < 1 {
		fromSequence = 1
	}
	if fromSequence > len(trail) {
		return []Event{}, nil
	}
	return trail[fromSequence-1:], nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}
