package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types []string
	err   error
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return eventType != AnnotationAppliedEvent
}

func (h *recordingHandler) Handle(event Event) error {
	h.types = append(h.types, event.Type())
	return h.err
}

func TestInMemoryEventStore_SequencesPerRun(t *testing.T) {
	store := NewInMemoryEventStore()

	require.NoError(t, store.AppendEvent("run-1", NewEvent(ContainerMatchedEvent, ContainerMatched{})))
	require.NoError(t, store.AppendEvent("run-2", NewEvent(ContainerUnmatchedEvent, ContainerUnmatched{})))
	require.NoError(t, store.AppendEvent("run-1", NewEvent(SCACOverwrittenEvent, SCACOverwritten{Position: 3})))

	events, err := store.ReadEvents("run-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Sequence())
	assert.Equal(t, 2, events[1].Sequence())
	assert.Equal(t, "run-1", events[1].RunID())

	tail, err := store.ReadEvents("run-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, SCACOverwritten{Position: 3}, tail[0].Data())

	other, err := store.ReadEvents("run-2", 0)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, 1, other[0].Sequence())

	none, err := store.ReadEvents("run-1", 9)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Error(t, store.AppendEvent("", NewEvent(ContainerMatchedEvent, nil)))
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	store := NewInMemoryEventStore()
	handler := &recordingHandler{}
	require.NoError(t, store.Subscribe(AllAnnotationEvents, handler))
	require.NoError(t, store.Subscribe(AllAnnotationEvents, NewLoggingHandler(zap.NewNop())))

	require.NoError(t, store.AppendEvent("run", NewEvent(ContainerMatchedEvent, nil)))
	require.NoError(t, store.AppendEvent("run", NewEvent(AnnotationAppliedEvent, nil)))
	assert.Equal(t, []string{ContainerMatchedEvent}, handler.types)

	handler.err = errors.New("boom")
	err := store.AppendEvent("run", NewEvent(SCACOverwrittenEvent, nil))
	assert.ErrorContains(t, err, "boom")

	assert.Error(t, store.Subscribe(AllAnnotationEvents, nil))
}
