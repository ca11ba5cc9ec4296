package events

import (
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
)

const (
	ContainerMatchedEvent   = "container.matched"
	ContainerUnmatchedEvent = "container.unmatched"
	SCACOverwrittenEvent    = "scac.overwritten"
	AnnotationAppliedEvent  = "annotation.applied"
)

// AllAnnotationEvents lists every event type the matcher publishes
var AllAnnotationEvents = []string{
	ContainerMatchedEvent, ContainerUnmatchedEvent, SCACOverwrittenEvent, AnnotationAppliedEvent,
}

type ContainerMatched struct {
	Carrier   entities.CarrierRow `json:"carrier"`
	Positions []int               `json:"positions"`
}

type ContainerUnmatched struct {
	Carrier entities.CarrierRow `json:"carrier"`
}

type SCACOverwritten struct {
	Position int           `json:"position"`
	Previous entities.SCAC `json:"previous"`
	Winner   entities.SCAC `json:"winner"`
}

type AnnotationApplied struct {
	MatchedRows   int `json:"matched_rows"`
	UnmatchedRows int `json:"unmatched_rows"`
	Conflicts     int `json:"conflicts"`
}

// LoggingHandler writes every event it receives to a zap logger at debug level
type LoggingHandler struct {
	logger *zap.Logger
}

func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

func (h *LoggingHandler) CanHandle(eventType string) bool {
	return true
}

func (h *LoggingHandler) Handle(event Event) error {
	h.logger.Debug("annotation event",
		zap.String("type", event.Type()),
		zap.String("run_id", event.RunID()),
		zap.Int("sequence", event.Sequence()),
		zap.Any("data", event.Data()),
	)
	return nil
}
