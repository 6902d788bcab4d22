package event

import (
	"log/slog"

	"team-roulette/errors"
)

// ProcessRecorder keeps the latest process sample.
type ProcessRecorder interface {
	RecordProcess(sample ProcessTracker)
}

type ProcessTrackerHandler struct {
	log      *slog.Logger
	recorder ProcessRecorder
}

func NewProcessTrackerHandler(log *slog.Logger, recorder ProcessRecorder) *ProcessTrackerHandler {
	return &ProcessTrackerHandler{log: log, recorder: recorder}
}

func (h ProcessTrackerHandler) Handle(event Event) {
	switch event.Type {
	case PIDTrackerType:
		payload, ok := event.Payload.(ProcessTracker)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.recorder.RecordProcess(payload)
		h.log.Debug("Process sampled", "pid", payload.PID, "status", payload.Status, "cpu", payload.Cpu, "rss", payload.RSS)
	}
}
