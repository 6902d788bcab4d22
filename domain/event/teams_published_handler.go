package event

import (
	"log/slog"

	"team-roulette/errors"
)

// TeamsPublishedHandler counts splits, voice splits are counted twice: once as splits and once on their own.
type TeamsPublishedHandler struct {
	log     *slog.Logger
	counter *Counter
}

const VoiceSplitType Type = "VOICE_SPLIT"

func NewTeamsPublishedHandler(log *slog.Logger, counter *Counter) *TeamsPublishedHandler {
	return &TeamsPublishedHandler{log: log, counter: counter}
}

func (h *TeamsPublishedHandler) Handle(event Event) {
	switch event.Type {
	case TeamsPublishedType:
		payload, ok := event.Payload.(TeamsPublished)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.counter.Increment(TeamsPublishedType)
		if payload.Voice {
			h.counter.Increment(VoiceSplitType)
		}
		h.log.Debug("Teams published",
			"split", payload.SplitID,
			"teams", payload.Teams,
			"names", payload.Names,
			"conflicts", payload.Conflicts,
			"total", h.counter.Get(TeamsPublishedType))
	}
}
