package event

import (
	"log/slog"

	"team-roulette/errors"
)

type MemberRoutedHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewMemberRoutedHandler(log *slog.Logger, counter *Counter) *MemberRoutedHandler {
	return &MemberRoutedHandler{log: log, counter: counter}
}

func (h *MemberRoutedHandler) Handle(event Event) {
	switch event.Type {
	case MemberRoutedType:
		payload, ok := event.Payload.(MemberRouted)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.counter.Increment(MemberRoutedType)
		h.log.Debug("Member routed", "member", payload.MemberID, "channel", payload.ChannelID)
	}
}
