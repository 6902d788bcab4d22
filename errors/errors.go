package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrInvalidPayload = fmt.Errorf("invalid event payload")

	ErrEmptyNames       = fmt.Errorf("no names to split")
	ErrInvalidTeamCount = fmt.Errorf("invalid team count")
	ErrInvalidTrials    = fmt.Errorf("invalid number of trials")

	ErrNotEnoughMembers = fmt.Errorf("not enough members in voice channel")
	ErrChannelNotFound  = fmt.Errorf("channel not found")
	ErrNotInVoice       = fmt.Errorf("member is not connected to a voice channel")
	ErrRouteNotFound    = fmt.Errorf("route not found")
	ErrVoiceDisabled    = fmt.Errorf("voice features are disabled")
	ErrNoPublisher      = fmt.Errorf("no publisher configured")
	ErrInvalidWebhook   = fmt.Errorf("invalid webhook url")
	ErrNotTextInput     = fmt.Errorf("input is not a text file")
)
