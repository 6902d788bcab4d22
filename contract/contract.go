//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"team-roulette/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision, so workers don't have to name themselves.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MembershipSource lists the people currently sitting in the watched voice channel.
// An unknown or empty channel gives an empty list.
type MembershipSource interface {
	VoiceMembers(ctx context.Context) ([]domain.Member, error)
}

// PublishSink displays a split somewhere and returns the identifier of the posted message.
type PublishSink interface {
	Publish(ctx context.Context, split domain.Split) (string, error)
}

// ChannelMover moves a member into another voice channel.
type ChannelMover interface {
	MoveMember(ctx context.Context, memberID, channelID string) error
}
