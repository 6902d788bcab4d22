package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"team-roulette/contract"
	"team-roulette/domain/event"
	apperrors "team-roulette/errors"
	"team-roulette/repositories"
)

type IRouterService interface {
	OnReaction(ctx context.Context, messageID, memberID string) error
}

// RouterService moves members to their team voice channel when they react to a published split.
// Whatever the reaction, only the route matters.
type RouterService struct {
	log       *slog.Logger
	routes    repositories.IRouteRepository
	mover     contract.ChannelMover
	telemetry chan<- event.Event
}

func NewRouterService(
	log *slog.Logger,
	routes repositories.IRouteRepository,
	mover contract.ChannelMover,
	telemetry chan<- event.Event,
) *RouterService {
	return &RouterService{log: log, routes: routes, mover: mover, telemetry: telemetry}
}

// OnReaction ignores reactions on unknown messages and from members without a route,
// as well as members who left voice in the meantime.
func (s *RouterService) OnReaction(ctx context.Context, messageID, memberID string) error {
	route, err := s.routes.GetRoute(messageID, memberID)
	if errors.Is(err, apperrors.ErrRouteNotFound) {
		s.log.Debug("No route for reaction", "message", messageID, "member", memberID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("route lookup failed: %w", err)
	}

	if err := s.mover.MoveMember(ctx, memberID, route.ChannelID); err != nil {
		if errors.Is(err, apperrors.ErrNotInVoice) {
			s.log.Debug("Member not in voice, not moved", "member", memberID)
			return nil
		}
		return fmt.Errorf("moving member %s failed: %w", memberID, err)
	}
	s.log.Info("Member moved to team channel", "message", messageID, "member", memberID, "channel", route.ChannelID)
	event.Emit(s.telemetry, event.New(event.MemberRoutedType, event.MemberRouted{
		MessageID: messageID,
		MemberID:  memberID,
		ChannelID: route.ChannelID,
	}))
	return nil
}
