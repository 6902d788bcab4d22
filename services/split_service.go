//go:generate go run go.uber.org/mock/mockgen -source=split_service.go -destination=../mocks/mock_split_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"team-roulette/contract"
	"team-roulette/domain"
	"team-roulette/domain/event"
	"team-roulette/errors"
	"team-roulette/partition"
	"team-roulette/repositories"

	"github.com/samber/lo"
)

// minVoiceMembers is the smallest voice channel worth splitting.
const minVoiceMembers = 2

type ISplitService interface {
	SplitText(ctx context.Context, cmd domain.SplitCommand) (domain.Split, error)
	SplitVoice(ctx context.Context, cmd domain.SplitVoiceCommand) (domain.Split, error)
	VoiceMembers(ctx context.Context) ([]domain.Member, error)
}

// Publishers are the places a split can be posted to. Both are optional.
type Publishers struct {
	Bot     contract.PublishSink // voice flow, the posted message drives member routing
	Webhook contract.PublishSink // text flow
}

type SplitService struct {
	log           *slog.Logger
	engine        *partition.Engine
	defaultTrials int
	members       contract.MembershipSource
	publishers    Publishers
	routes        repositories.IRouteRepository
	teamChannels  []string
	telemetry     chan<- event.Event
	now           func() time.Time
}

// NewSplitService wires the engine with its collaborators.
// members may be nil when no chat platform is configured, voice splits are then refused.
// teamChannels are the voice channels of teams 1, 2, ... in order.
// telemetry may be nil.
func NewSplitService(
	log *slog.Logger,
	engine *partition.Engine,
	defaultTrials int,
	members contract.MembershipSource,
	publishers Publishers,
	routes repositories.IRouteRepository,
	teamChannels []string,
	telemetry chan<- event.Event,
) *SplitService {
	return &SplitService{
		log:           log,
		engine:        engine,
		defaultTrials: defaultTrials,
		members:       members,
		publishers:    publishers,
		routes:        routes,
		teamChannels:  teamChannels,
		telemetry:     telemetry,
		now:           time.Now,
	}
}

// SplitText splits typed names, optionally posting the result to the webhook.
func (s *SplitService) SplitText(ctx context.Context, cmd domain.SplitCommand) (domain.Split, error) {
	if cmd.Publish && s.publishers.Webhook == nil {
		return domain.Split{}, errors.ErrNoPublisher
	}

	split, err := s.split(partition.ParseNames(cmd.Names...), cmd.Exceptions, cmd.TeamCount, cmd.Trials, false)
	if err != nil {
		return domain.Split{}, err
	}
	if !cmd.Publish {
		s.emit(split, false)
		return split, nil
	}

	messageID, err := s.publishers.Webhook.Publish(ctx, split)
	if err != nil {
		return domain.Split{}, fmt.Errorf("webhook publication failed: %w", err)
	}
	split.MessageID = messageID
	s.log.Info("Split published to webhook", "split", split.ID, "message", messageID)
	s.emit(split, false)
	return split, nil
}

// SplitVoice splits the people of the watched voice channel, posts the teams with the bot
// and remembers which voice channel each member goes to once they react.
func (s *SplitService) SplitVoice(ctx context.Context, cmd domain.SplitVoiceCommand) (domain.Split, error) {
	if s.members == nil || s.publishers.Bot == nil {
		return domain.Split{}, errors.ErrVoiceDisabled
	}

	members, err := s.members.VoiceMembers(ctx)
	if err != nil {
		return domain.Split{}, fmt.Errorf("fetching voice members failed: %w", err)
	}
	if len(members) < minVoiceMembers {
		return domain.Split{}, fmt.Errorf("%w: %d connected", errors.ErrNotEnoughMembers, len(members))
	}

	names := lo.Map(members, func(m domain.Member, _ int) string { return m.DisplayName })
	split, err := s.split(names, cmd.Exceptions, cmd.TeamCount, cmd.Trials, true)
	if err != nil {
		return domain.Split{}, err
	}

	messageID, err := s.publishers.Bot.Publish(ctx, split)
	if err != nil {
		return domain.Split{}, fmt.Errorf("bot publication failed: %w", err)
	}
	split.MessageID = messageID

	routes := assignRoutes(messageID, split.Teams, members, s.teamChannels)
	if len(routes) > 0 {
		if err := s.routes.SaveRoutes(routes); err != nil {
			return domain.Split{}, fmt.Errorf("saving routes failed: %w", err)
		}
	}
	s.log.Info("Voice split published", "split", split.ID, "message", messageID, "members", len(members), "routes", len(routes))
	s.emit(split, true)
	return split, nil
}

// VoiceMembers lists who is currently in the watched voice channel.
func (s *SplitService) VoiceMembers(ctx context.Context) ([]domain.Member, error) {
	if s.members == nil {
		return nil, errors.ErrVoiceDisabled
	}
	return s.members.VoiceMembers(ctx)
}

// split partitions names under the exceptions. With a closed roster, people only named
// in exceptions are left out along with their pairs instead of being added to the teams.
func (s *SplitService) split(names, exceptions []string, teamCount, trials int, closedRoster bool) (domain.Split, error) {
	if trials == 0 {
		trials = s.defaultTrials
	}

	pairs, allNames, warnings := partition.ExtractConstraints(exceptions, names)
	for _, w := range warnings {
		s.log.Warn("Ignoring malformed constraint", "line", w.Line, "raw", w.Raw)
	}

	var absent []string
	if closedRoster && len(allNames) > len(names) {
		absent = allNames[len(names):]
		allNames = allNames[:len(names)]
		pairs = lo.Filter(pairs, func(p domain.Pair, _ int) bool {
			return !lo.Contains(absent, p.A) && !lo.Contains(absent, p.B)
		})
		s.log.Info("Ignoring constraints on people not in voice", "names", absent)
	}

	result, err := s.engine.Partition(allNames, teamCount, pairs, trials)
	if err != nil {
		return domain.Split{}, err
	}

	split := domain.NewSplit(allNames, result.Teams, result.Conflicts, s.now())
	split.Warnings = lo.Map(warnings, func(w partition.ParseWarning, _ int) string { return w.String() })
	if len(absent) > 0 {
		split.Warnings = append(split.Warnings, fmt.Sprintf("not in voice, ignored: %s", strings.Join(absent, ", ")))
	}
	if split.HasConflicts() {
		s.log.Warn("Some constraints could not be honoured",
			"split", split.ID,
			"conflicts", lo.Map(split.Conflicts, func(p domain.Pair, _ int) string { return p.String() }))
	}
	return split, nil
}

func (s *SplitService) emit(split domain.Split, voice bool) {
	event.Emit(s.telemetry, event.New(event.TeamsPublishedType, event.TeamsPublished{
		SplitID:   split.ID,
		MessageID: split.MessageID,
		Voice:     voice,
		Teams:     len(split.Teams),
		Names:     len(split.Names),
		Conflicts: len(split.Conflicts),
	}))
}

// assignRoutes maps every member to the voice channel of their team.
// Display names may repeat, members sharing one are handed out in voice channel order.
// Teams without a configured channel and names absent from the voice channel get no route.
func assignRoutes(messageID string, teams []domain.Team, members []domain.Member, channels []string) []domain.Route {
	pending := lo.GroupBy(members, func(m domain.Member) string { return m.DisplayName })

	var routes []domain.Route
	for _, team := range teams {
		if team.Index >= len(channels) || channels[team.Index] == "" {
			continue
		}
		for _, name := range team.Members {
			candidates := pending[name]
			if len(candidates) == 0 {
				continue
			}
			pending[name] = candidates[1:]
			routes = append(routes, domain.Route{
				MessageID: messageID,
				MemberID:  candidates[0].ID,
				ChannelID: channels[team.Index],
			})
		}
	}
	return routes
}
