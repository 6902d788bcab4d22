package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"team-roulette/contract"
	"team-roulette/domain"
	"team-roulette/domain/event"
	"team-roulette/errors"
	"team-roulette/mocks"
	"team-roulette/partition"
	"team-roulette/repositories"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var splitAt = time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)

func newEngine() *partition.Engine {
	return partition.NewEngine(partition.WithRandomSource(rand.New(rand.NewPCG(1, 2))))
}

func newService(members contract.MembershipSource, publishers Publishers, routes repositories.IRouteRepository) *SplitService {
	svc := NewSplitService(logs.GetLoggerFromLevel(slog.LevelDebug), newEngine(), partition.DefaultTrials, members, publishers, routes, []string{"vc-1", "vc-2"}, nil)
	svc.now = func() time.Time { return splitAt }
	return svc
}

func teamOf(split domain.Split, name string) int {
	for _, team := range split.Teams {
		if lo.Contains(team.Members, name) {
			return team.Index
		}
	}
	return -1
}

func TestSplitService_SplitText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("should split names and honour constraints", func(t *testing.T) {
		req := require.New(t)
		svc := newService(nil, Publishers{}, nil)

		split, err := svc.SplitText(context.Background(), domain.SplitCommand{
			Names:      []string{"Alice\nBob\nChloé", "", "David"},
			Exceptions: []string{"Alice et Bob", "Chloé & David", "nobody"},
			TeamCount:  2,
		})

		req.NoError(err)
		req.Equal(splitAt, split.CreatedAt)
		req.Len(split.Teams, 2)
		req.Empty(split.Conflicts)
		req.NotEqual(teamOf(split, "Alice"), teamOf(split, "Bob"))
		req.NotEqual(teamOf(split, "Chloé"), teamOf(split, "David"))
		req.Equal([]string{`line 3 ignored: "nobody"`}, split.Warnings)
		req.Empty(split.MessageID)
	})

	t.Run("should report the split to telemetry", func(t *testing.T) {
		req := require.New(t)
		telemetry := make(chan event.Event, 1)
		svc := newService(nil, Publishers{}, nil)
		svc.telemetry = telemetry

		split, err := svc.SplitText(context.Background(), domain.SplitCommand{
			Names:      []string{"Alice", "Bob", "Chloé"},
			Exceptions: []string{"Alice & Bob"},
			TeamCount:  2,
		})
		req.NoError(err)

		evt := <-telemetry
		req.Equal(event.TeamsPublishedType, evt.Type)
		req.Equal(event.TeamsPublished{SplitID: split.ID, Teams: 2, Names: 3}, evt.Payload)
	})

	t.Run("should add names only found in constraints", func(t *testing.T) {
		req := require.New(t)
		svc := newService(nil, Publishers{}, nil)

		split, err := svc.SplitText(context.Background(), domain.SplitCommand{
			Names:      []string{"Alice", "Bob"},
			Exceptions: []string{"Alice", "Zoé"},
			TeamCount:  3,
		})

		req.NoError(err)
		req.Equal([]string{"Alice", "Bob", "Zoé"}, split.Names)
		req.ElementsMatch(split.Names, lo.FlatMap(split.Teams, func(team domain.Team, _ int) []string { return team.Members }))
	})

	t.Run("should refuse an invalid team count", func(t *testing.T) {
		req := require.New(t)
		svc := newService(nil, Publishers{}, nil)

		_, err := svc.SplitText(context.Background(), domain.SplitCommand{Names: []string{"Alice"}, TeamCount: 2})
		req.ErrorIs(err, errors.ErrInvalidTeamCount)

		_, err = svc.SplitText(context.Background(), domain.SplitCommand{TeamCount: 1})
		req.ErrorIs(err, errors.ErrEmptyNames)
	})

	t.Run("should publish to the webhook", func(t *testing.T) {
		req := require.New(t)
		webhook := mocks.NewMockPublishSink(ctrl)
		svc := newService(nil, Publishers{Webhook: webhook}, nil)

		webhook.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, split domain.Split) (string, error) {
				req.Len(split.Teams, 2)
				return "webhook-message", nil
			}).
			Times(1)

		split, err := svc.SplitText(context.Background(), domain.SplitCommand{
			Names:     []string{"Alice", "Bob", "Chloé"},
			TeamCount: 2,
			Publish:   true,
		})
		req.NoError(err)
		req.Equal("webhook-message", split.MessageID)
	})

	t.Run("should fail to publish without webhook", func(t *testing.T) {
		req := require.New(t)
		svc := newService(nil, Publishers{}, nil)

		_, err := svc.SplitText(context.Background(), domain.SplitCommand{
			Names:     []string{"Alice", "Bob"},
			TeamCount: 2,
			Publish:   true,
		})
		req.ErrorIs(err, errors.ErrNoPublisher)
	})

	t.Run("should report webhook failures", func(t *testing.T) {
		req := require.New(t)
		webhook := mocks.NewMockPublishSink(ctrl)
		svc := newService(nil, Publishers{Webhook: webhook}, nil)

		webhook.EXPECT().Publish(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("HTTP 404")).Times(1)

		_, err := svc.SplitText(context.Background(), domain.SplitCommand{
			Names:     []string{"Alice", "Bob"},
			TeamCount: 2,
			Publish:   true,
		})
		req.ErrorContains(err, "HTTP 404")
	})
}

func TestSplitService_SplitVoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	voice := []domain.Member{
		{ID: "1", DisplayName: "Alice"},
		{ID: "2", DisplayName: "Bob"},
		{ID: "3", DisplayName: "Chloé"},
		{ID: "4", DisplayName: "David"},
	}

	t.Run("should publish and route every member", func(t *testing.T) {
		req := require.New(t)
		members := mocks.NewMockMembershipSource(ctrl)
		bot := mocks.NewMockPublishSink(ctrl)
		routes := mocks.NewMockIRouteRepository(ctrl)
		svc := newService(members, Publishers{Bot: bot}, routes)

		var saved []domain.Route
		members.EXPECT().VoiceMembers(gomock.Any()).Return(voice, nil).Times(1)
		bot.EXPECT().Publish(gomock.Any(), gomock.Any()).Return("message-1", nil).Times(1)
		routes.EXPECT().
			SaveRoutes(gomock.Any()).
			DoAndReturn(func(r []domain.Route) error {
				saved = r
				return nil
			}).
			Times(1)

		split, err := svc.SplitVoice(context.Background(), domain.SplitVoiceCommand{
			Exceptions: []string{"Alice et Bob"},
			TeamCount:  2,
		})

		req.NoError(err)
		req.Equal("message-1", split.MessageID)
		req.NotEqual(teamOf(split, "Alice"), teamOf(split, "Bob"))
		req.Len(saved, len(voice))
		for _, route := range saved {
			member, ok := lo.Find(voice, func(m domain.Member) bool { return m.ID == route.MemberID })
			req.True(ok)
			req.Equal("message-1", route.MessageID)
			req.Equal(fmt.Sprintf("vc-%d", teamOf(split, member.DisplayName)+1), route.ChannelID)
		}
	})

	t.Run("should leave out people who are not in voice", func(t *testing.T) {
		req := require.New(t)
		members := mocks.NewMockMembershipSource(ctrl)
		bot := mocks.NewMockPublishSink(ctrl)
		routes := mocks.NewMockIRouteRepository(ctrl)
		svc := newService(members, Publishers{Bot: bot}, routes)

		members.EXPECT().VoiceMembers(gomock.Any()).Return(voice, nil).Times(1)
		bot.EXPECT().Publish(gomock.Any(), gomock.Any()).Return("message-2", nil).Times(1)
		routes.EXPECT().SaveRoutes(gomock.Len(len(voice))).Return(nil).Times(1)

		split, err := svc.SplitVoice(context.Background(), domain.SplitVoiceCommand{
			Exceptions: []string{"Alice", "Zoé", "Chloé", "David"},
			TeamCount:  2,
		})

		req.NoError(err)
		req.Equal([]string{"Alice", "Bob", "Chloé", "David"}, split.Names)
		req.Equal(-1, teamOf(split, "Zoé"))
		req.NotEqual(teamOf(split, "Chloé"), teamOf(split, "David"))
		req.Empty(split.Conflicts)
		req.Equal([]string{"not in voice, ignored: Zoé"}, split.Warnings)
	})

	t.Run("should refuse a near empty voice channel", func(t *testing.T) {
		req := require.New(t)
		members := mocks.NewMockMembershipSource(ctrl)
		bot := mocks.NewMockPublishSink(ctrl)
		svc := newService(members, Publishers{Bot: bot}, nil)

		members.EXPECT().VoiceMembers(gomock.Any()).Return(voice[:1], nil).Times(1)
		bot.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.SplitVoice(context.Background(), domain.SplitVoiceCommand{TeamCount: 2})
		req.ErrorIs(err, errors.ErrNotEnoughMembers)
	})

	t.Run("should not save routes when publication fails", func(t *testing.T) {
		req := require.New(t)
		members := mocks.NewMockMembershipSource(ctrl)
		bot := mocks.NewMockPublishSink(ctrl)
		routes := mocks.NewMockIRouteRepository(ctrl)
		svc := newService(members, Publishers{Bot: bot}, routes)

		members.EXPECT().VoiceMembers(gomock.Any()).Return(voice, nil).Times(1)
		bot.EXPECT().Publish(gomock.Any(), gomock.Any()).Return("", errors.ErrChannelNotFound).Times(1)
		routes.EXPECT().SaveRoutes(gomock.Any()).Times(0)

		_, err := svc.SplitVoice(context.Background(), domain.SplitVoiceCommand{TeamCount: 2})
		req.ErrorIs(err, errors.ErrChannelNotFound)
	})

	t.Run("should refuse when voice is disabled", func(t *testing.T) {
		req := require.New(t)
		svc := newService(nil, Publishers{}, nil)

		_, err := svc.SplitVoice(context.Background(), domain.SplitVoiceCommand{TeamCount: 2})
		req.ErrorIs(err, errors.ErrVoiceDisabled)
		_, err = svc.VoiceMembers(context.Background())
		req.ErrorIs(err, errors.ErrVoiceDisabled)
	})
}

func TestAssignRoutes(t *testing.T) {
	req := require.New(t)
	members := []domain.Member{
		{ID: "1", DisplayName: "Alex"},
		{ID: "2", DisplayName: "Alex"},
		{ID: "3", DisplayName: "Sam"},
		{ID: "4", DisplayName: "Kim"},
	}
	teams := []domain.Team{
		{Index: 0, Members: []string{"Alex", "Zoé"}},
		{Index: 1, Members: []string{"Sam", "Alex"}},
		{Index: 2, Members: []string{"Kim"}},
	}

	routes := assignRoutes("m", teams, members, []string{"vc-1", "vc-2"})

	// Then homonyms get one route each, Zoé is not in voice and team 3 has no channel
	req.Equal([]domain.Route{
		{MessageID: "m", MemberID: "1", ChannelID: "vc-1"},
		{MessageID: "m", MemberID: "3", ChannelID: "vc-2"},
		{MessageID: "m", MemberID: "2", ChannelID: "vc-2"},
	}, routes)
}

func TestAssignRoutes_EmptyChannelSkipsOnlyItsTeam(t *testing.T) {
	req := require.New(t)
	members := []domain.Member{
		{ID: "1", DisplayName: "Alex"},
		{ID: "2", DisplayName: "Sam"},
		{ID: "3", DisplayName: "Kim"},
	}
	teams := []domain.Team{
		{Index: 0, Members: []string{"Alex"}},
		{Index: 1, Members: []string{"Sam"}},
		{Index: 2, Members: []string{"Kim"}},
	}

	routes := assignRoutes("m", teams, members, []string{"vc-1", "", "vc-3"})

	// Then team 3 still goes to the third channel
	req.Equal([]domain.Route{
		{MessageID: "m", MemberID: "1", ChannelID: "vc-1"},
		{MessageID: "m", MemberID: "3", ChannelID: "vc-3"},
	}, routes)
}
