package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"team-roulette/domain"
	"team-roulette/errors"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type moved struct {
	userID    string
	channelID string
}

type fakeAPI struct {
	sent      []*discordgo.MessageEmbed
	reactions []string
	moves     []moved
	webhooks  []*discordgo.WebhookParams
	members   map[string]*discordgo.Member
	sendErr   error
}

func (f *fakeAPI) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, embed)
	return &discordgo.Message{ID: fmt.Sprintf("message-%d", len(f.sent)), ChannelID: channelID}, nil
}

func (f *fakeAPI) MessageReactionAdd(_, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	f.reactions = append(f.reactions, messageID+":"+emojiID)
	return nil
}

func (f *fakeAPI) GuildMember(_, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	if member, ok := f.members[userID]; ok {
		return member, nil
	}
	return nil, fmt.Errorf("unknown member %s", userID)
}

func (f *fakeAPI) GuildMemberMove(_ string, userID string, channelID *string, _ ...discordgo.RequestOption) error {
	f.moves = append(f.moves, moved{userID: userID, channelID: *channelID})
	return nil
}

func (f *fakeAPI) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if webhookID != "123" || token != "secret" || !wait {
		return nil, fmt.Errorf("unexpected call %s/%s", webhookID, token)
	}
	f.webhooks = append(f.webhooks, data)
	return &discordgo.Message{ID: "webhook-message"}, nil
}

type fakeState struct {
	guild    *discordgo.Guild
	channels map[string]*discordgo.Channel
}

func (f *fakeState) Guild(guildID string) (*discordgo.Guild, error) {
	if f.guild == nil || f.guild.ID != guildID {
		return nil, discordgo.ErrStateNotFound
	}
	return f.guild, nil
}

func (f *fakeState) Channel(channelID string) (*discordgo.Channel, error) {
	if channel, ok := f.channels[channelID]; ok {
		return channel, nil
	}
	return nil, discordgo.ErrStateNotFound
}

func (f *fakeState) Member(_, userID string) (*discordgo.Member, error) {
	for _, member := range f.guild.Members {
		if member.User.ID == userID {
			return member, nil
		}
	}
	return nil, discordgo.ErrStateNotFound
}

func (f *fakeState) VoiceState(_, userID string) (*discordgo.VoiceState, error) {
	for _, vs := range f.guild.VoiceStates {
		if vs.UserID == userID {
			return vs, nil
		}
	}
	return nil, discordgo.ErrStateNotFound
}

var channels = Channels{GuildID: "guild", VoiceChannelID: "lobby", TextChannelID: "text"}

func member(id, username, nick string, bot bool) *discordgo.Member {
	return &discordgo.Member{Nick: nick, User: &discordgo.User{ID: id, Username: username, Bot: bot}}
}

func newFixture() (*Bot, *fakeAPI, *fakeState) {
	api := &fakeAPI{members: map[string]*discordgo.Member{"4": member("4", "dora", "", false)}}
	state := &fakeState{
		guild: &discordgo.Guild{
			ID:      "guild",
			Members: []*discordgo.Member{member("2", "bob", "Bobby", false)},
			VoiceStates: []*discordgo.VoiceState{
				{UserID: "1", ChannelID: "lobby", Member: member("1", "alice", "", false)},
				{UserID: "2", ChannelID: "lobby"},
				{UserID: "3", ChannelID: "elsewhere", Member: member("3", "chloe", "", false)},
				{UserID: "4", ChannelID: "lobby"},
				{UserID: "5", ChannelID: "lobby", Member: member("5", "music", "", true)},
			},
		},
		channels: map[string]*discordgo.Channel{
			"lobby": {ID: "lobby", Type: discordgo.ChannelTypeGuildVoice},
			"text":  {ID: "text", Type: discordgo.ChannelTypeGuildText},
		},
	}
	return NewBot(slog.Default(), api, state, channels), api, state
}

func TestBot_VoiceMembers(t *testing.T) {
	req := require.New(t)
	bot, _, _ := newFixture()

	members, err := bot.VoiceMembers(context.Background())
	req.NoError(err)

	// Then members come from the voice state, the guild state or the API, bots excluded
	req.Equal([]domain.Member{
		{ID: "1", DisplayName: "alice"},
		{ID: "2", DisplayName: "Bobby"},
		{ID: "4", DisplayName: "dora"},
	}, members)
}

func TestBot_VoiceMembers_UnknownChannel(t *testing.T) {
	req := require.New(t)
	bot, _, state := newFixture()
	delete(state.channels, "lobby")

	members, err := bot.VoiceMembers(context.Background())
	req.NoError(err)
	req.Empty(members)
}

func TestBot_Publish(t *testing.T) {
	req := require.New(t)
	bot, api, _ := newFixture()
	split := domain.NewSplit([]string{"A", "B"}, [][]string{{"A"}, {"B"}}, nil, time.Now())

	messageID, err := bot.Publish(context.Background(), split)
	req.NoError(err)
	req.Equal("message-1", messageID)
	req.Len(api.sent, 1)
	req.Equal([]string{"message-1:" + RouteEmoji}, api.reactions)
}

func TestBot_Publish_Failures(t *testing.T) {
	req := require.New(t)
	bot, api, state := newFixture()
	split := domain.NewSplit([]string{"A"}, [][]string{{"A"}}, nil, time.Now())

	api.sendErr = fmt.Errorf("HTTP 403 Forbidden")
	_, err := bot.Publish(context.Background(), split)
	req.ErrorContains(err, "403")

	state.channels["text"].Type = discordgo.ChannelTypeGuildVoice
	_, err = bot.Publish(context.Background(), split)
	req.ErrorIs(err, errors.ErrChannelNotFound)
}

func TestBot_MoveMember(t *testing.T) {
	req := require.New(t)
	bot, api, _ := newFixture()

	req.NoError(bot.MoveMember(context.Background(), "1", "team-1"))
	req.Equal([]moved{{userID: "1", channelID: "team-1"}}, api.moves)

	// A member outside voice can't be moved
	req.ErrorIs(bot.MoveMember(context.Background(), "9", "team-1"), errors.ErrNotInVoice)
	req.Len(api.moves, 1)
}

func TestBot_HandleReactionAdd(t *testing.T) {
	req := require.New(t)
	bot, _, _ := newFixture()

	var received []string
	bot.OnReaction(func(_ context.Context, messageID, memberID string) error {
		received = append(received, messageID+"/"+memberID)
		return nil
	})

	reaction := func(channelID, userID string, isBot bool) *discordgo.MessageReactionAdd {
		return &discordgo.MessageReactionAdd{
			MessageReaction: &discordgo.MessageReaction{GuildID: "guild", ChannelID: channelID, MessageID: "m", UserID: userID},
			Member:          member(userID, "someone", "", isBot),
		}
	}

	bot.HandleReactionAdd(context.Background(), reaction("text", "1", false))
	bot.HandleReactionAdd(context.Background(), reaction("text", "5", true))
	bot.HandleReactionAdd(context.Background(), reaction("other", "2", false))

	req.Equal([]string{"m/1"}, received)
}

func TestRenderEmbed(t *testing.T) {
	req := require.New(t)
	at := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	split := domain.NewSplit(nil, [][]string{{"Alice", "Bob"}, {"Chloé"}, {}}, []domain.Pair{domain.NewPair("Alice", "Bob")}, at)

	embed := RenderEmbed(split)
	req.Equal(EmbedTitle, embed.Title)
	req.Equal(EmbedColor, embed.Color)
	req.Equal("2025-06-21T21:00:00Z", embed.Timestamp)
	req.Equal("⚠️ Could not keep apart: Alice ↔ Bob", embed.Description)
	req.Len(embed.Fields, 3)
	req.Equal("🏆 Team 1 (2 people)", embed.Fields[0].Name)
	req.Equal("🔸 Alice\n🔸 Bob", embed.Fields[0].Value)
	req.Equal("🏆 Team 2 (1 person)", embed.Fields[1].Name)
	req.Equal("—", embed.Fields[2].Value)
}

func TestRenderEmbed_Limits(t *testing.T) {
	req := require.New(t)
	teams := make([][]string, 30)
	for i := range teams {
		teams[i] = []string{strings.Repeat("x", 2000)}
	}

	embed := RenderEmbed(domain.NewSplit(nil, teams, nil, time.Now()))
	req.Len(embed.Fields, maxFields)
	req.Equal(maxFieldValue, len([]rune(embed.Fields[0].Value)))
	req.Empty(embed.Description)
}

func TestParseWebhookURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		id    string
		token string
		err   bool
	}{
		{name: "Plain", url: "https://discord.com/api/webhooks/123/secret", id: "123", token: "secret"},
		{name: "Versioned", url: "https://discord.com/api/v10/webhooks/123/secret/", id: "123", token: "secret"},
		{name: "Missing token", url: "https://discord.com/api/webhooks/123", err: true},
		{name: "Plain http", url: "http://discord.com/api/webhooks/123/secret", err: true},
		{name: "Not a webhook", url: "https://example.com/hello", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			id, token, err := ParseWebhookURL(tt.url)
			if tt.err {
				req.ErrorIs(err, errors.ErrInvalidWebhook)
				return
			}
			req.NoError(err)
			req.Equal(tt.id, id)
			req.Equal(tt.token, token)
		})
	}
}

func TestWebhookSink_Publish(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	sink, err := NewWebhookSink(slog.Default(), api, "https://discord.com/api/webhooks/123/secret")
	req.NoError(err)

	messageID, err := sink.Publish(context.Background(), domain.NewSplit(nil, [][]string{{"A"}}, nil, time.Now()))
	req.NoError(err)
	req.Equal("webhook-message", messageID)
	req.Len(api.webhooks, 1)
	req.Equal(WebhookUsername, api.webhooks[0].Username)
	req.Len(api.webhooks[0].Embeds, 1)
}
