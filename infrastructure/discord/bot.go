// Package discord adapts the Discord API to the collaborators of the split services:
// it reads voice channel members, posts splits and moves members between voice channels.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"team-roulette/domain"
	"team-roulette/errors"

	"github.com/bwmarrin/discordgo"
)

// RouteEmoji is added under every published split, reacting to the message moves the member.
const RouteEmoji = "🔹"

// restAPI is the part of *discordgo.Session the bot calls.
type restAPI interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberMove(guildID string, userID string, channelID *string, options ...discordgo.RequestOption) error
}

// guildState is the part of *discordgo.State the bot reads.
type guildState interface {
	Guild(guildID string) (*discordgo.Guild, error)
	Channel(channelID string) (*discordgo.Channel, error)
	Member(guildID, userID string) (*discordgo.Member, error)
	VoiceState(guildID, userID string) (*discordgo.VoiceState, error)
}

type Channels struct {
	GuildID        string
	VoiceChannelID string // the lobby members are split from
	TextChannelID  string // where splits are posted
}

// ReactionHandler receives every reaction a human adds in the text channel.
type ReactionHandler func(ctx context.Context, messageID, memberID string) error

type Bot struct {
	log        *slog.Logger
	api        restAPI
	state      guildState
	channels   Channels
	onReaction ReactionHandler
}

func NewBot(log *slog.Logger, api restAPI, state guildState, channels Channels) *Bot {
	return &Bot{log: log, api: api, state: state, channels: channels}
}

// NewSession opens nothing yet, it prepares a bot session with the intents needed
// to follow voice states and reactions.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions
	return session, nil
}

func (b *Bot) OnReaction(handler ReactionHandler) {
	b.onReaction = handler
}

// VoiceMembers lists the humans connected to the lobby voice channel.
// A missing or non-voice channel gives an empty list.
func (b *Bot) VoiceMembers(ctx context.Context) ([]domain.Member, error) {
	channel, err := b.state.Channel(b.channels.VoiceChannelID)
	if err != nil || !isVoice(channel) {
		b.log.Debug("Voice channel not found", "channel", b.channels.VoiceChannelID)
		return []domain.Member{}, nil
	}
	guild, err := b.state.Guild(b.channels.GuildID)
	if err != nil {
		return nil, fmt.Errorf("%w: guild %s", errors.ErrChannelNotFound, b.channels.GuildID)
	}

	members := []domain.Member{}
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != b.channels.VoiceChannelID {
			continue
		}
		member, err := b.member(ctx, vs)
		if err != nil {
			b.log.Warn("Skipping unknown voice member", "user", vs.UserID, "error", err)
			continue
		}
		if member.User != nil && member.User.Bot {
			continue
		}
		members = append(members, domain.Member{ID: vs.UserID, DisplayName: member.DisplayName()})
	}
	return members, nil
}

func (b *Bot) member(ctx context.Context, vs *discordgo.VoiceState) (*discordgo.Member, error) {
	if vs.Member != nil && vs.Member.User != nil {
		return vs.Member, nil
	}
	if member, err := b.state.Member(b.channels.GuildID, vs.UserID); err == nil {
		return member, nil
	}
	return b.api.GuildMember(b.channels.GuildID, vs.UserID, discordgo.WithContext(ctx))
}

// Publish posts the split in the text channel and adds the routing reaction.
func (b *Bot) Publish(ctx context.Context, split domain.Split) (string, error) {
	channel, err := b.state.Channel(b.channels.TextChannelID)
	if err != nil || channel.Type != discordgo.ChannelTypeGuildText {
		return "", fmt.Errorf("%w: text channel %s", errors.ErrChannelNotFound, b.channels.TextChannelID)
	}

	message, err := b.api.ChannelMessageSendEmbed(b.channels.TextChannelID, RenderEmbed(split), discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	if err := b.api.MessageReactionAdd(b.channels.TextChannelID, message.ID, RouteEmoji, discordgo.WithContext(ctx)); err != nil {
		// The split is posted, people can still join their channel by hand.
		b.log.Warn("Adding route reaction failed", "message", message.ID, "error", err)
	}
	return message.ID, nil
}

// MoveMember moves a connected member, Discord refuses to move someone outside voice.
func (b *Bot) MoveMember(ctx context.Context, memberID, channelID string) error {
	vs, err := b.state.VoiceState(b.channels.GuildID, memberID)
	if err != nil || vs.ChannelID == "" {
		return fmt.Errorf("%w: %s", errors.ErrNotInVoice, memberID)
	}
	return b.api.GuildMemberMove(b.channels.GuildID, memberID, &channelID, discordgo.WithContext(ctx))
}

// HandleReactionAdd forwards human reactions of the text channel to the reaction handler.
func (b *Bot) HandleReactionAdd(ctx context.Context, r *discordgo.MessageReactionAdd) {
	if r.GuildID != b.channels.GuildID || r.ChannelID != b.channels.TextChannelID {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}
	if b.onReaction == nil {
		return
	}
	if err := b.onReaction(ctx, r.MessageID, r.UserID); err != nil {
		b.log.Error("Reaction handling failed", "message", r.MessageID, "member", r.UserID, "error", err)
	}
}

func isVoice(channel *discordgo.Channel) bool {
	return channel.Type == discordgo.ChannelTypeGuildVoice || channel.Type == discordgo.ChannelTypeGuildStageVoice
}
