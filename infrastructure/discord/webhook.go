package discord

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"team-roulette/domain"
	"team-roulette/errors"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

const WebhookUsername = "Team roulette"

type webhookAPI interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// WebhookSink posts splits through an incoming webhook, no bot account needed.
type WebhookSink struct {
	log   *slog.Logger
	api   webhookAPI
	id    string
	token string
}

// NewWebhookSession returns a session able to call webhooks, which carry their own token.
func NewWebhookSession() (*discordgo.Session, error) {
	return discordgo.New("")
}

func NewWebhookSink(log *slog.Logger, api webhookAPI, rawURL string) (*WebhookSink, error) {
	id, token, err := ParseWebhookURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &WebhookSink{log: log, api: api, id: id, token: token}, nil
}

// ParseWebhookURL extracts id and token from https://discord.com/api[/vN]/webhooks/{id}/{token}.
func ParseWebhookURL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", errors.ErrInvalidWebhook, rawURL)
	}
	segments := lo.Compact(strings.Split(u.Path, "/"))
	i := slices.Index(segments, "webhooks")
	if i < 0 || len(segments) != i+3 {
		return "", "", fmt.Errorf("%w: %q", errors.ErrInvalidWebhook, rawURL)
	}
	return segments[i+1], segments[i+2], nil
}

func (w *WebhookSink) Publish(ctx context.Context, split domain.Split) (string, error) {
	message, err := w.api.WebhookExecute(w.id, w.token, true, &discordgo.WebhookParams{
		Username: WebhookUsername,
		Embeds:   []*discordgo.MessageEmbed{RenderEmbed(split)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	if message == nil {
		return "", nil
	}
	w.log.Debug("Webhook message posted", "message", message.ID)
	return message.ID, nil
}
