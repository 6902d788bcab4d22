package main

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Config Discord settings are optional: without BOT_TOKEN only typed names can be split.
type Config struct {
	BotToken            string        `env:"BOT_TOKEN"`
	GuildID             string        `env:"GUILD_ID" validate:"required_with=BotToken"`
	VoiceChannelID      string        `env:"VOICE_CHANNEL_ID" validate:"required_with=BotToken"`
	TeamVoiceChannelIDs string        `env:"TEAM_VOICE_CHANNEL_IDS"` // comma separated, team 1 first
	TextChannelID       string        `env:"TEXT_CHANNEL_ID" validate:"required_with=BotToken"`
	WebhookURL          string        `env:"WEBHOOK_URL" validate:"omitempty,url"`
	BadgerFilepath      string        `env:"BADGER_FILEPATH"`
	RouteTTL            time.Duration `env:"ROUTE_TTL,default=24h"`
	GCInterval          time.Duration `env:"GC_INTERVAL,default=10m" validate:"gt=0"`
	MetricInterval      time.Duration `env:"METRIC_INTERVAL,default=5s" validate:"gt=0"`
	TelemetryBufferSize int           `env:"TELEMETRY_BUFFER_SIZE,default=64" validate:"min=1"`
	DefaultTrials       int           `env:"DEFAULT_TRIALS,default=10" validate:"min=1"`
	ConflictWeight      float64       `env:"CONFLICT_WEIGHT,default=100" validate:"gte=0"`
	Parallelism         int           `env:"PARALLELISM,default=1" validate:"min=1"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	Host                string        `env:"HOST,default=localhost"`
	Port                int           `env:"PORT,default=3000" validate:"min=1,max=65535"`
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// TeamChannels keeps positions: an empty entry leaves that team without a channel.
func (c Config) TeamChannels() []string {
	ids := lo.Map(strings.Split(c.TeamVoiceChannelIDs, ","), func(id string, _ int) string {
		return strings.TrimSpace(id)
	})
	return lo.DropRightWhile(ids, func(id string) bool { return id == "" })
}
