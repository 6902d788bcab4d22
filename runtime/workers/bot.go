package workers

import (
	"context"
	"log/slog"
)

// Gateway is the websocket connection of the chat platform, *discordgo.Session satisfies it.
type Gateway interface {
	Open() error
	Close() error
}

// BotWorker keeps the gateway connected while the application runs.
// A failed connection is returned so the supervisor retries it.
type BotWorker struct {
	log     *slog.Logger
	gateway Gateway
}

func NewBotWorker(log *slog.Logger, gateway Gateway) *BotWorker {
	return &BotWorker{log: log, gateway: gateway}
}

func (w *BotWorker) Run(ctx context.Context) error {
	if err := w.gateway.Open(); err != nil {
		return err
	}
	w.log.Info("Bot connected")

	<-ctx.Done()
	if err := w.gateway.Close(); err != nil {
		w.log.Warn("Bot disconnection failed", "error", err)
	}
	w.log.Info("Bot disconnected")
	return nil
}
