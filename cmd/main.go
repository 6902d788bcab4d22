package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-roulette/contract"
	"team-roulette/domain/event"
	"team-roulette/infrastructure/api"
	"team-roulette/infrastructure/discord"
	"team-roulette/observability"
	"team-roulette/partition"
	"team-roulette/repositories"
	"team-roulette/runtime/workers"
	"team-roulette/services"

	"github.com/Netflix/go-env"
	"github.com/bwmarrin/discordgo"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, lets the supervisor drive them and returns once they all stopped.
// Returning instead of exiting keeps the deferred cleanups running.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Telemetry
	telemetry := make(chan event.Event, config.TelemetryBufferSize)
	counter := event.NewCounter()
	monitor := observability.NewMonitoringManager(log, counter)
	sup := workers.NewSupervisor(log, telemetry)
	sup.Add(
		workers.NewTelemetryWorker(log, telemetry, []event.Handler{
			event.NewTeamsPublishedHandler(log, counter),
			event.NewMemberRoutedHandler(log, counter),
			event.NewWorkerRestartedAfterPanicHandler(log, counter),
			event.NewProcessTrackerHandler(log, monitor),
		}),
		workers.NewHealthMonitoringWorker(log, telemetry, config.MetricInterval),
	)

	// 3. Route store, BadgerDB when a path is configured
	var routes repositories.IRouteRepository = repositories.NewMemoryRouteRepository(config.RouteTTL)
	if config.BadgerFilepath != "" {
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		routes = repositories.NewRouteRepository(db, log, config.RouteTTL)
		sup.Add(workers.NewValueLogGCWorker(log, db, config.GCInterval))
	}

	// 4. Publishers & chat platform
	var (
		publishers services.Publishers
		members    contract.MembershipSource
	)
	if config.WebhookURL != "" {
		session, err := discord.NewWebhookSession()
		if err != nil {
			return fmt.Errorf("webhook session failed: %w", err)
		}
		sink, err := discord.NewWebhookSink(log, session, config.WebhookURL)
		if err != nil {
			return err
		}
		publishers.Webhook = sink
	}
	if config.BotToken != "" {
		session, err := discord.NewSession(config.BotToken)
		if err != nil {
			return fmt.Errorf("discord session failed: %w", err)
		}
		bot := discord.NewBot(log, session, session.State, discord.Channels{
			GuildID:        config.GuildID,
			VoiceChannelID: config.VoiceChannelID,
			TextChannelID:  config.TextChannelID,
		})
		router := services.NewRouterService(log, routes, bot, telemetry)
		bot.OnReaction(router.OnReaction)
		session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
			if s.State.User != nil && r.UserID == s.State.User.ID {
				return
			}
			bot.HandleReactionAdd(ctx, r)
		})
		members = bot
		publishers.Bot = bot
		sup.Add(workers.NewBotWorker(log, session))
	} else {
		log.Info("No bot token, voice features disabled")
	}

	// 5. Services & API
	engine := partition.NewEngine(
		partition.WithConflictWeight(config.ConflictWeight),
		partition.WithParallelism(config.Parallelism),
		partition.WithLogger(log.With(slog.String("component", "partition"))),
	)
	splitService := services.NewSplitService(
		log, engine, config.DefaultTrials, members, publishers, routes, config.TeamChannels(), telemetry,
	)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           api.NewServer(log, splitService, monitor).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	sup.Add(workers.NewHTTPServerWorker(log, server, config.ShutdownTimeout))

	// 6. Run until SIGINT/SIGTERM
	log.Info("Starting team roulette", "address", server.Addr, "at", time.Now().UTC())
	sup.Run(ctx)
	log.Info("Program stopped cleanly")
	return nil
}
