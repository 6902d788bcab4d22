// Command split divides the names of a text file into balanced teams from the terminal.
//
//	split -names players.txt -exceptions couples.txt -teams 3
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"team-roulette/infrastructure/discord"
	"team-roulette/partition"
	"team-roulette/services"

	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	flags := flag.NewFlagSet("split", flag.ContinueOnError)
	namesPath := flags.String("names", "", "Text file with one name per line")
	exceptionsPath := flags.String("exceptions", "", "Text file with the pairs to keep apart")
	teams := flags.Int("teams", config.Teams, "Number of teams")
	trials := flags.Int("trials", config.Trials, "Number of randomized attempts")
	seed := flags.Uint64("seed", config.Seed, "Seed for reproducible splits, 0 for a random one")
	webhook := flags.String("webhook", config.WebhookURL, "Discord webhook URL to post the teams to")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *namesPath == "" {
		return fmt.Errorf("-names is required")
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	names, err := readText(*namesPath)
	if err != nil {
		return err
	}
	var exceptions string
	if *exceptionsPath != "" {
		if exceptions, err = readText(*exceptionsPath); err != nil {
			return err
		}
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	engine := partition.NewEngine(
		partition.WithRandomSource(rand.New(rand.NewPCG(*seed, *seed))),
		partition.WithLogger(log),
	)

	var publishers services.Publishers
	if *webhook != "" {
		session, err := discord.NewWebhookSession()
		if err != nil {
			return err
		}
		sink, err := discord.NewWebhookSink(log, session, *webhook)
		if err != nil {
			return err
		}
		publishers.Webhook = sink
	}

	svc := services.NewSplitService(log, engine, partition.DefaultTrials, nil, publishers, nil, nil, nil)
	cmd, err := splitCommand(names, exceptions, *teams, *trials, *webhook != "")
	if err != nil {
		return err
	}
	split, err := svc.SplitText(context.Background(), cmd)
	if err != nil {
		return err
	}

	render(os.Stdout, split, config.Colours)
	fmt.Fprintf(os.Stdout, "Seed: %d\n", *seed)
	return nil
}
