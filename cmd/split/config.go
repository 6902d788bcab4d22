package main

import "github.com/kelseyhightower/envconfig"

// Config holds the flag defaults, read from SPLIT_* variables.
type Config struct {
	Teams      int    `envconfig:"TEAMS" default:"2"`
	Trials     int    `envconfig:"TRIALS" default:"10"`
	Seed       uint64 `envconfig:"SEED" default:"0"` // 0 draws a random seed
	WebhookURL string `envconfig:"WEBHOOK_URL"`
	// SPLIT_COLOURS enables colorized team headers
	Colours  bool   `envconfig:"COLOURS" default:"true"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"WARN"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("split", &cfg)
	return cfg, err
}
