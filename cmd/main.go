package main

import (
	"context"
	"os"
	"time"

	"github.com/desertthunder/bandsite/internal/services"
	"github.com/desertthunder/bandsite/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// .env is optional; env vars override config.toml either way
	godotenv.Load()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	timeout := time.Duration(config.Limits.TimeoutSeconds) * time.Second

	music := services.NewSpotifyService(config.Credentials.Spotify, services.SpotifyOpts{
		Band:              config.Band.Name,
		RequestsPerSecond: config.Limits.RequestsPerSecond,
		Timeout:           timeout,
		Logger:            logger,
	})
	video := services.NewYouTubeService(config.Credentials.YouTube, services.YouTubeOpts{
		Band:              config.Band.Channel,
		RequestsPerSecond: config.Limits.RequestsPerSecond,
		Timeout:           timeout,
		Logger:            logger,
	})
	content := services.NewCosmicService(config.Credentials.Cosmic, services.CosmicOpts{
		Timeout: timeout,
		Logger:  logger,
	})

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Music:   music,
		Video:   video,
		Content: content,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "bandsite",
		Usage:    "Fan site server & catalog tools",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write a starter config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open the site, a video, or a track link in the default browser",
		ArgsUsage: "[video-id | url]",
		Action:    r.Open,
	}
}
