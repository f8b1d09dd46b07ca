package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/bandsite/internal/display"
	"github.com/urfave/cli/v3"
)

func youtubeCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
	}

	return &cli.Command{
		Name:  "youtube",
		Usage: "Query the video catalog",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search videos",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search query (defaults to the configured channel)"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results", Value: 10},
				}, jsonFlags...),
				Action: r.YouTubeSearch,
			},
			{
				Name:   "videos",
				Usage:  "Fetch the band's categorized video sets",
				Flags:  jsonFlags,
				Action: r.YouTubeVideos,
			},
		},
	}
}

// YouTubeSearch searches videos and prints the normalized results.
func (r *Runner) YouTubeSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.String("query")
	if query == "" {
		query = r.config.Band.Channel
	}

	videos := display.VideosFromYouTube(r.video.SearchVideos(ctx, query, cmd.Int("limit")))

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Videos matching %q", query))
	if len(videos) == 0 {
		return r.writePlain("No videos available.\n")
	}
	for i, video := range videos {
		r.writePlain("%d. %s\n   %s\n", i+1, video.Title, video.WatchURL)
	}
	return nil
}

// YouTubeVideos fetches the categorized video sets the videos page renders.
func (r *Runner) YouTubeVideos(ctx context.Context, cmd *cli.Command) error {
	data := r.engine.Videos(ctx)

	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}

	sections := []struct {
		name   string
		videos []display.Video
	}{
		{"Music Videos", data.MusicVideos},
		{"Live Performances", data.LivePerformances},
		{"Interviews", data.Interviews},
		{"Recent Uploads", data.Recent},
	}

	for _, section := range sections {
		r.writePlainHeader(section.name)
		if len(section.videos) == 0 {
			r.writePlain("No videos available.\n")
			continue
		}
		for i, video := range section.videos {
			r.writePlain("%d. %s\n   %s\n", i+1, video.Title, video.WatchURL)
		}
	}
	return nil
}
