package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/bandsite/internal/display"
	"github.com/desertthunder/bandsite/internal/services"
	"github.com/urfave/cli/v3"
)

func exportCommand(r *Runner) *cli.Command {
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format: json, csv, or md",
		Value:   "json",
	}
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (defaults to the export name)",
	}
	return &cli.Command{
		Name:  "export",
		Usage: "Export the band's track or video listings to a file",
		Commands: []*cli.Command{
			{
				Name:   "tracks",
				Usage:  "Export the band's streaming track listing",
				Flags:  []cli.Flag{formatFlag, outputFlag},
				Action: r.ExportTracks,
			},
			{
				Name:   "videos",
				Usage:  "Export the band's channel video listing",
				Flags:  []cli.Flag{formatFlag, outputFlag},
				Action: r.ExportVideos,
			},
		},
	}
}

// ExportTracks writes the band's streaming track listing to disk.
func (r *Runner) ExportTracks(ctx context.Context, cmd *cli.Command) error {
	tracks := display.TracksFromSpotify(r.music.BandTracks(ctx))
	if len(tracks) == 0 {
		return r.writePlain("No tracks available to export.\n")
	}

	export := &display.TrackExport{
		Name:   fmt.Sprintf("%s-tracks", r.config.Band.Name),
		Tracks: tracks,
	}

	path, err := display.WriteExport(export, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d tracks to %s", len(tracks), path)
	return nil
}

// ExportVideos writes the band's channel video listing to disk.
func (r *Runner) ExportVideos(ctx context.Context, cmd *cli.Command) error {
	channelID := services.ResolveChannelID(ctx, r.video, r.config.Band.Channel)
	if channelID == "" {
		return r.writePlain("No videos available to export.\n")
	}

	videos := display.VideosFromYouTube(r.video.ChannelVideos(ctx, channelID, 50))
	if len(videos) == 0 {
		return r.writePlain("No videos available to export.\n")
	}

	export := &display.VideoExport{
		Name:   fmt.Sprintf("%s-videos", r.config.Band.Name),
		Videos: videos,
	}

	path, err := display.WriteVideoExport(export, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d videos to %s", len(videos), path)
	return nil
}
