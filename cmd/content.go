package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func contentCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
	}

	return &cli.Command{
		Name:  "content",
		Usage: "Query the CMS content types",
		Commands: []*cli.Command{
			{Name: "albums", Usage: "List albums", Flags: jsonFlags, Action: r.ContentAlbums},
			{Name: "songs", Usage: "List songs", Flags: jsonFlags, Action: r.ContentSongs},
			{Name: "members", Usage: "List band members", Flags: jsonFlags, Action: r.ContentMembers},
			{Name: "tours", Usage: "List tours", Flags: jsonFlags, Action: r.ContentTours},
			{Name: "timeline", Usage: "List timeline events", Flags: jsonFlags, Action: r.ContentTimeline},
		},
	}
}

// ContentAlbums lists the discography, oldest release first.
func (r *Runner) ContentAlbums(ctx context.Context, cmd *cli.Command) error {
	albums, err := r.content.Albums(ctx)
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(albums, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Albums")
	if len(albums) == 0 {
		return r.writePlain("No albums available.\n")
	}
	for i, album := range albums {
		r.writePlain("%d. %s (%s)\n", i+1, album.Metadata.Title, album.Metadata.ReleaseDate)
	}
	return nil
}

// ContentSongs lists songs in CMS order.
func (r *Runner) ContentSongs(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.content.Songs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Songs")
	if len(songs) == 0 {
		return r.writePlain("No songs available.\n")
	}
	for i, song := range songs {
		line := song.Metadata.Title
		if song.Metadata.Length != "" {
			line = fmt.Sprintf("%s [%s]", line, song.Metadata.Length)
		}
		r.writePlain("%d. %s\n", i+1, line)
	}
	return nil
}

// ContentMembers lists the band lineup.
func (r *Runner) ContentMembers(ctx context.Context, cmd *cli.Command) error {
	members, err := r.content.BandMembers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(members, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Band Members")
	if len(members) == 0 {
		return r.writePlain("No members available.\n")
	}
	for _, member := range members {
		r.writePlain("• %s — %s (%s)\n", member.Metadata.Name, member.Metadata.Role, member.Metadata.YearsActive)
	}
	return nil
}

// ContentTours lists tour history, earliest year first.
func (r *Runner) ContentTours(ctx context.Context, cmd *cli.Command) error {
	tours, err := r.content.Tours(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tours: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tours, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Tours")
	if len(tours) == 0 {
		return r.writePlain("No tours available.\n")
	}
	for _, tour := range tours {
		r.writePlain("• %s (%s)\n", tour.Metadata.TourName, tour.Metadata.Year)
	}
	return nil
}

// ContentTimeline lists the event history chronologically.
func (r *Runner) ContentTimeline(ctx context.Context, cmd *cli.Command) error {
	events, err := r.content.TimelineEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list timeline: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(events, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Timeline")
	if len(events) == 0 {
		return r.writePlain("No timeline events available.\n")
	}
	for _, event := range events {
		r.writePlain("%s — %s\n", event.Metadata.Date, event.Metadata.Title)
	}
	return nil
}
