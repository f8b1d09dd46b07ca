package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/bandsite/internal/display"
	"github.com/desertthunder/bandsite/internal/shared"
	"github.com/urfave/cli/v3"
)

func spotifyCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
	}

	return &cli.Command{
		Name:  "spotify",
		Usage: "Query the streaming catalog",
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "Search tracks",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search query (defaults to the configured band)"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results", Value: 20},
				}, jsonFlags...),
				Action: r.SpotifyTracks,
			},
			{
				Name:   "top",
				Usage:  "List the band's most popular tracks",
				Flags:  jsonFlags,
				Action: r.SpotifyTop,
			},
			{
				Name:      "lookup",
				Usage:     "Fetch a single track by ID",
				ArgsUsage: "<track-id>",
				Flags:     jsonFlags,
				Action:    r.SpotifyLookup,
			},
		},
	}
}

// SpotifyTracks searches the track catalog and prints the normalized results.
func (r *Runner) SpotifyTracks(ctx context.Context, cmd *cli.Command) error {
	query := cmd.String("query")
	if query == "" {
		query = fmt.Sprintf("artist:%s", r.config.Band.Name)
	}

	tracks := display.TracksFromSpotify(r.music.SearchTracks(ctx, query, cmd.Int("limit")))

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Tracks matching %q", query))
	if len(tracks) == 0 {
		return r.writePlain("No tracks available.\n")
	}
	for i, track := range tracks {
		r.writePlain("%d. %s - %s (%s) [%s]\n", i+1, track.Artist, track.Title, track.Album, track.Duration)
	}
	return nil
}

// SpotifyTop resolves the band's artist record and prints its top tracks.
func (r *Runner) SpotifyTop(ctx context.Context, cmd *cli.Command) error {
	artists := r.music.SearchArtists(ctx, r.config.Band.Name, 1)
	if len(artists) == 0 {
		return r.writePlain("No artist match for %q.\n", r.config.Band.Name)
	}

	tracks := display.TracksFromSpotify(r.music.ArtistTopTracks(ctx, artists[0].ID))

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Top tracks for %s", artists[0].Name))
	if len(tracks) == 0 {
		return r.writePlain("No tracks available.\n")
	}
	for i, track := range tracks {
		r.writePlain("%d. %s (%s) [%s]\n", i+1, track.Title, track.Album, track.Duration)
	}
	return nil
}

// SpotifyLookup fetches one track by ID.
func (r *Runner) SpotifyLookup(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w: track ID required", shared.ErrMissingArgument)
	}

	raw := r.music.Track(ctx, id)
	if raw == nil {
		return fmt.Errorf("%w: track %q", shared.ErrNotFound, id)
	}

	track := display.TrackFromSpotify(*raw)
	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlain("%s - %s (%s) [%s]\n%s\n", track.Artist, track.Title, track.Album, track.Duration, track.SpotifyURL)
	return nil
}
