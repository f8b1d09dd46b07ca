// package services defines clients for the HTTP APIs the site reads from
//
// Spotify (client credentials), YouTube Data v3 (API key), Cosmic CMS (bucket read key)
package services

import (
	"context"
	"net/http"
	"time"
)

// defaultTimeout bounds every outbound third-party request.
// The upstream APIs have no SLA; a hung socket must not hang a page render.
const defaultTimeout = 10 * time.Second

// MusicCatalog defines read operations against the streaming-audio catalog.
//
// Search-style operations degrade to empty slices on any failure and
// lookup-style operations degrade to nil. Enrichment is best-effort: callers
// render their CMS-sourced content whether or not these return data.
type MusicCatalog interface {
	// BandTracks returns tracks for the configured band (artist-scoped search).
	BandTracks(ctx context.Context) []SpotifyTrack

	// SearchTracks performs a bounded track search.
	SearchTracks(ctx context.Context, query string, limit int) []SpotifyTrack

	// SearchArtists performs a bounded artist search.
	SearchArtists(ctx context.Context, query string, limit int) []SpotifyArtist

	// Track fetches a single track by ID. Not-found and errors both collapse to nil.
	Track(ctx context.Context, id string) *SpotifyTrack

	// ArtistTopTracks returns an artist's most popular tracks.
	ArtistTopTracks(ctx context.Context, artistID string) []SpotifyTrack

	// ArtistAlbums returns an artist's albums.
	ArtistAlbums(ctx context.Context, artistID string) []SpotifyAlbum

	// Album fetches a single album by ID. Not-found and errors both collapse to nil.
	Album(ctx context.Context, id string) *SpotifyAlbum

	// Name returns the service name (e.g. "Spotify")
	Name() string
}

// VideoCatalog defines read operations against the video-sharing platform.
//
// Same degradation contract as [MusicCatalog].
type VideoCatalog interface {
	// SearchVideos performs a bounded relevance-ordered video search.
	SearchVideos(ctx context.Context, query string, maxResults int) []YouTubeVideo

	// VideoDetails fetches full records for a batch of video IDs.
	VideoDetails(ctx context.Context, videoIDs []string) []YouTubeVideo

	// ChannelVideos lists a channel's uploads, newest first.
	ChannelVideos(ctx context.Context, channelID string, maxResults int) []YouTubeVideo

	// PlaylistItems lists the videos of a playlist.
	PlaylistItems(ctx context.Context, playlistID string, maxResults int) []YouTubeVideo

	// SearchChannel finds a channel by name. Nil when nothing matches.
	SearchChannel(ctx context.Context, name string) *YouTubeChannel

	// BandVideos fetches the band's video categories concurrently.
	// A failed category yields an empty slice without affecting its siblings.
	BandVideos(ctx context.Context) *BandVideoSet

	// Name returns the service name (e.g. "YouTube")
	Name() string
}

// ContentStore defines typed read operations against the headless CMS.
//
// Unlike the enrichment catalogs the CMS is the page-blocking data source:
// 404 collapses to an empty collection but other failures propagate.
type ContentStore interface {
	Albums(ctx context.Context) ([]Album, error)
	Album(ctx context.Context, slug string) (*Album, error)
	Songs(ctx context.Context) ([]Song, error)
	Song(ctx context.Context, slug string) (*Song, error)
	BandMembers(ctx context.Context) ([]BandMember, error)
	BandMember(ctx context.Context, slug string) (*BandMember, error)
	Tours(ctx context.Context) ([]Tour, error)
	Tour(ctx context.Context, slug string) (*Tour, error)
	TimelineEvents(ctx context.Context) ([]TimelineEvent, error)
	TimelineEvent(ctx context.Context, slug string) (*TimelineEvent, error)

	// Search queries albums, songs, and tours in parallel. Failures collapse to empty result sets.
	Search(ctx context.Context, query string) *SearchResults
}

// newHTTPClient returns an [http.Client] with the outbound timeout applied.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
