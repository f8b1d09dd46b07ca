// package pages assembles the data each site page renders.
//
// Every loader fans out to the CMS and the enrichment catalogs
// concurrently. CMS failures block the page; catalog failures leave
// their section empty.
package pages

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bandsite/internal/display"
	"github.com/desertthunder/bandsite/internal/services"
	"github.com/desertthunder/bandsite/internal/shared"
)

// Engine loads page data from the content store and the enrichment catalogs.
type Engine struct {
	music   services.MusicCatalog
	video   services.VideoCatalog
	content services.ContentStore
	band    string
	logger  *log.Logger
}

// EngineOpts contains construction options for [NewEngine].
type EngineOpts struct {
	Band   string
	Logger *log.Logger
}

// NewEngine wires the three upstream services into a page engine.
func NewEngine(music services.MusicCatalog, video services.VideoCatalog, content services.ContentStore, opts EngineOpts) *Engine {
	if opts.Band == "" {
		opts.Band = "blink-182"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Engine{
		music:   music,
		video:   video,
		content: content,
		band:    opts.Band,
		logger:  opts.Logger,
	}
}

// Band returns the configured band name.
func (e *Engine) Band() string {
	return e.band
}

// HomeData feeds the landing page.
type HomeData struct {
	Band         string
	Albums       []services.Album
	TopTracks    []display.Track
	RecentVideos []display.Video
	Timeline     []services.TimelineEvent
}

// Home loads the landing page: discography plus best-effort enrichment.
func (e *Engine) Home(ctx context.Context) (*HomeData, error) {
	data := &HomeData{Band: e.band}

	var (
		wg         sync.WaitGroup
		contentErr error
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		albums, err := e.content.Albums(ctx)
		if err != nil {
			contentErr = err
			return
		}
		data.Albums = albums
	}()

	go func() {
		defer wg.Done()
		events, err := e.content.TimelineEvents(ctx)
		if err != nil {
			e.logger.Warn("timeline unavailable for home page", "error", err)
			return
		}
		if len(events) > 5 {
			events = events[:5]
		}
		data.Timeline = events
	}()

	go func() {
		defer wg.Done()
		tracks := e.bandTopTracks(ctx)
		if len(tracks) > 10 {
			tracks = tracks[:10]
		}
		data.TopTracks = tracks
	}()

	go func() {
		defer wg.Done()
		videos := e.video.SearchVideos(ctx, e.band+" official music video", 6)
		data.RecentVideos = display.VideosFromYouTube(videos)
	}()

	wg.Wait()

	if contentErr != nil {
		return nil, fmt.Errorf("failed to load home page: %w", contentErr)
	}
	return data, nil
}

// MusicData feeds the discography page.
type MusicData struct {
	Band   string
	Albums []services.Album
	Songs  []services.Song
	Tracks []display.Track
}

// Music loads the full discography plus streaming enrichment.
func (e *Engine) Music(ctx context.Context) (*MusicData, error) {
	data := &MusicData{Band: e.band}

	var (
		wg       sync.WaitGroup
		albumErr error
		songErr  error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		albums, err := e.content.Albums(ctx)
		if err != nil {
			albumErr = err
			return
		}
		data.Albums = albums
	}()

	go func() {
		defer wg.Done()
		songs, err := e.content.Songs(ctx)
		if err != nil {
			songErr = err
			return
		}
		data.Songs = songs
	}()

	go func() {
		defer wg.Done()
		data.Tracks = display.TracksFromSpotify(e.music.BandTracks(ctx))
	}()

	wg.Wait()

	if albumErr != nil {
		return nil, fmt.Errorf("failed to load albums: %w", albumErr)
	}
	if songErr != nil {
		return nil, fmt.Errorf("failed to load songs: %w", songErr)
	}
	return data, nil
}

// VideosData feeds the videos page, grouped by category.
type VideosData struct {
	Band             string
	MusicVideos      []display.Video
	LivePerformances []display.Video
	Interviews       []display.Video
	Recent           []display.Video
}

// Videos loads the categorized video sets. The page has no CMS
// dependency so it never fails; an outage renders empty sections.
func (e *Engine) Videos(ctx context.Context) *VideosData {
	set := e.video.BandVideos(ctx)

	return &VideosData{
		Band:             e.band,
		MusicVideos:      display.VideosFromYouTube(set.MusicVideos),
		LivePerformances: display.VideosFromYouTube(set.LivePerformances),
		Interviews:       display.VideosFromYouTube(set.Interviews),
		Recent:           display.VideosFromYouTube(set.Recent),
	}
}

// BandData feeds the band-members page.
type BandData struct {
	Band    string
	Members []services.BandMember
}

// Band members, in CMS order.
func (e *Engine) BandMembers(ctx context.Context) (*BandData, error) {
	members, err := e.content.BandMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load band members: %w", err)
	}
	return &BandData{Band: e.band, Members: members}, nil
}

// ToursData feeds the tour-history page.
type ToursData struct {
	Band  string
	Tours []services.Tour
}

// Tours loads the tour history, oldest first.
func (e *Engine) Tours(ctx context.Context) (*ToursData, error) {
	tours, err := e.content.Tours(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tours: %w", err)
	}
	return &ToursData{Band: e.band, Tours: tours}, nil
}

// TimelineData feeds the history page.
type TimelineData struct {
	Band   string
	Events []services.TimelineEvent
}

// Timeline loads the chronological event history.
func (e *Engine) Timeline(ctx context.Context) (*TimelineData, error) {
	events, err := e.content.TimelineEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return &TimelineData{Band: e.band, Events: events}, nil
}

// AlbumDetailData feeds a single album page.
type AlbumDetailData struct {
	Band   string
	Album  *services.Album
	Tracks []display.Track
}

// AlbumDetail loads one album by slug plus a streaming track search
// scoped to the album title. A missing slug yields ErrNotFound.
func (e *Engine) AlbumDetail(ctx context.Context, slug string) (*AlbumDetailData, error) {
	album, err := e.content.Album(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load album %q: %w", slug, err)
	}
	if album == nil {
		return nil, fmt.Errorf("%w: album %q", shared.ErrNotFound, slug)
	}

	query := fmt.Sprintf("album:%s artist:%s", album.Metadata.Title, e.band)
	tracks := display.TracksFromSpotify(e.music.SearchTracks(ctx, query, 30))

	return &AlbumDetailData{Band: e.band, Album: album, Tracks: tracks}, nil
}

// SongDetailData feeds a single song page.
type SongDetailData struct {
	Band       string
	Song       *services.Song
	MusicVideo *display.Video
}

// SongDetail loads one song by slug. When the song's metadata links a
// music video, the video record is fetched for embedding; failures
// leave the field nil.
func (e *Engine) SongDetail(ctx context.Context, slug string) (*SongDetailData, error) {
	song, err := e.content.Song(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load song %q: %w", slug, err)
	}
	if song == nil {
		return nil, fmt.Errorf("%w: song %q", shared.ErrNotFound, slug)
	}

	data := &SongDetailData{Band: e.band, Song: song}

	if videoID := services.ExtractVideoID(song.Metadata.MusicVideo); videoID != "" {
		if details := e.video.VideoDetails(ctx, []string{videoID}); len(details) > 0 {
			video := display.VideoFromYouTube(details[0])
			data.MusicVideo = &video
		}
	}

	return data, nil
}

// SearchData feeds the site search page.
type SearchData struct {
	Band    string
	Query   string
	Results *services.SearchResults
}

// Search runs the cross-type CMS search.
func (e *Engine) Search(ctx context.Context, query string) *SearchData {
	return &SearchData{
		Band:    e.band,
		Query:   query,
		Results: e.content.Search(ctx, query),
	}
}

// bandTopTracks resolves the band's artist record and returns its most
// popular tracks, falling back to an artist-scoped search when the
// artist lookup yields nothing.
func (e *Engine) bandTopTracks(ctx context.Context) []display.Track {
	artists := e.music.SearchArtists(ctx, e.band, 1)
	if len(artists) > 0 {
		if tracks := e.music.ArtistTopTracks(ctx, artists[0].ID); len(tracks) > 0 {
			return display.TracksFromSpotify(tracks)
		}
	}
	return display.TracksFromSpotify(e.music.BandTracks(ctx))
}
