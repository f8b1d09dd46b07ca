// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/desertthunder/bandsite/internal/services"
)

// MockMusicCatalog is a test double for [services.MusicCatalog].
//
// Zero value behaves like an unconfigured service: every operation
// degrades to empty. Populate the fields to stub results.
type MockMusicCatalog struct {
	Tracks    []services.SpotifyTrack
	Artists   []services.SpotifyArtist
	Albums    []services.SpotifyAlbum
	TrackByID map[string]*services.SpotifyTrack
	AlbumByID map[string]*services.SpotifyAlbum
}

func (m *MockMusicCatalog) BandTracks(ctx context.Context) []services.SpotifyTrack {
	return append([]services.SpotifyTrack{}, m.Tracks...)
}

func (m *MockMusicCatalog) SearchTracks(ctx context.Context, query string, limit int) []services.SpotifyTrack {
	return append([]services.SpotifyTrack{}, m.Tracks...)
}

func (m *MockMusicCatalog) SearchArtists(ctx context.Context, query string, limit int) []services.SpotifyArtist {
	return append([]services.SpotifyArtist{}, m.Artists...)
}

func (m *MockMusicCatalog) Track(ctx context.Context, id string) *services.SpotifyTrack {
	return m.TrackByID[id]
}

func (m *MockMusicCatalog) ArtistTopTracks(ctx context.Context, artistID string) []services.SpotifyTrack {
	return append([]services.SpotifyTrack{}, m.Tracks...)
}

func (m *MockMusicCatalog) ArtistAlbums(ctx context.Context, artistID string) []services.SpotifyAlbum {
	return append([]services.SpotifyAlbum{}, m.Albums...)
}

func (m *MockMusicCatalog) Album(ctx context.Context, id string) *services.SpotifyAlbum {
	return m.AlbumByID[id]
}

func (m *MockMusicCatalog) Name() string { return "mock-music" }

// MockVideoCatalog is a test double for [services.VideoCatalog].
//
// LastChannelID records the channel ID of the most recent ChannelVideos
// call so wiring tests can assert what callers pass.
type MockVideoCatalog struct {
	Videos        []services.YouTubeVideo
	Channel       *services.YouTubeChannel
	LastChannelID string
}

func (m *MockVideoCatalog) SearchVideos(ctx context.Context, query string, maxResults int) []services.YouTubeVideo {
	return append([]services.YouTubeVideo{}, m.Videos...)
}

func (m *MockVideoCatalog) VideoDetails(ctx context.Context, videoIDs []string) []services.YouTubeVideo {
	return append([]services.YouTubeVideo{}, m.Videos...)
}

func (m *MockVideoCatalog) ChannelVideos(ctx context.Context, channelID string, maxResults int) []services.YouTubeVideo {
	m.LastChannelID = channelID
	return append([]services.YouTubeVideo{}, m.Videos...)
}

func (m *MockVideoCatalog) PlaylistItems(ctx context.Context, playlistID string, maxResults int) []services.YouTubeVideo {
	return append([]services.YouTubeVideo{}, m.Videos...)
}

func (m *MockVideoCatalog) SearchChannel(ctx context.Context, name string) *services.YouTubeChannel {
	return m.Channel
}

func (m *MockVideoCatalog) BandVideos(ctx context.Context) *services.BandVideoSet {
	return &services.BandVideoSet{
		MusicVideos:      append([]services.YouTubeVideo{}, m.Videos...),
		LivePerformances: []services.YouTubeVideo{},
		Interviews:       []services.YouTubeVideo{},
		Recent:           append([]services.YouTubeVideo{}, m.Videos...),
	}
}

func (m *MockVideoCatalog) Name() string { return "mock-video" }

// MockContentStore is a test double for [services.ContentStore].
//
// Set Err to make every collection call fail with it.
type MockContentStore struct {
	AlbumList  []services.Album
	SongList   []services.Song
	MemberList []services.BandMember
	TourList   []services.Tour
	EventList  []services.TimelineEvent
	Err        error
}

func (m *MockContentStore) Albums(ctx context.Context) ([]services.Album, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]services.Album{}, m.AlbumList...), nil
}

func (m *MockContentStore) Album(ctx context.Context, slug string) (*services.Album, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.AlbumList {
		if m.AlbumList[i].Slug == slug {
			return &m.AlbumList[i], nil
		}
	}
	return nil, nil
}

func (m *MockContentStore) Songs(ctx context.Context) ([]services.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]services.Song{}, m.SongList...), nil
}

func (m *MockContentStore) Song(ctx context.Context, slug string) (*services.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.SongList {
		if m.SongList[i].Slug == slug {
			return &m.SongList[i], nil
		}
	}
	return nil, nil
}

func (m *MockContentStore) BandMembers(ctx context.Context) ([]services.BandMember, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]services.BandMember{}, m.MemberList...), nil
}

func (m *MockContentStore) BandMember(ctx context.Context, slug string) (*services.BandMember, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.MemberList {
		if m.MemberList[i].Slug == slug {
			return &m.MemberList[i], nil
		}
	}
	return nil, nil
}

func (m *MockContentStore) Tours(ctx context.Context) ([]services.Tour, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]services.Tour{}, m.TourList...), nil
}

func (m *MockContentStore) Tour(ctx context.Context, slug string) (*services.Tour, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.TourList {
		if m.TourList[i].Slug == slug {
			return &m.TourList[i], nil
		}
	}
	return nil, nil
}

func (m *MockContentStore) TimelineEvents(ctx context.Context) ([]services.TimelineEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]services.TimelineEvent{}, m.EventList...), nil
}

func (m *MockContentStore) TimelineEvent(ctx context.Context, slug string) (*services.TimelineEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.EventList {
		if m.EventList[i].Slug == slug {
			return &m.EventList[i], nil
		}
	}
	return nil, nil
}

func (m *MockContentStore) Search(ctx context.Context, query string) *services.SearchResults {
	if m.Err != nil {
		return &services.SearchResults{
			Albums: []services.Album{},
			Songs:  []services.Song{},
			Tours:  []services.Tour{},
		}
	}
	return &services.SearchResults{
		Albums: append([]services.Album{}, m.AlbumList...),
		Songs:  append([]services.Song{}, m.SongList...),
		Tours:  append([]services.Tour{}, m.TourList...),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error { return nil }

var _ io.ReadCloser = (*FCloser)(nil)
